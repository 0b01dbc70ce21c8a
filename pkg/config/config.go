// Package config handles configuration for driver-factory.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default endpoints and session settings.
const (
	DefaultBrowserStackHub = "https://hub-cloud.browserstack.com/wd/hub"
	DefaultSauceHub        = "http://ondemand.saucelabs.com:80/wd/hub"
	DefaultSauceStorage    = "https://saucelabs.com/rest/v1/storage"
	DefaultAppiumServer    = "http://localhost:4723/wd/hub"
	DefaultArtifactName    = "app-name"
	DefaultSessionName     = "Appium Go Test"
	DefaultIdleTimeout     = 300
	DefaultBrowser         = "ff"
	DefaultLocation        = "n"
)

// Environment variables that override file credentials.
const (
	EnvBrowserStackUser = "BROWSERSTACK_USERNAME"
	EnvBrowserStackKey  = "BROWSERSTACK_ACCESS_KEY"
	EnvSauceUser        = "SAUCE_USERNAME"
	EnvSauceKey         = "SAUCE_ACCESS_KEY"
)

// Credentials is a grid username / access key pair.
type Credentials struct {
	Username  string `yaml:"username"`
	AccessKey string `yaml:"accessKey"`
}

// Valid reports whether both halves of the pair are set.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.AccessKey != ""
}

// GridConfig describes a cloud WebDriver grid.
type GridConfig struct {
	Credentials `yaml:",inline"`
	Hub         string `yaml:"hub"` // WebDriver hub URL, without credentials
}

// SauceConfig is the mobile grid plus its artifact storage.
type SauceConfig struct {
	GridConfig `yaml:",inline"`
	Storage    string `yaml:"storage"` // Storage REST base URL
}

// MobileConfig holds the mobile session settings.
type MobileConfig struct {
	LocalServer string `yaml:"localServer"` // Appium server for devices and emulators
	Artifact    string `yaml:"artifact"`    // App binary file name under <home>/../app
	SessionName string `yaml:"sessionName"` // Cloud session display name
	IdleTimeout int    `yaml:"idleTimeout"` // Seconds
}

// LocalDriver tells the factory how to reach a local browser driver.
// With Binary set the driver service is launched on Port; otherwise URL is used.
type LocalDriver struct {
	URL    string `yaml:"url"`
	Binary string `yaml:"binary"`
	Port   int    `yaml:"port"`
}

// Defaults are the resolver construction defaults.
type Defaults struct {
	Browser        string `yaml:"browser"`
	Location       string `yaml:"location"` // y = cloud, n = local
	BrowserVersion string `yaml:"browserVersion"`
	OSName         string `yaml:"osName"`
	OSVersion      string `yaml:"osVersion"`
}

// Config represents the factory configuration (config.yaml).
type Config struct {
	BrowserStack GridConfig             `yaml:"browserstack"`
	Sauce        SauceConfig            `yaml:"sauce"`
	Mobile       MobileConfig           `yaml:"mobile"`
	Local        map[string]LocalDriver `yaml:"local"` // keyed by browser: firefox, ie, chrome, opera, safari
	Defaults     Defaults               `yaml:"defaults"`
}

// defaultLocalDrivers are the ports the stock driver binaries listen on.
var defaultLocalDrivers = map[string]LocalDriver{
	"chrome":  {URL: "http://localhost:9515", Port: 9515},
	"firefox": {URL: "http://localhost:4444", Port: 4444},
	"safari":  {URL: "http://localhost:4445", Port: 4445},
	"ie":      {URL: "http://localhost:5555", Port: 5555},
	"opera":   {URL: "http://localhost:9516", Port: 9516},
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return defaults
	return Default(), nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.BrowserStack.Hub == "" {
		c.BrowserStack.Hub = DefaultBrowserStackHub
	}
	if c.Sauce.Hub == "" {
		c.Sauce.Hub = DefaultSauceHub
	}
	if c.Sauce.Storage == "" {
		c.Sauce.Storage = DefaultSauceStorage
	}
	if c.Mobile.LocalServer == "" {
		c.Mobile.LocalServer = DefaultAppiumServer
	}
	if c.Mobile.Artifact == "" {
		c.Mobile.Artifact = DefaultArtifactName
	}
	if c.Mobile.SessionName == "" {
		c.Mobile.SessionName = DefaultSessionName
	}
	if c.Mobile.IdleTimeout == 0 {
		c.Mobile.IdleTimeout = DefaultIdleTimeout
	}
	if c.Defaults.Browser == "" {
		c.Defaults.Browser = DefaultBrowser
	}
	if c.Defaults.Location == "" {
		c.Defaults.Location = DefaultLocation
	}

	if c.Local == nil {
		c.Local = make(map[string]LocalDriver, len(defaultLocalDrivers))
	}
	for name, def := range defaultLocalDrivers {
		ld, ok := c.Local[name]
		if !ok {
			c.Local[name] = def
			continue
		}
		if ld.Port == 0 {
			ld.Port = def.Port
		}
		if ld.URL == "" && ld.Binary == "" {
			ld.URL = def.URL
		}
		c.Local[name] = ld
	}
}

// ApplyEnv overrides credentials from the environment when set.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.BrowserStack.Username, EnvBrowserStackUser)
	setFromEnv(&c.BrowserStack.AccessKey, EnvBrowserStackKey)
	setFromEnv(&c.Sauce.Username, EnvSauceUser)
	setFromEnv(&c.Sauce.AccessKey, EnvSauceKey)
}

// LocalDriverFor returns the local driver settings for a browser key.
func (c *Config) LocalDriverFor(key string) (LocalDriver, bool) {
	ld, ok := c.Local[strings.ToLower(key)]
	return ld, ok
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
