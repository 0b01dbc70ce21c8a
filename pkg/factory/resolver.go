// Package factory resolves a target description into a live browser or
// mobile automation session.
package factory

import (
	"github.com/google/uuid"
	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/driver"
	"github.com/devicelab-dev/driver-factory/pkg/driver/webdriver"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
	"github.com/devicelab-dev/driver-factory/pkg/storage"
)

// DriverRequest describes a desktop session. LocationMode is "y" for the
// cloud grid and "n" for the local machine.
type DriverRequest struct {
	LocationMode   string
	OSName         string
	OSVersion      string
	Browser        string
	BrowserVersion string
}

// ArtifactUploader stores the application artifact for cloud sessions.
type ArtifactUploader interface {
	Upload(path, name string) (*storage.UploadResult, error)
}

// Resolver builds driver handles. It keeps no state between calls beyond
// its configuration, so independent calls may run concurrently.
type Resolver struct {
	// Defaults used by ResolveDefault
	Browser        string
	Location       string
	BrowserVersion string
	OSName         string
	OSVersion      string

	cfg      *config.Config
	root     string
	web      webdriver.Starter
	launch   webdriver.ServiceLauncher
	mobile   driver.MobileStarter
	uploader ArtifactUploader
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWebStarter replaces the desktop session starter.
func WithWebStarter(s webdriver.Starter) Option {
	return func(r *Resolver) { r.web = s }
}

// WithServiceLauncher replaces how local driver binaries are launched.
func WithServiceLauncher(l webdriver.ServiceLauncher) Option {
	return func(r *Resolver) { r.launch = l }
}

// WithMobileStarter replaces the mobile session starter.
func WithMobileStarter(s driver.MobileStarter) Option {
	return func(r *Resolver) { r.mobile = s }
}

// WithUploader replaces the artifact uploader.
func WithUploader(u ArtifactUploader) Option {
	return func(r *Resolver) { r.uploader = u }
}

// WithInstallRoot sets the directory app/ and downloads/ are resolved against
// (one level up). Defaults to config.GetHome().
func WithInstallRoot(root string) Option {
	return func(r *Resolver) { r.root = root }
}

// NewResolver creates a resolver over cfg. A nil cfg means all defaults.
func NewResolver(cfg *config.Config, opts ...Option) *Resolver {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Resolver{
		Browser:        cfg.Defaults.Browser,
		Location:       cfg.Defaults.Location,
		BrowserVersion: cfg.Defaults.BrowserVersion,
		OSName:         cfg.Defaults.OSName,
		OSVersion:      cfg.Defaults.OSVersion,
		cfg:            cfg,
		web:            webdriver.Remote,
		mobile:         driver.Appium,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.root == "" {
		r.root = config.GetHome()
	}
	if r.uploader == nil {
		r.uploader = storage.NewUploader(cfg.Sauce.Storage, cfg.Sauce.Credentials)
	}
	return r
}

// Config returns the resolver's configuration.
func (r *Resolver) Config() *config.Config {
	return r.cfg
}

// ArtifactPath returns the absolute path of the application artifact.
func (r *Resolver) ArtifactPath() string {
	return config.ArtifactPath(r.root, r.cfg.Mobile.Artifact)
}

// DownloadsDir returns the absolute downloads directory.
func (r *Resolver) DownloadsDir() string {
	return config.DownloadsDirFor(r.root)
}

// Resolve dispatches a desktop request to the cloud grid or the local machine.
// An unrecognized location mode yields a nil handle and ErrUnknownLocationMode.
func (r *Resolver) Resolve(req DriverRequest) (selenium.WebDriver, error) {
	log := newTrace().With("browser", req.Browser)

	mode, err := core.ParseLocationMode(req.LocationMode)
	if err != nil {
		log.Warn("unknown location mode %q for browser %q", req.LocationMode, req.Browser)
		return nil, core.ErrUnknownLocationMode.WithDetails(map[string]interface{}{
			"mode":    req.LocationMode,
			"browser": req.Browser,
		})
	}

	switch mode {
	case core.LocationCloud:
		return r.runCloud(log, req.OSName, req.OSVersion, req.Browser, req.BrowserVersion)
	default:
		return r.runLocal(log, req.Browser)
	}
}

// ResolveDefault resolves using the resolver's default fields.
func (r *Resolver) ResolveDefault() (selenium.WebDriver, error) {
	return r.Resolve(DriverRequest{
		LocationMode:   r.Location,
		OSName:         r.OSName,
		OSVersion:      r.OSVersion,
		Browser:        r.Browser,
		BrowserVersion: r.BrowserVersion,
	})
}

func (r *Resolver) localDrivers() *webdriver.Local {
	return webdriver.NewLocal(r.cfg, r.web, r.launch)
}

func newTrace() logger.Entry {
	return logger.With("traceId", uuid.NewString())
}
