// Package cli provides the command-line interface for driver-factory.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/driver/mock"
	"github.com/devicelab-dev/driver-factory/pkg/factory"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Config file (default: config.yaml in the install root)",
		EnvVars: []string{"DRIVER_FACTORY_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "home",
		Usage:   "Install root; app/ and downloads/ live next to it",
		EnvVars: []string{"DRIVER_FACTORY_HOME"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file instead of stderr",
		EnvVars: []string{"DRIVER_FACTORY_LOG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"DRIVER_FACTORY_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Resolve and build capabilities without contacting any server",
	},
}

// NewApp builds the driverfactory application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "driverfactory",
		Usage:   "Start WebDriver and Appium sessions from a target description",
		Version: Version,
		Description: `driverfactory opens a browser or mobile automation session on the local
machine or a cloud grid, the same way test suites do through the factory package.

Examples:
  driverfactory web --cloud n --browser chrome
  driverfactory web --cloud y --browser ff --browser-version 121 --os Windows --os-version 11
  driverfactory mobile --target emulator --device-name "Pixel 8" --app-package com.example.app
  driverfactory upload
  driverfactory profile`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			webCommand,
			mobileCommand,
			uploadCommand,
			profileCommand,
		},
		Before: setupLogging,
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
	}
}

// Execute runs the CLI.
func Execute() {
	app := NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func setupLogging(c *cli.Context) error {
	if path := c.String("log-file"); path != "" {
		if err := logger.Init(path); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	} else {
		logger.InitWriter(zerolog.ConsoleWriter{Out: c.App.ErrWriter, NoColor: true})
	}
	logger.SetVerbose(c.Bool("verbose"))
	return nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch core.KindOf(err) {
	case core.KindUnrecognizedTarget:
		return 2
	case core.KindConfig:
		return 3
	default:
		return 1
	}
}

// loadConfig reads --config, or config.yaml from the install root, and
// applies credential overrides from the environment.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(installRoot(c))
	}
	if err != nil {
		return nil, core.ErrInvalidConfig.WithCause(err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func installRoot(c *cli.Context) string {
	if home := c.String("home"); home != "" {
		return home
	}
	return config.GetHome()
}

// newResolver builds a resolver from the global flags. With --dry-run every
// session starter and the uploader only record what they were asked to do.
func newResolver(c *cli.Context) (*factory.Resolver, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []factory.Option{factory.WithInstallRoot(installRoot(c))}
	if c.Bool("dry-run") {
		logger.Info("dry run: no sessions will be opened")
		opts = append(opts,
			factory.WithWebStarter(&mock.Starter{}),
			factory.WithMobileStarter(&mock.MobileStarter{}),
			factory.WithUploader(&mock.Uploader{}),
		)
	}
	return factory.NewResolver(cfg, opts...), nil
}
