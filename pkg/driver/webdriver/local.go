package webdriver

import (
	"fmt"

	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
)

// ServiceLauncher launches a local driver binary and returns the running
// service and the URL prefix it serves.
type ServiceLauncher func(b core.Browser, binary string, port int) (*selenium.Service, string, error)

// LaunchService starts chromedriver or geckodriver through tebeka/selenium.
// Other browsers must be reached through a configured URL.
func LaunchService(b core.Browser, binary string, port int) (*selenium.Service, string, error) {
	opts := []selenium.ServiceOption{selenium.Output(logger.GetWriter())}

	var (
		svc *selenium.Service
		err error
	)
	switch b {
	case core.Chrome:
		svc, err = selenium.NewChromeDriverService(binary, port, opts...)
	case core.Firefox:
		svc, err = selenium.NewGeckoDriverService(binary, port, opts...)
	default:
		return nil, "", core.ErrInvalidConfig.WithMessage(
			fmt.Sprintf("launching a local %s driver binary is not supported; configure local.%s.url", b, b.Key()))
	}
	if err != nil {
		return nil, "", core.ErrSessionCreate.WithDetails(map[string]interface{}{
			"browser": b.String(),
			"binary":  binary,
		}).WithCause(err)
	}
	return svc, fmt.Sprintf("http://localhost:%d", port), nil
}

// Local starts sessions against local browser drivers described by config.
type Local struct {
	cfg     *config.Config
	starter Starter
	launch  ServiceLauncher
}

// NewLocal creates a local session starter.
func NewLocal(cfg *config.Config, starter Starter, launch ServiceLauncher) *Local {
	if launch == nil {
		launch = LaunchService
	}
	return &Local{cfg: cfg, starter: starter, launch: launch}
}

// Endpoint returns the configured driver settings for b.
func (l *Local) Endpoint(b core.Browser) (config.LocalDriver, error) {
	ld, ok := l.cfg.LocalDriverFor(b.Key())
	if !ok || (ld.URL == "" && ld.Binary == "") {
		return config.LocalDriver{}, core.ErrInvalidConfig.WithMessage(
			fmt.Sprintf("no local driver configured for %s", b))
	}
	return ld, nil
}

// Start opens a session on the local driver for b. When the driver binary is
// launched here, quitting the returned handle also stops the service.
func (l *Local) Start(b core.Browser, caps selenium.Capabilities) (selenium.WebDriver, error) {
	ld, err := l.Endpoint(b)
	if err != nil {
		return nil, err
	}

	if ld.Binary == "" {
		wd, err := l.starter.Start(caps, ld.URL)
		if err != nil {
			return nil, core.ErrSessionCreate.WithDetails(map[string]interface{}{
				"browser": b.String(),
				"url":     ld.URL,
			}).WithCause(err)
		}
		return wd, nil
	}

	svc, urlPrefix, err := l.launch(b, ld.Binary, ld.Port)
	if err != nil {
		return nil, err
	}
	wd, err := l.starter.Start(caps, urlPrefix)
	if err != nil {
		if svc != nil {
			svc.Stop()
		}
		return nil, core.ErrSessionCreate.WithDetails(map[string]interface{}{
			"browser": b.String(),
			"url":     urlPrefix,
		}).WithCause(err)
	}
	return &serviceDriver{WebDriver: wd, service: svc}, nil
}

// serviceDriver owns the driver service it was started on.
type serviceDriver struct {
	selenium.WebDriver
	service *selenium.Service
}

// Quit ends the session and stops the driver service.
func (d *serviceDriver) Quit() error {
	err := d.WebDriver.Quit()
	if d.service != nil {
		if stopErr := d.service.Stop(); err == nil {
			err = stopErr
		}
	}
	return err
}
