package factory

import (
	"net/url"

	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/capabilities"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
)

// RunCloud starts a session on the cloud desktop grid. The capability set is
// the browser's template with os, os_version and browser_version overlaid.
func (r *Resolver) RunCloud(osName, osVersion, browser, browserVersion string) (selenium.WebDriver, error) {
	return r.runCloud(newTrace().With("browser", browser), osName, osVersion, browser, browserVersion)
}

func (r *Resolver) runCloud(log logger.Entry, osName, osVersion, browser, browserVersion string) (selenium.WebDriver, error) {
	b, err := core.ParseBrowser(browser)
	if err != nil {
		log.Error("cloud grid does not know the browser %q", browser)
		return nil, err
	}

	caps, err := capabilities.Cloud(b, osName, osVersion, browserVersion)
	if err != nil {
		return nil, err
	}

	grid := r.cfg.BrowserStack
	hub, err := capabilities.HubURL(grid.Hub, grid.Credentials)
	if err != nil {
		log.Error("cloud grid not usable: %v", err)
		return nil, err
	}

	log.Info("starting cloud session: %s %s on %s %s via %s", b, browserVersion, osName, osVersion, redact(hub))
	wd, err := r.web.Start(caps, hub)
	if err != nil {
		log.Error("cloud session failed: %v", err)
		return nil, core.ErrSessionCreate.WithDetails(map[string]interface{}{
			"browser": b.String(),
			"hub":     redact(hub),
		}).WithCause(err)
	}
	log.Info("cloud session started: %s", wd.SessionID())
	return wd, nil
}

// redact drops the password from a URL for logging.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
