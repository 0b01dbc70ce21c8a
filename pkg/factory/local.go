package factory

import (
	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/capabilities"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
)

// RunLocal starts a session on the local machine's browser. osName, osVersion
// and browserVersion are accepted for symmetry with RunCloud and ignored:
// the local driver always targets the installed browser.
func (r *Resolver) RunLocal(osName, osVersion, browser, browserVersion string) (selenium.WebDriver, error) {
	return r.runLocal(newTrace().With("browser", browser), browser)
}

func (r *Resolver) runLocal(log logger.Entry, browser string) (selenium.WebDriver, error) {
	b, err := core.ParseBrowser(browser)
	if err != nil {
		log.Error("local driver does not know the browser %q", browser)
		return nil, err
	}

	caps, err := capabilities.Template(b)
	if err != nil {
		return nil, err
	}

	log.Info("starting local %s session", b)
	wd, err := r.localDrivers().Start(b, caps)
	if err != nil {
		log.Error("local session failed: %v", err)
		return nil, err
	}
	return wd, nil
}

// FirefoxDriver starts a local Firefox session with the download profile.
// A downloads directory that could not be created is logged, not returned.
func (r *Resolver) FirefoxDriver() (selenium.WebDriver, error) {
	log := newTrace().With("browser", core.Firefox.String())

	prof, err := r.FirefoxProfile()
	if err != nil {
		log.Warn("continuing with profile pointing at %s: %v", prof.DownloadDir, err)
	}

	caps, err := capabilities.Template(core.Firefox)
	if err != nil {
		return nil, err
	}
	caps.AddFirefox(prof.Capabilities())

	log.Info("starting local firefox session with download profile")
	wd, err := r.localDrivers().Start(core.Firefox, caps)
	if err != nil {
		log.Error("local firefox session failed: %v", err)
		return nil, err
	}
	return wd, nil
}
