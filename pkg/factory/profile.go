package factory

import (
	"github.com/devicelab-dev/driver-factory/pkg/logger"
	"github.com/devicelab-dev/driver-factory/pkg/profile"
)

// FirefoxProfile returns the Firefox download profile.
//
// The profile is always returned. A non-nil error is a KindResourceSetup
// warning: the downloads directory could not be created and the profile
// points at a directory that may not exist.
func (r *Resolver) FirefoxProfile() (*profile.Firefox, error) {
	return r.SetFirefoxProfile()
}

// SetFirefoxProfile ensures the downloads directory exists and builds the
// profile around it.
func (r *Resolver) SetFirefoxProfile() (*profile.Firefox, error) {
	dir := r.DownloadsDir()

	created, err := profile.EnsureDir(dir)
	if err != nil {
		logger.Error("could not set up downloads directory %s: %v", dir, err)
	} else if created {
		logger.Info("created downloads directory %s", dir)
	}

	return profile.NewFirefox(dir), err
}
