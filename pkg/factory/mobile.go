package factory

import (
	"os"

	"github.com/devicelab-dev/driver-factory/pkg/capabilities"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/driver"
	"github.com/devicelab-dev/driver-factory/pkg/logger"
	"github.com/devicelab-dev/driver-factory/pkg/storage"
)

// MobileRequest describes a mobile session.
type MobileRequest struct {
	OSName      string
	OSVersion   string
	DeviceName  string
	AppPackage  string
	AppActivity string
	Target      core.MobileTarget
}

// RunMobile starts a mobile session on a physical device, an emulator or the
// cloud device grid. Cloud sessions upload the artifact first.
func (r *Resolver) RunMobile(req MobileRequest) (driver.Mobile, error) {
	log := newTrace().With("target", req.Target.String()).With("device", req.DeviceName)

	base := capabilities.MobileBase{
		OSName:      req.OSName,
		OSVersion:   req.OSVersion,
		DeviceName:  req.DeviceName,
		AppPackage:  req.AppPackage,
		AppActivity: req.AppActivity,
	}
	opts := capabilities.MobileOptions{
		AppPath:     r.ArtifactPath(),
		Artifact:    r.cfg.Mobile.Artifact,
		SessionName: r.cfg.Mobile.SessionName,
		IdleTimeout: r.cfg.Mobile.IdleTimeout,
	}

	var server string
	switch req.Target {
	case core.PhysicalDevice:
		server = r.cfg.Mobile.LocalServer
	case core.Emulator:
		server = r.cfg.Mobile.LocalServer
		if _, err := os.Stat(opts.AppPath); err != nil {
			log.Warn("app artifact %s not readable: %v", opts.AppPath, err)
		}
	case core.CloudGrid:
		hub, err := capabilities.HubURL(r.cfg.Sauce.Hub, r.cfg.Sauce.Credentials)
		if err != nil {
			log.Error("cloud device grid not usable: %v", err)
			return nil, err
		}
		if _, err := r.uploadArtifact(log); err != nil {
			return nil, err
		}
		server = hub
	default:
		return nil, core.ErrUnknownMobileTarget.WithDetails(map[string]interface{}{
			"target": req.Target.String(),
		})
	}

	caps, err := capabilities.Mobile(base, req.Target, opts)
	if err != nil {
		return nil, err
	}

	log.Info("starting mobile session via %s", redact(server))
	m, err := r.mobile.StartMobile(server, caps)
	if err != nil {
		log.Error("mobile session failed: %v", err)
		return nil, core.ErrSessionCreate.WithDetails(map[string]interface{}{
			"target": req.Target.String(),
			"server": redact(server),
		}).WithCause(err)
	}
	log.Info("mobile session started: %s", m.SessionID())
	return m, nil
}

// RunMobileFlags is the three-flag entry point. Flags are "y"/"n"; exactly
// one of cloud, device and emulator must be "y".
func (r *Resolver) RunMobileFlags(osName, osVersion, deviceName, appPackage, appActivity, cloudFlag, deviceFlag, emulatorFlag string) (driver.Mobile, error) {
	target, err := core.MobileTargetFromFlags(core.ParseFlag(cloudFlag), core.ParseFlag(deviceFlag), core.ParseFlag(emulatorFlag))
	if err != nil {
		logger.Error("mobile target flags: cloud=%q device=%q emulator=%q: %v", cloudFlag, deviceFlag, emulatorFlag, err)
		return nil, err
	}
	return r.RunMobile(MobileRequest{
		OSName:      osName,
		OSVersion:   osVersion,
		DeviceName:  deviceName,
		AppPackage:  appPackage,
		AppActivity: appActivity,
		Target:      target,
	})
}

// UploadArtifact uploads the application artifact to cloud storage.
func (r *Resolver) UploadArtifact() (*storage.UploadResult, error) {
	return r.uploadArtifact(newTrace())
}

func (r *Resolver) uploadArtifact(log logger.Entry) (*storage.UploadResult, error) {
	path := r.ArtifactPath()
	log.Info("uploading %s as %s", path, r.cfg.Mobile.Artifact)

	res, err := r.uploader.Upload(path, r.cfg.Mobile.Artifact)
	if err != nil {
		log.Error("artifact upload failed: %v", err)
		return nil, err
	}
	log.Info("artifact stored: %s (%d bytes, md5 %s)", res.Name, res.Size, res.MD5)
	return res, nil
}
