package capabilities

import (
	"github.com/devicelab-dev/driver-factory/pkg/core"
)

// Mobile capability keys.
const (
	KeyOSName          = "osName"
	KeyMobileOSVersion = "osVersion"
	KeyDeviceName      = "deviceName"
	KeyAppPackage      = "appPackage"
	KeyAppActivity     = "appActivity"
	KeyApp             = "app"
	KeyIdleTimeout     = "idleTimeout"
	KeyName            = "name"
	KeyAutoAcceptAlert = "autoAcceptAlert"
)

// StoragePrefix marks an app reference held in Sauce storage.
const StoragePrefix = "sauce-storage:"

// MobileBase is what every mobile session asks for.
type MobileBase struct {
	OSName      string
	OSVersion   string
	DeviceName  string
	AppPackage  string
	AppActivity string
}

// MobileOptions carries the target-specific values.
type MobileOptions struct {
	AppPath     string // Emulator: absolute artifact path
	Artifact    string // CloudGrid: artifact name in storage
	SessionName string // CloudGrid: session display name
	IdleTimeout int    // CloudGrid: seconds
}

// Base returns the five capabilities shared by every target.
func (b MobileBase) Base() map[string]interface{} {
	return map[string]interface{}{
		KeyOSName:          b.OSName,
		KeyMobileOSVersion: b.OSVersion,
		KeyDeviceName:      b.DeviceName,
		KeyAppPackage:      b.AppPackage,
		KeyAppActivity:     b.AppActivity,
	}
}

// Mobile builds the capability set for the given target.
func Mobile(base MobileBase, target core.MobileTarget, opts MobileOptions) (map[string]interface{}, error) {
	caps := base.Base()
	switch target {
	case core.PhysicalDevice:
	case core.Emulator:
		caps[KeyApp] = opts.AppPath
	case core.CloudGrid:
		caps[KeyIdleTimeout] = opts.IdleTimeout
		caps[KeyApp] = StoragePrefix + opts.Artifact
		caps[KeyName] = opts.SessionName
		caps[KeyAutoAcceptAlert] = true
	default:
		return nil, core.ErrUnknownMobileTarget.WithDetails(map[string]interface{}{
			"target": target.String(),
		})
	}
	return caps, nil
}
