// Package driver defines the session handles the factory hands back and the
// starters that create them.
package driver

import (
	"github.com/devicelab-dev/driver-factory/pkg/driver/appium"
)

// Mobile is a live mobile automation session. The caller owns it and must Quit it.
type Mobile interface {
	SessionID() string
	Platform() string
	Capabilities() map[string]interface{}
	Quit() error
}

// MobileStarter opens a mobile session at serverURL.
type MobileStarter interface {
	StartMobile(serverURL string, caps map[string]interface{}) (Mobile, error)
}

// MobileStarterFunc adapts a function to MobileStarter.
type MobileStarterFunc func(serverURL string, caps map[string]interface{}) (Mobile, error)

// StartMobile implements MobileStarter.
func (f MobileStarterFunc) StartMobile(serverURL string, caps map[string]interface{}) (Mobile, error) {
	return f(serverURL, caps)
}

// Appium starts sessions with the in-repo Appium client.
var Appium MobileStarter = MobileStarterFunc(func(serverURL string, caps map[string]interface{}) (Mobile, error) {
	c, err := appium.NewSession(serverURL, caps)
	if err != nil {
		return nil, err
	}
	return c, nil
})
