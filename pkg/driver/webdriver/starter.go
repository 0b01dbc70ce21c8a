// Package webdriver starts desktop browser sessions through tebeka/selenium,
// either on a remote grid or against a local browser driver.
package webdriver

import (
	"github.com/tebeka/selenium"
)

// Starter opens a WebDriver session at urlPrefix with the given capabilities.
type Starter interface {
	Start(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)
}

// StarterFunc adapts a function to Starter.
type StarterFunc func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

// Start implements Starter.
func (f StarterFunc) Start(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error) {
	return f(caps, urlPrefix)
}

// Remote starts sessions with selenium.NewRemote. The hub host name is
// handed to net/http as-is, so virtual-hosted grids keep working.
var Remote Starter = StarterFunc(selenium.NewRemote)
