package webdriver

import (
	"errors"
	"testing"

	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/config"
	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/driver/mock"
)

func TestStarterFunc(t *testing.T) {
	called := false
	f := StarterFunc(func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error) {
		called = true
		if urlPrefix != "http://hub" {
			t.Errorf("urlPrefix = %q", urlPrefix)
		}
		return nil, nil
	})
	f.Start(selenium.Capabilities{}, "http://hub")
	if !called {
		t.Error("StarterFunc did not call the function")
	}
}

func TestLocal_StartByURL(t *testing.T) {
	starter := &mock.Starter{}
	local := NewLocal(config.Default(), starter, nil)

	tests := []struct {
		browser core.Browser
		url     string
	}{
		{core.Chrome, "http://localhost:9515"},
		{core.Firefox, "http://localhost:4444"},
		{core.Safari, "http://localhost:4445"},
		{core.InternetExplorer, "http://localhost:5555"},
		{core.Opera, "http://localhost:9516"},
	}
	for _, tt := range tests {
		t.Run(tt.browser.String(), func(t *testing.T) {
			wd, err := local.Start(tt.browser, selenium.Capabilities{"browserName": tt.browser.String()})
			if err != nil {
				t.Fatalf("Start error: %v", err)
			}
			if wd == nil {
				t.Fatal("nil handle")
			}
			if got := starter.Last().URL; got != tt.url {
				t.Errorf("url = %q, want %q", got, tt.url)
			}
		})
	}
}

func TestLocal_StartWithLaunchedService(t *testing.T) {
	starter := &mock.Starter{}
	var launched struct {
		browser core.Browser
		binary  string
		port    int
	}
	launch := func(b core.Browser, binary string, port int) (*selenium.Service, string, error) {
		launched.browser, launched.binary, launched.port = b, binary, port
		return nil, "http://localhost:4545", nil
	}
	drivers := map[string]config.LocalDriver{
		"firefox": {Binary: "/usr/local/bin/geckodriver", Port: 4545},
	}

	wd, err := NewLocal(&config.Config{Local: drivers}, starter, launch).Start(core.Firefox, selenium.Capabilities{})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if launched.browser != core.Firefox || launched.binary != "/usr/local/bin/geckodriver" || launched.port != 4545 {
		t.Errorf("unexpected launch: %+v", launched)
	}
	if starter.Last().URL != "http://localhost:4545" {
		t.Errorf("session started at %q", starter.Last().URL)
	}

	sd, ok := wd.(*serviceDriver)
	if !ok {
		t.Fatalf("expected service-owning handle, got %T", wd)
	}
	if err := wd.Quit(); err != nil {
		t.Fatalf("Quit error: %v", err)
	}
	if sd.WebDriver.(*mock.WebDriver).QuitCount != 1 {
		t.Error("Quit was not forwarded to the session")
	}
}

func TestLocal_LaunchFailure(t *testing.T) {
	starter := &mock.Starter{}
	launch := func(b core.Browser, binary string, port int) (*selenium.Service, string, error) {
		return nil, "", core.ErrSessionCreate.WithCause(errors.New("exec: not found"))
	}
	drivers := map[string]config.LocalDriver{"chrome": {Binary: "/missing", Port: 9515}}

	_, err := NewLocal(&config.Config{Local: drivers}, starter, launch).Start(core.Chrome, selenium.Capabilities{})
	if !errors.Is(err, core.ErrSessionCreate) {
		t.Errorf("error = %v, want ErrSessionCreate", err)
	}
	if len(starter.Calls()) != 0 {
		t.Error("session should not be started when the service fails")
	}
}

func TestLocal_StarterFailure(t *testing.T) {
	starter := &mock.Starter{Err: errors.New("connection refused")}
	_, err := NewLocal(config.Default(), starter, nil).Start(core.Chrome, selenium.Capabilities{})
	if !errors.Is(err, core.ErrSessionCreate) {
		t.Errorf("error = %v, want ErrSessionCreate", err)
	}
	if !core.IsKind(err, core.KindClient) {
		t.Errorf("kind = %s, want client", core.KindOf(err))
	}
}

func TestLocal_NotConfigured(t *testing.T) {
	_, err := NewLocal(&config.Config{}, &mock.Starter{}, nil).Start(core.Opera, selenium.Capabilities{})
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestLaunchService_UnsupportedBinary(t *testing.T) {
	_, _, err := LaunchService(core.Safari, "/usr/bin/safaridriver", 4445)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
