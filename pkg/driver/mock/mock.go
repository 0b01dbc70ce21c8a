// Package mock provides recording session starters and a recording uploader
// for running the factory without a browser driver, Appium server or grid.
package mock

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tebeka/selenium"

	"github.com/devicelab-dev/driver-factory/pkg/driver"
	"github.com/devicelab-dev/driver-factory/pkg/storage"
)

// WebDriver is a fake desktop session. Only the methods the factory and its
// callers use are implemented; anything else panics on the nil embed.
type WebDriver struct {
	selenium.WebDriver

	ID        string
	URL       string
	Caps      selenium.Capabilities
	QuitCount int
}

// SessionID returns the fake session id.
func (w *WebDriver) SessionID() string { return w.ID }

// Capabilities returns the capabilities the session was started with.
func (w *WebDriver) Capabilities() (selenium.Capabilities, error) { return w.Caps, nil }

// Quit records the call.
func (w *WebDriver) Quit() error {
	w.QuitCount++
	return nil
}

// Call records one session start.
type Call struct {
	URL  string
	Caps map[string]interface{}
}

// Starter records desktop session starts and returns fake sessions.
type Starter struct {
	// Err makes every start fail with this error.
	Err error

	mu    sync.Mutex
	calls []Call
}

// Start implements webdriver.Starter.
func (s *Starter) Start(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{URL: urlPrefix, Caps: caps})
	if s.Err != nil {
		return nil, s.Err
	}
	return &WebDriver{
		ID:   fmt.Sprintf("mock-session-%d", len(s.calls)),
		URL:  urlPrefix,
		Caps: caps,
	}, nil
}

// Calls returns every recorded start.
func (s *Starter) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Last returns the most recent start, or a zero Call.
func (s *Starter) Last() Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.calls) == 0 {
		return Call{}
	}
	return s.calls[len(s.calls)-1]
}

// MobileSession is a fake mobile session.
type MobileSession struct {
	ID        string
	URL       string
	Caps      map[string]interface{}
	QuitCount int
}

// SessionID returns the fake session id.
func (m *MobileSession) SessionID() string { return m.ID }

// Platform returns the lowercased osName capability.
func (m *MobileSession) Platform() string {
	name, _ := m.Caps["osName"].(string)
	return strings.ToLower(name)
}

// Capabilities returns the capabilities the session was started with.
func (m *MobileSession) Capabilities() map[string]interface{} { return m.Caps }

// Quit records the call.
func (m *MobileSession) Quit() error {
	m.QuitCount++
	return nil
}

// MobileStarter records mobile session starts and returns fake sessions.
type MobileStarter struct {
	// Err makes every start fail with this error.
	Err error

	mu    sync.Mutex
	calls []Call
}

// StartMobile implements driver.MobileStarter.
func (s *MobileStarter) StartMobile(serverURL string, caps map[string]interface{}) (driver.Mobile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{URL: serverURL, Caps: caps})
	if s.Err != nil {
		return nil, s.Err
	}
	return &MobileSession{
		ID:   fmt.Sprintf("mock-mobile-%d", len(s.calls)),
		URL:  serverURL,
		Caps: caps,
	}, nil
}

// Calls returns every recorded start.
func (s *MobileStarter) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Last returns the most recent start, or a zero Call.
func (s *MobileStarter) Last() Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.calls) == 0 {
		return Call{}
	}
	return s.calls[len(s.calls)-1]
}

// Upload records one artifact upload.
type Upload struct {
	Path string
	Name string
}

// Uploader records uploads without touching the network or the file.
type Uploader struct {
	// Err makes every upload fail with this error.
	Err error

	mu    sync.Mutex
	calls []Upload
}

// Upload implements factory.ArtifactUploader.
func (u *Uploader) Upload(path, name string) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.calls = append(u.calls, Upload{Path: path, Name: name})
	if u.Err != nil {
		return nil, u.Err
	}
	return &storage.UploadResult{Name: name, StatusCode: 200}, nil
}

// Calls returns every recorded upload.
func (u *Uploader) Calls() []Upload {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]Upload, len(u.calls))
	copy(out, u.calls)
	return out
}
