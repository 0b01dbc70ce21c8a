package core

import "strings"

// Browser identifies a desktop browser the factory can drive.
type Browser int

const (
	BrowserUnknown Browser = iota
	Firefox
	InternetExplorer
	Chrome
	Opera
	Safari
)

// Browsers lists every supported browser in declaration order.
var Browsers = []Browser{Firefox, InternetExplorer, Chrome, Opera, Safari}

// browserNames maps accepted spellings (lowercase) to a Browser.
var browserNames = map[string]Browser{
	"ff":                Firefox,
	"firefox":           Firefox,
	"ie":                InternetExplorer,
	"internet explorer": InternetExplorer,
	"internetexplorer":  InternetExplorer,
	"chrome":            Chrome,
	"opera":             Opera,
	"safari":            Safari,
}

// String returns the WebDriver browserName for b.
func (b Browser) String() string {
	switch b {
	case Firefox:
		return "firefox"
	case InternetExplorer:
		return "internet explorer"
	case Chrome:
		return "chrome"
	case Opera:
		return "opera"
	case Safari:
		return "safari"
	default:
		return "unknown"
	}
}

// Key returns the short config key for b (ff, ie, chrome, opera, safari).
func (b Browser) Key() string {
	switch b {
	case Firefox:
		return "firefox"
	case InternetExplorer:
		return "ie"
	default:
		return b.String()
	}
}

// ParseBrowser resolves a browser name case-insensitively, accepting the
// documented synonyms ("ff" for Firefox, "ie" for Internet Explorer).
func ParseBrowser(name string) (Browser, error) {
	b, ok := browserNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return BrowserUnknown, ErrUnsupportedBrowser.WithDetails(map[string]interface{}{
			"browser": name,
		})
	}
	return b, nil
}
