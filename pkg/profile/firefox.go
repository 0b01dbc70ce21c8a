// Package profile builds the Firefox download profile used by local sessions.
package profile

import (
	"errors"
	"os"

	"github.com/tebeka/selenium/firefox"

	"github.com/devicelab-dev/driver-factory/pkg/core"
)

// Firefox preference names.
const (
	PrefFolderList          = "browser.download.folderList"
	PrefDownloadDir         = "browser.download.dir"
	PrefUseDownloadDir      = "browser.download.useDownloadDir"
	PrefAlwaysAskForce      = "browser.helperApps.alwaysAsk.force"
	PrefNeverAskOpenFile    = "browser.helperApps.neverAsk.openFile"
	PrefNeverAskSaveToDisk  = "browser.helperApps.neverAsk.saveToDisk"
	PrefDisableFullPagePlug = "plugin.disable_full_page_plugin_for_types"
	PrefPDFJSDisabled       = "pdfjs.disabled"
)

// MIME types handled without prompting.
const (
	OpenFileTypes   = "text/csv,application/octet-stream,application/pdf"
	SaveToDiskTypes = "text/csv,application/vnd.ms-excel,application/pdf,application/csv,application/octet-stream"
)

// folderListCustom tells Firefox to use browser.download.dir.
const folderListCustom = 2

// Firefox is a set of preferences applied to a new Firefox session.
type Firefox struct {
	DownloadDir string
	prefs       map[string]interface{}
}

// NewFirefox returns a profile that saves downloads to dir without prompting
// and keeps the built-in PDF viewer off.
func NewFirefox(dir string) *Firefox {
	p := &Firefox{
		DownloadDir: dir,
		prefs:       make(map[string]interface{}),
	}
	p.SetPreference(PrefFolderList, folderListCustom)
	p.SetPreference(PrefDownloadDir, dir)
	p.SetPreference(PrefUseDownloadDir, true)
	p.SetPreference(PrefAlwaysAskForce, false)
	p.SetPreference(PrefNeverAskOpenFile, OpenFileTypes)
	p.SetPreference(PrefNeverAskSaveToDisk, SaveToDiskTypes)
	p.SetPreference(PrefDisableFullPagePlug, "application/pdf")
	p.SetPreference(PrefPDFJSDisabled, true)
	return p
}

// SetPreference sets a single preference.
func (p *Firefox) SetPreference(name string, value interface{}) {
	p.prefs[name] = value
}

// Preferences returns a copy of all preferences.
func (p *Firefox) Preferences() map[string]interface{} {
	out := make(map[string]interface{}, len(p.prefs))
	for k, v := range p.prefs {
		out[k] = v
	}
	return out
}

// Capabilities renders the profile as moz:firefoxOptions.
func (p *Firefox) Capabilities() firefox.Capabilities {
	return firefox.Capabilities{
		Prefs: p.Preferences(),
	}
}

// EnsureDir creates dir if it does not exist. It reports whether the
// directory was created by this call. Calling it again is a no-op.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, core.ErrDownloadDirSetup.WithDetails(map[string]interface{}{
				"dir": dir,
			}).WithMessage("downloads path exists and is not a directory")
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, core.ErrDownloadDirSetup.WithDetails(map[string]interface{}{"dir": dir}).WithCause(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, core.ErrDownloadDirSetup.WithDetails(map[string]interface{}{"dir": dir}).WithCause(err)
	}
	return true, nil
}
