package config

import (
	"os"
	"path/filepath"
	"sync"
)

const envHome = "DRIVER_FACTORY_HOME"

var (
	homeOnce sync.Once
	homeDir  string
)

// GetHome returns the driver-factory install root.
//
// Resolution order:
//  1. $DRIVER_FACTORY_HOME environment variable
//  2. The binary's directory, if it is a bin/ directory
//  3. Current working directory (development fallback)
//
// Test assets live one level above it: <home>/../app and <home>/../downloads.
func GetHome() string {
	homeOnce.Do(func() {
		homeDir = resolveHome()
	})
	return homeDir
}

// AppDirFor returns <root>/../app for an explicit install root.
func AppDirFor(root string) string {
	return siblingDir(root, "app")
}

// DownloadsDirFor returns <root>/../downloads for an explicit install root.
func DownloadsDirFor(root string) string {
	return siblingDir(root, "downloads")
}

// ArtifactPath returns the absolute path of the named application artifact.
func ArtifactPath(root, name string) string {
	return filepath.Join(AppDirFor(root), name)
}

func siblingDir(root, name string) string {
	p := filepath.Join(root, "..", name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func resolveHome() string {
	// 1. Environment variable
	if env := os.Getenv(envHome); env != "" {
		return env
	}

	// 2. Binary-relative: <root>/bin/driverfactory puts assets in <root>/app
	if execPath, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = resolved
		}
		binDir := filepath.Dir(execPath)
		if filepath.Base(binDir) == "bin" {
			return binDir
		}
	}

	// 3. Current working directory
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}

	return "."
}

// ResetHome resets the cached home directory (for testing).
func ResetHome() {
	homeOnce = sync.Once{}
	homeDir = ""
}
