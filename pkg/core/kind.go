// Package core provides the shared types of driver-factory: browser and
// target identities, and the error taxonomy used by every construction path.
package core

// ErrorKind classifies a driver construction failure so callers can tell
// "no such target" apart from "target recognized but construction failed".
type ErrorKind int

const (
	KindNone               ErrorKind = iota // No error
	KindUnrecognizedTarget                  // Unknown location mode, browser or mobile target
	KindResourceSetup                       // Downloads directory, artifact file
	KindUpload                              // Artifact upload to cloud storage
	KindClient                              // Session creation failed in the remote client
	KindConfig                              // Missing credentials, invalid configuration
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnrecognizedTarget:
		return "unrecognized_target"
	case KindResourceSetup:
		return "resource_setup"
	case KindUpload:
		return "upload"
	case KindClient:
		return "client"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// IsFatal reports whether an error of this kind leaves the caller without a
// usable result. Resource setup failures are warnings: the profile is still built.
func (k ErrorKind) IsFatal() bool {
	return k != KindNone && k != KindResourceSetup
}
