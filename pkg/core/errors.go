package core

import (
	"errors"
	"fmt"
)

// DriverError represents a structured driver construction error
type DriverError struct {
	Kind    ErrorKind
	Code    string                 // Machine-readable code: unsupported_browser, session_create, etc.
	Message string                 // Human-readable message
	Details map[string]interface{} // Additional context
	Cause   error                  // Underlying error
}

// Error implements the error interface
func (e *DriverError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s %v", msg, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DriverError) Unwrap() error {
	return e.Cause
}

// Is matches another DriverError by code, so derived copies still match
// the predefined errors below.
func (e *DriverError) Is(target error) bool {
	t, ok := target.(*DriverError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause
func (e *DriverError) WithCause(cause error) *DriverError {
	return &DriverError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *DriverError) WithMessage(msg string) *DriverError {
	return &DriverError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: msg,
		Details: e.Details,
		Cause:   e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *DriverError) WithDetails(details map[string]interface{}) *DriverError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &DriverError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
		Cause:   e.Cause,
	}
}

// Predefined errors
var (
	// Unrecognized targets
	ErrUnknownLocationMode = &DriverError{
		Kind:    KindUnrecognizedTarget,
		Code:    "unknown_location_mode",
		Message: "unknown location mode",
	}
	ErrUnsupportedBrowser = &DriverError{
		Kind:    KindUnrecognizedTarget,
		Code:    "unsupported_browser",
		Message: "unsupported browser",
	}
	ErrUnknownMobileTarget = &DriverError{
		Kind:    KindUnrecognizedTarget,
		Code:    "unknown_mobile_target",
		Message: "unknown mobile target",
	}
	ErrAmbiguousMobileTarget = &DriverError{
		Kind:    KindUnrecognizedTarget,
		Code:    "ambiguous_mobile_target",
		Message: "exactly one of cloud, physical device or emulator must be selected",
	}

	// Resource setup
	ErrDownloadDirSetup = &DriverError{
		Kind:    KindResourceSetup,
		Code:    "download_dir_setup",
		Message: "could not create downloads directory",
	}
	ErrArtifactMissing = &DriverError{
		Kind:    KindResourceSetup,
		Code:    "artifact_missing",
		Message: "application artifact could not be read",
	}

	// Upload
	ErrArtifactUpload = &DriverError{
		Kind:    KindUpload,
		Code:    "artifact_upload",
		Message: "artifact upload failed",
	}

	// Client
	ErrSessionCreate = &DriverError{
		Kind:    KindClient,
		Code:    "session_create",
		Message: "failed to create session",
	}

	// Config
	ErrMissingCredentials = &DriverError{
		Kind:    KindConfig,
		Code:    "missing_credentials",
		Message: "grid credentials are not configured",
	}
	ErrInvalidConfig = &DriverError{
		Kind:    KindConfig,
		Code:    "invalid_config",
		Message: "invalid configuration",
	}
)

// KindOf returns the kind of the first DriverError in err's chain,
// or KindNone when there is none.
func KindOf(err error) ErrorKind {
	var de *DriverError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindNone
}

// IsKind reports whether err carries a DriverError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
