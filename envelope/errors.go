package envelope

import "strings"

// ConfigurationError covers malformed invocations: missing/invalid
// paths, undersized files, empty passwords. Fatal and batch-aborting;
// no file in the batch is touched.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func newInvalidFilepathsError(names []string) *ConfigurationError {
	return &ConfigurationError{msg: "Invalid filepaths for the following filenames: " + strings.Join(names, ", ")}
}

func newFileSizeError(names []string) *ConfigurationError {
	return &ConfigurationError{msg: "File size should be greater than 31 bytes for the following filenames: " + strings.Join(names, ", ")}
}

// ErrEmptyPassword is returned when the resolved password is empty.
var ErrEmptyPassword = &ConfigurationError{msg: "password must not be empty"}

// StateError covers a sidecar being present where absent is expected,
// or vice versa. Fatal and batch-aborting.
type StateError struct {
	msg string
}

func (e *StateError) Error() string { return e.msg }

func newUnencryptedError(names []string) *StateError {
	return &StateError{msg: strings.Join(names, ", ") + " are unencrypted, \nNo files were decrypted"}
}

func newAlreadyEncryptedError(names []string) *StateError {
	return &StateError{msg: strings.Join(names, ", ") + " are already encrypted, \nNo files were encrypted"}
}

// AuthError reports a password-validator mismatch. In batch decrypt
// this is fatal and batch-aborting; in search it is a per-file
// warning and the file is simply skipped.
type AuthError struct {
	msg string
}

func (e *AuthError) Error() string { return e.msg }

func newAuthError(names []string) *AuthError {
	return &AuthError{msg: "The password did not match for the following filenames: " + strings.Join(names, ", ")}
}

// IntegrityError describes a MAC mismatch detected during decrypt of a
// single file. Per spec.md it is non-fatal: the file is left
// untouched and the batch continues. DecryptFiles does not return it;
// it flags such a file with DecryptResult.Tampered instead.
type IntegrityError struct {
	Filename string
}

func (e *IntegrityError) Error() string {
	return e.Filename + " has been tampered with and has not been decrypted"
}

// NoMatchError is returned by Search when zero sidecars in the
// directory matched the supplied password.
type NoMatchError struct{}

func (e *NoMatchError) Error() string {
	return "no encrypted files in this directory matched the supplied password"
}
