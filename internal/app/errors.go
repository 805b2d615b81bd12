package app

import "errors"

var (
	// ErrNotFound means no record exists under the requested id.
	ErrNotFound = errors.New("website not found")
	// ErrAccessDenied means the supplied password did not match a private
	// site's password.
	ErrAccessDenied = errors.New("access denied")
)
