// Package gate decides whether a viewer may see a record's rendered output.
//
// This is a soft content gate, not a security boundary: passwords are
// compared as plain strings with no hashing, lockout, or rate limiting, and
// the guarded data is readable by anyone with store access. It only prevents
// casual UI access.
package gate

import "siteforge/pkg/domain"

// CanView reports whether a viewer holding suppliedPassword may see rec.
// Public records admit everyone; private ones require an exact match.
func CanView(rec domain.WebsiteRecord, suppliedPassword string) bool {
	if rec.IsPublic {
		return true
	}
	return suppliedPassword == rec.Password
}
