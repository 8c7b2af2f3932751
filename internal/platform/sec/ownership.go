// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/devhub/internal/platform/apperr"

// # Ownership

// Decision is the outcome of an ownership check.
type Decision int

const (
	// Deny is the zero value so an unset decision never grants access.
	Deny Decision = iota
	Allow
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize compares the recorded owner of a resource with the caller.
// An empty owner never matches.
func Authorize(owner string, caller Identity) Decision {
	if owner == "" || owner != caller.ID {
		return Deny
	}
	return Allow
}

// RequireOwner returns a FORBIDDEN [apperr.AppError] unless caller owns the resource.
//
// Callers must confirm the resource exists first so a missing resource reports
// NOT_FOUND rather than FORBIDDEN.
func RequireOwner(owner string, caller Identity, resource string) error {
	if Authorize(owner, caller) == Deny {
		return apperr.Forbidden("User not authorized to modify this " + resource)
	}
	return nil
}
