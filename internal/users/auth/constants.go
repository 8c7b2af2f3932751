// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Registration Constraints

const (
	// PasswordMinLength is the shortest password registration accepts.
	PasswordMinLength = 6

	// gravatarBase is the avatar service derived from the account email.
	gravatarBase = "https://www.gravatar.com/avatar/"

	// gravatarOptions requests a 200px, PG-rated image with the "mystery person" fallback.
	gravatarOptions = "?s=200&r=pg&d=mm"
)
