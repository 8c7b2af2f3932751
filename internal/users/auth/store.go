// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/devhub/internal/platform/sec"
)

// # Account Data Access

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(ctx context.Context, id string) (*Account, error)

	/*
		FindByEmail returns the account registered under email (case-insensitive).

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*Account, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: apperr.Conflict on a duplicate email, or storage failures
	*/
	Create(ctx context.Context, account *Account) error

	/*
		Delete removes the account. Deleting a missing account is not an error.
	*/
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs credentials for a verified account.
type TokenIssuer interface {
	Issue(identity sec.Identity) (string, error)
}
