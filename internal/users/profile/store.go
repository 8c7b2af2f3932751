// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"time"

	"github.com/taibuivan/devhub/internal/platform/ordered"
	"github.com/taibuivan/devhub/internal/users/auth"
)

// ProfileRepository defines the data access contract for profiles.
//
// Profiles are addressed by their owner's account id. Load fills
// [Profile.User] from the owning account. Save creates the row when the owner
// has none and otherwise replaces it.
type ProfileRepository interface {
	ordered.Store[Profile]

	// List returns every profile.
	List(ctx context.Context) ([]*Profile, error)

	// DeleteByOwner removes the owner's profile and reports how many rows went.
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}

// OwnerDirectory confirms the account a new profile is created for still exists.
type OwnerDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.Account, error)
}

// RepoSource yields a user's latest public repositories.
type RepoSource interface {
	LatestRepos(ctx context.Context, username string) ([]Repo, error)
}

// RepoCache stores repository lookups for a limited time.
type RepoCache interface {
	// Get returns NOT_FOUND on a miss.
	Get(ctx context.Context, username string) ([]Repo, error)
	Set(ctx context.Context, username string, repos []Repo, ttl time.Duration) error
}
