// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "context"

// PostRemover deletes every post written by an account.
type PostRemover interface {
	DeleteByAuthor(ctx context.Context, author string) error
}

// ProfileRemover deletes an account's profile.
type ProfileRemover interface {
	DeleteByOwner(ctx context.Context, owner string) error
}

// AccountRemover deletes the account row. A missing row is not an error.
type AccountRemover interface {
	Delete(ctx context.Context, id string) error
}
