// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"

	"github.com/taibuivan/devhub/internal/platform/ordered"
	"github.com/taibuivan/devhub/internal/users/auth"
)

// PostRepository defines the data access contract for posts.
//
// Load and Save treat a post with its likes and comments as one document.
type PostRepository interface {
	ordered.Store[Post]

	// Create persists a new post.
	Create(ctx context.Context, post *Post) error

	// List returns every post, newest first.
	List(ctx context.Context) ([]*Post, error)

	// Delete removes one post. A missing post is not an error.
	Delete(ctx context.Context, id string) error

	/*
		DeleteByAuthor removes every post written by author.

		Returns:
		  - int64: Number of posts removed (zero on a repeated call)
		  - error: Storage failures
	*/
	DeleteByAuthor(ctx context.Context, author string) (int64, error)
}

// AuthorDirectory resolves the account whose name and avatar get snapshotted.
type AuthorDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.Account, error)
}
