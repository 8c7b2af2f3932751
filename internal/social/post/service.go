// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/ordered"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/pkg/uuid"
)

var (
	likes = ordered.Collection[Post, Like]{
		Get: func(p *Post) []Like { return p.Likes },
		Set: func(p *Post, entries []Like) { p.Likes = entries },
	}
	comments = ordered.Collection[Post, Comment]{
		Get: func(p *Post) []Comment { return p.Comments },
		Set: func(p *Post, entries []Comment) { p.Comments = entries },
	}
)

// Service orchestrates post, like and comment use cases.
type Service struct {
	postRepository PostRepository
	authors        AuthorDirectory
	likes          *ordered.Mutator[Post, Like]
	comments       *ordered.Mutator[Post, Comment]
	logger         *slog.Logger
	now            func() time.Time
}

// NewService constructs a new [Service].
func NewService(postRepo PostRepository, authors AuthorDirectory, logger *slog.Logger) *Service {
	return &Service{
		postRepository: postRepo,
		authors:        authors,
		likes:          ordered.New(ordered.Store[Post](postRepo), likes),
		comments:       ordered.New(ordered.Store[Post](postRepo), comments),
		logger:         logger,
		now:            time.Now,
	}
}

// # Posts

/*
Create publishes a post by caller, snapshotting the caller's name and avatar.

Returns:
  - *Post: The stored post with empty likes and comments
  - error: NotFound if the caller's account no longer exists
*/
func (service *Service) Create(ctx context.Context, caller sec.Identity, text string) (*Post, error) {
	author, err := service.authors.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("post_service_author_lookup_failed: %w", err)
	}

	post := &Post{
		ID:        uuid.New(),
		Author:    caller.ID,
		Text:      strings.TrimSpace(text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: service.now().UTC(),
	}

	if err := service.postRepository.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	service.logger.Info("post_created", slog.String("post_id", post.ID), slog.String("user_id", caller.ID))

	return post, nil
}

// List returns every post, newest first.
func (service *Service) List(ctx context.Context) ([]*Post, error) {
	posts, err := service.postRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_failed: %w", err)
	}
	return posts, nil
}

// Get returns one post or NOT_FOUND.
func (service *Service) Get(ctx context.Context, id string) (*Post, error) {
	post, err := service.postRepository.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post_service_get_failed: %w", err)
	}
	return post, nil
}

/*
Delete removes a post owned by caller.

Existence is checked before ownership: a missing post is NOT_FOUND for
everyone, an existing post of another user is FORBIDDEN.
*/
func (service *Service) Delete(ctx context.Context, caller sec.Identity, id string) error {
	post, err := service.postRepository.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("post_service_delete_lookup_failed: %w", err)
	}

	if err := sec.RequireOwner(post.Author, caller, "post"); err != nil {
		return err
	}

	if err := service.postRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	service.logger.Info("post_deleted", slog.String("post_id", id), slog.String("user_id", caller.ID))

	return nil
}

// # Likes

// Like adds caller to the head of the post's likes. ALREADY_LIKED if present anywhere.
// NOT_FOUND if the caller's account no longer exists.
func (service *Service) Like(ctx context.Context, caller sec.Identity, postID string) ([]Like, error) {
	if _, err := service.authors.FindByID(ctx, caller.ID); err != nil {
		return nil, fmt.Errorf("post_service_author_lookup_failed: %w", err)
	}

	guard := ordered.Unique(func(l Like) string { return l.User }, caller.ID, error(apperr.AlreadyLiked()))

	updated, err := service.likes.InsertHead(ctx, postID, Like{User: caller.ID}, guard)
	if err != nil {
		return nil, fmt.Errorf("post_service_like_failed: %w", err)
	}
	return updated, nil
}

// Unlike removes caller's like. NOT_LIKED when there is none.
func (service *Service) Unlike(ctx context.Context, caller sec.Identity, postID string) ([]Like, error) {
	updated, err := service.likes.RemoveWhere(ctx, postID, ordered.Removal[Like]{
		Match:   func(l Like) bool { return l.User == caller.ID },
		Missing: apperr.NotLiked(),
	})
	if err != nil {
		return nil, fmt.Errorf("post_service_unlike_failed: %w", err)
	}
	return updated, nil
}

// # Comments

// Comment adds a reply by caller to the head of the post's comments.
func (service *Service) Comment(ctx context.Context, caller sec.Identity, postID, text string) ([]Comment, error) {
	author, err := service.authors.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("post_service_author_lookup_failed: %w", err)
	}

	comment := Comment{
		ID:        uuid.New(),
		User:      caller.ID,
		Text:      strings.TrimSpace(text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: service.now().UTC(),
	}

	updated, err := service.comments.InsertHead(ctx, postID, comment, nil)
	if err != nil {
		return nil, fmt.Errorf("post_service_comment_failed: %w", err)
	}
	return updated, nil
}

// Uncomment deletes one comment. The comment author must be the caller; the
// post author has no say.
func (service *Service) Uncomment(ctx context.Context, caller sec.Identity, postID, commentID string) ([]Comment, error) {
	updated, err := service.comments.RemoveWhere(ctx, postID, ordered.Removal[Comment]{
		Match:   func(c Comment) bool { return c.ID == commentID },
		Missing: apperr.NotFound("Comment"),
		Authorize: func(c Comment) error {
			return sec.RequireOwner(c.User, caller, "comment")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("post_service_uncomment_failed: %w", err)
	}
	return updated, nil
}

// # Account Teardown

// DeleteByAuthor removes every post of author. Safe to repeat.
func (service *Service) DeleteByAuthor(ctx context.Context, author string) error {
	removed, err := service.postRepository.DeleteByAuthor(ctx, author)
	if err != nil {
		return fmt.Errorf("post_service_delete_by_author_failed: %w", err)
	}
	service.logger.Info("posts_removed_for_author", slog.String("user_id", author), slog.Int64("count", removed))
	return nil
}
