// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/database/schema"
	"github.com/taibuivan/devhub/internal/platform/dberr"
	"github.com/taibuivan/devhub/internal/platform/postgres"
)

// # Post Repository

// PostgresPostRepository implements [PostRepository] using pgx. Likes and
// comments are JSONB columns on the post row.
type PostgresPostRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostRepository creates a new PostgreSQL implementation of [PostRepository].
func NewPostRepository(pool *pgxpool.Pool, timeout time.Duration) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool, timeout: timeout}
}

var postColumns = strings.Join(schema.SocialPost.Columns(), ", ")

// Create inserts a new post row.
func (repository *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	likes, comments, err := encodeLists(post)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.SocialPost.Table, postColumns,
	)

	_, err = repository.pool.Exec(ctx, query,
		post.ID, post.Author, post.Name, post.Avatar, post.Text, likes, comments, post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", dberr.Wrap(err, "Post"))
	}

	return nil
}

// Load retrieves one post with its likes and comments.
func (repository *PostgresPostRepository) Load(ctx context.Context, id string) (*Post, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		postColumns, schema.SocialPost.Table, schema.SocialPost.ID,
	)

	post, err := scanPost(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	return post, nil
}

// Save writes back the mutable parts of a post: text, likes and comments.
func (repository *PostgresPostRepository) Save(ctx context.Context, post *Post) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	likes, comments, err := encodeLists(post)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		schema.SocialPost.Table,
		schema.SocialPost.Text, schema.SocialPost.Likes, schema.SocialPost.Comments,
		schema.SocialPost.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, post.ID, post.Text, likes, comments)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_save_failed: %w", dberr.Wrap(err, "Post"))
	}

	// Deleted between load and save.
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

// List returns every post, newest first.
func (repository *PostgresPostRepository) List(ctx context.Context) ([]*Post, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC, %s DESC`,
		postColumns, schema.SocialPost.Table, schema.SocialPost.CreatedAt, schema.SocialPost.ID,
	)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_failed: %w", dberr.Wrap(err, "Post"))
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_post_repo_list_scan_failed: %w", dberr.Wrap(err, "Post"))
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_failed: %w", dberr.Wrap(err, "Post"))
	}

	return posts, nil
}

// Delete removes one post. A missing row is a no-op.
func (repository *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialPost.Table, schema.SocialPost.ID)
	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		if wrapped := dberr.Wrap(err, "Post"); !apperr.IsNotFound(wrapped) {
			return fmt.Errorf("postgres_post_repo_delete_failed: %w", wrapped)
		}
	}

	return nil
}

// DeleteByAuthor removes every post written by author.
func (repository *PostgresPostRepository) DeleteByAuthor(ctx context.Context, author string) (int64, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialPost.Table, schema.SocialPost.Author)

	tag, err := repository.pool.Exec(ctx, query, author)
	if err != nil {
		wrapped := dberr.Wrap(err, "Post")
		if apperr.IsNotFound(wrapped) {
			return 0, nil
		}
		return 0, fmt.Errorf("postgres_post_repo_delete_by_author_failed: %w", wrapped)
	}

	return tag.RowsAffected(), nil
}

// # Helpers

func encodeLists(post *Post) ([]byte, []byte, error) {
	postLikes := post.Likes
	if postLikes == nil {
		postLikes = []Like{}
	}
	postComments := post.Comments
	if postComments == nil {
		postComments = []Comment{}
	}

	likes, err := json.Marshal(postLikes)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("encode likes: %w", err))
	}
	comments, err := json.Marshal(postComments)
	if err != nil {
		return nil, nil, apperr.Internal(fmt.Errorf("encode comments: %w", err))
	}

	return likes, comments, nil
}

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	var likes, comments []byte

	err := row.Scan(
		&post.ID,
		&post.Author,
		&post.Name,
		&post.Avatar,
		&post.Text,
		&likes,
		&comments,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Likes = []Like{}
	post.Comments = []Comment{}
	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	return post, nil
}
