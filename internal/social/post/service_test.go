// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/social/post"
	"github.com/taibuivan/devhub/internal/users/auth"
)

// memPosts is an in-memory [post.PostRepository] that stores deep copies.
type memPosts struct {
	mu      sync.Mutex
	posts   map[string]*post.Post
	order   []string
	saves   int
	saveErr error
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[string]*post.Post{}}
}

func clonePost(p *post.Post) *post.Post {
	copied := *p
	copied.Likes = slices.Clone(p.Likes)
	copied.Comments = slices.Clone(p.Comments)
	return &copied
}

func (m *memPosts) Load(_ context.Context, id string) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, apperr.NotFound("Post")
}

func (m *memPosts) Save(_ context.Context, p *post.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.posts[p.ID]; !ok {
		return apperr.NotFound("Post")
	}
	m.saves++
	m.posts[p.ID] = clonePost(p)
	return nil
}

func (m *memPosts) Create(_ context.Context, p *post.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[p.ID] = clonePost(p)
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memPosts) List(_ context.Context) ([]*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*post.Post{}
	for i := len(m.order) - 1; i >= 0; i-- {
		if p, ok := m.posts[m.order[i]]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out, nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	return nil
}

func (m *memPosts) DeleteByAuthor(_ context.Context, author string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, p := range m.posts {
		if p.Author == author {
			delete(m.posts, id)
			removed++
		}
	}
	return removed, nil
}

// memAuthors resolves a fixed set of accounts.
type memAuthors map[string]*auth.Account

func (m memAuthors) FindByID(_ context.Context, id string) (*auth.Account, error) {
	if account, ok := m[id]; ok {
		return account, nil
	}
	return nil, apperr.NotFound("User")
}

var (
	alice = sec.Identity{ID: "0190a6e0-0000-7000-8000-00000000000a"}
	bob   = sec.Identity{ID: "0190a6e0-0000-7000-8000-00000000000b"}
)

func newService(t *testing.T) (*post.Service, *memPosts) {
	t.Helper()
	posts := newMemPosts()
	authors := memAuthors{
		alice.ID: {ID: alice.ID, Name: "Alice", Avatar: "//gravatar/alice"},
		bob.ID:   {ID: bob.ID, Name: "Bob", Avatar: "//gravatar/bob"},
	}
	return post.NewService(posts, authors, slog.New(slog.NewTextHandler(io.Discard, nil))), posts
}

/*
TestService_WorkedExample follows a post from creation to removal:
create, like, duplicate like, delete by the author, then lookup.
*/
func TestService_WorkedExample(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "//gravatar/alice", created.Avatar)
	assert.Empty(t, created.Likes)
	assert.NotNil(t, created.Likes)
	assert.NotNil(t, created.Comments)

	likes, err := service.Like(ctx, bob, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{User: bob.ID}}, likes)

	_, err = service.Like(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyLiked))

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)

	require.NoError(t, service.Delete(ctx, alice, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_LikesNewestFirst checks head insertion and that a duplicate deep
in the list is still found.
*/
func TestService_LikesNewestFirst(t *testing.T) {
	service, posts := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = service.Like(ctx, alice, created.ID)
	require.NoError(t, err)
	likes, err := service.Like(ctx, bob, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{User: bob.ID}, {User: alice.ID}}, likes)

	saves := posts.saves
	_, err = service.Like(ctx, alice, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyLiked))
	assert.Equal(t, saves, posts.saves, "a rejected like must not save")
}

/*
TestService_Unlike removes only the caller's like and reports NOT_LIKED otherwise.
*/
func TestService_Unlike(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = service.Unlike(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotLiked))

	_, err = service.Like(ctx, alice, created.ID)
	require.NoError(t, err)
	_, err = service.Like(ctx, bob, created.ID)
	require.NoError(t, err)

	likes, err := service.Unlike(ctx, bob, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{User: alice.ID}}, likes)

	_, err = service.Like(ctx, bob, created.ID)
	assert.NoError(t, err, "a user may like again after unliking")
}

/*
TestService_DeleteOwnership keeps NOT_FOUND and FORBIDDEN apart.
*/
func TestService_DeleteOwnership(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)

	err = service.Delete(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Get(ctx, created.ID)
	require.NoError(t, err, "a forbidden delete leaves the post in place")

	err = service.Delete(ctx, bob, "0190a6e0-0000-7000-8000-ffffffffffff")
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.HasCode(err, apperr.CodeForbidden))
}

/*
TestService_Comments covers insert order, author snapshots and delete rules.
*/
func TestService_Comments(t *testing.T) {
	service, posts := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = service.Comment(ctx, alice, created.ID, "first")
	require.NoError(t, err)
	comments, err := service.Comment(ctx, bob, created.ID, "  second  ")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, "first", comments[1].Text)
	assert.NotEqual(t, comments[0].ID, comments[1].ID)

	bobsComment := comments[0].ID
	alicesComment := comments[1].ID

	t.Run("post author cannot delete another user's comment", func(t *testing.T) {
		saves := posts.saves
		_, err := service.Uncomment(ctx, alice, created.ID, bobsComment)
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
		assert.Equal(t, saves, posts.saves)
	})

	t.Run("unknown comment is not found", func(t *testing.T) {
		_, err := service.Uncomment(ctx, alice, created.ID, "missing")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		_, err := service.Uncomment(ctx, alice, "missing", alicesComment)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("comment author deletes", func(t *testing.T) {
		remaining, err := service.Uncomment(ctx, bob, created.ID, bobsComment)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, alicesComment, remaining[0].ID)
	})
}

/*
TestService_MissingPost reports NOT_FOUND from every sub-collection operation.
*/
func TestService_MissingPost(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Like(ctx, alice, "missing")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Unlike(ctx, alice, "missing")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Comment(ctx, alice, "missing", "hi")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_StorageFailure surfaces an outage during save unchanged.
*/
func TestService_StorageFailure(t *testing.T) {
	service, posts := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)

	posts.saveErr = apperr.StorageUnavailable(errors.New("timeout"))

	_, err = service.Like(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeStorageUnavailable))
}

/*
TestService_ListAndTeardown lists newest first and removes an author's posts
idempotently.
*/
func TestService_ListAndTeardown(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, alice, "one")
	require.NoError(t, err)
	second, err := service.Create(ctx, bob, "two")
	require.NoError(t, err)
	third, err := service.Create(ctx, alice, "three")
	require.NoError(t, err)

	listed, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID},
		[]string{listed[0].ID, listed[1].ID, listed[2].ID})

	require.NoError(t, service.DeleteByAuthor(ctx, alice.ID))
	require.NoError(t, service.DeleteByAuthor(ctx, alice.ID))

	listed, err = service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)
}

/*
TestService_CreateUnknownAuthor fails when the caller's account is gone.
*/
func TestService_CreateUnknownAuthor(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Create(context.Background(), sec.Identity{ID: "ghost"}, "hello")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_LikeUnknownAccount leaves the likes untouched when the caller's
account is gone.
*/
func TestService_LikeUnknownAccount(t *testing.T) {
	service, posts := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, "hello")
	require.NoError(t, err)
	saves := posts.saves

	_, err = service.Like(ctx, sec.Identity{ID: "ghost"}, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
	assert.Equal(t, saves, posts.saves)
}
