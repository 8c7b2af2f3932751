// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/users/auth"
)

// memAccounts is an in-memory [auth.AccountRepository].
type memAccounts struct {
	mu       sync.Mutex
	accounts map[string]*auth.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[string]*auth.Account{}}
}

func (m *memAccounts) FindByID(_ context.Context, id string) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account, ok := m.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memAccounts) Create(_ context.Context, account *auth.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService("secret", "test", sec.FixedClock(time.Now()))
	require.NoError(t, err)
	return tokens
}

func newService(t *testing.T) (*auth.Service, *memAccounts, *sec.TokenService) {
	t.Helper()
	accounts := newMemAccounts()
	tokens := newTokens(t)
	return auth.NewService(accounts, tokens, slog.New(slog.NewTextHandler(io.Discard, nil))), accounts, tokens
}

/*
TestService_RegisterThenLogin walks the happy path and checks the credential
names the stored account.
*/
func TestService_RegisterThenLogin(t *testing.T) {
	service, accounts, tokens := newService(t)
	ctx := context.Background()

	token, err := service.Register(ctx, auth.RegisterInput{Name: " Ada ", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)

	stored, err := accounts.FindByID(ctx, identity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Name)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.Equal(t, auth.GravatarURL("ada@example.com"), stored.Avatar)

	loginToken, err := service.Login(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)

	loginIdentity, err := tokens.Verify(loginToken)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, loginIdentity.ID)
}

/*
TestService_RegisterDuplicate returns CONFLICT for a taken email.
*/
func TestService_RegisterDuplicate(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Name: "Eve", Email: "ADA@example.com", Password: "secret2"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestService_RegisterOverlongPassword rejects input bcrypt cannot hash as a
validation failure and stores nothing.
*/
func TestService_RegisterOverlongPassword(t *testing.T) {
	service, accounts, _ := newService(t)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: strings.Repeat("x", 80),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, "password", appErr.Details[0].Field)
	assert.Empty(t, accounts.accounts)
}

/*
TestService_LoginFailures share one error for both causes.
*/
func TestService_LoginFailures(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := service.Login(ctx, "ada@example.com", "nope")
	_, unknownEmail := service.Login(ctx, "eve@example.com", "secret1")

	assert.True(t, apperr.HasCode(wrongPassword, apperr.CodeInvalidCredentials))
	assert.True(t, apperr.HasCode(unknownEmail, apperr.CodeInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

/*
TestService_Me resolves the caller and reports NOT_FOUND once the account is gone.
*/
func TestService_Me(t *testing.T) {
	service, accounts, tokens := newService(t)
	ctx := context.Background()

	token, err := service.Register(ctx, auth.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	identity, err := tokens.Verify(token)
	require.NoError(t, err)

	account, err := service.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "Ada", account.Name)

	require.NoError(t, accounts.Delete(ctx, identity.ID))
	_, err = service.Me(ctx, identity)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGravatarURL(t *testing.T) {
	// md5("ada@example.com")
	assert.Equal(t,
		"https://www.gravatar.com/avatar/3e3417d7ef77d5932a6734b916515ed5?s=200&r=pg&d=mm",
		auth.GravatarURL(" Ada@Example.com "),
	)
}
