// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/pkg/uuid"
)

// Service implements account authentication use cases.
type Service struct {
	accountRepository AccountRepository
	tokenIssuer       TokenIssuer
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(accountRepo AccountRepository, issuer TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		tokenIssuer:       issuer,
		logger:            logger,
		now:               time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register hashes the password, persists a new account and signs a credential for it.

Returns:
  - string: Signed credential for the new account
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	email := normalizeEmail(input.Email)

	// Friendly conflict before paying for bcrypt; the unique index still backs it.
	_, err := service.accountRepository.FindByEmail(ctx, email)
	if err == nil {
		return "", apperr.Conflict("User already exists")
	}
	if !apperr.IsNotFound(err) {
		return "", fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Avatar:       GravatarURL(email),
		CreatedAt:    service.now().UTC(),
	}

	if err := service.accountRepository.Create(ctx, account); err != nil {
		return "", fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("account_registered", slog.String("user_id", account.ID))

	return service.issue(account)
}

// # Authentication Flow

/*
Login validates credentials and signs a credential.

Unknown email and wrong password produce the same INVALID_CREDENTIALS error.
*/
func (service *Service) Login(ctx context.Context, email, password string) (string, error) {
	account, err := service.accountRepository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.InvalidCredentials()
		}
		return "", fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return "", apperr.InvalidCredentials()
	}

	return service.issue(account)
}

// Me returns the caller's account without its password hash.
func (service *Service) Me(ctx context.Context, caller sec.Identity) (*Account, error) {
	account, err := service.accountRepository.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_me_failed: %w", err)
	}
	return account, nil
}

func (service *Service) issue(account *Account) (string, error) {
	token, err := service.tokenIssuer.Issue(sec.Identity{ID: account.ID})
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return token, nil
}

// GravatarURL derives the avatar address for an email.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(normalizeEmail(email)))
	return gravatarBase + hex.EncodeToString(sum[:]) + gravatarOptions
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
