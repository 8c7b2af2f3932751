// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account removes an account together with everything it owns.

The cascade runs posts, then profile, then the account row. It is not a
transaction: a failure part way leaves the earlier steps applied and is
reported as STORAGE_UNAVAILABLE. Every step deletes nothing when there is
nothing left, so the caller retries the whole teardown.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/sec"
)

// # Service Layer

// Service runs the account teardown cascade.
type Service struct {
	posts    PostRemover
	profiles ProfileRemover
	accounts AccountRemover
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(posts PostRemover, profiles ProfileRemover, accounts AccountRemover, logger *slog.Logger) *Service {
	return &Service{
		posts:    posts,
		profiles: profiles,
		accounts: accounts,
		logger:   logger,
	}
}

/*
Teardown deletes the posts, profile and account of accountID.

Returns:
  - error: FORBIDDEN unless caller is accountID, STORAGE_UNAVAILABLE when a
    step fails (already applied steps stay applied)
*/
func (service *Service) Teardown(ctx context.Context, caller sec.Identity, accountID string) error {
	if err := sec.RequireOwner(accountID, caller, "account"); err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func(context.Context, string) error
	}{
		{"posts", service.posts.DeleteByAuthor},
		{"profile", service.profiles.DeleteByOwner},
		{"account", service.accounts.Delete},
	}

	for _, step := range steps {
		if err := step.run(ctx, accountID); err != nil {
			service.logger.ErrorContext(ctx, "account_teardown_step_failed",
				slog.String("user_id", accountID),
				slog.String("step", step.name),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("account_service_teardown_%s_failed: %w", step.name, asUnavailable(err))
		}
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", accountID))

	return nil
}

func asUnavailable(err error) error {
	if apperr.HasCode(err, apperr.CodeStorageUnavailable) {
		return err
	}
	return apperr.StorageUnavailable(err)
}
