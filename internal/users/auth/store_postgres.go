// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/database/schema"
	"github.com/taibuivan/devhub/internal/platform/dberr"
	"github.com/taibuivan/devhub/internal/platform/postgres"
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
// Every call is bounded by timeout.
func NewAccountRepository(pool *pgxpool.Pool, timeout time.Duration) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool, timeout: timeout}
}

var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// Create inserts a new row into users.account.
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.UserAccount.Table, accountColumns,
	)

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Avatar,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_create_failed: %w", dberr.Wrap(err, "User"))
	}

	return nil
}

// FindByID retrieves an account by primary key.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)
	return repository.findOne(ctx, query, id)
}

// FindByEmail retrieves an account by its case-insensitive email.
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email,
	)
	return repository.findOne(ctx, query, email)
}

// Delete removes an account row. A missing row is a no-op so teardown can be retried.
func (repository *PostgresAccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)
	if _, err := repository.pool.Exec(ctx, query, id); err != nil {
		if wrapped := dberr.Wrap(err, "User"); !apperr.IsNotFound(wrapped) {
			return fmt.Errorf("postgres_account_repo_delete_failed: %w", wrapped)
		}
	}

	return nil
}

func (repository *PostgresAccountRepository) findOne(ctx context.Context, query string, arg string) (*Account, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	account := &Account{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Avatar,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return account, nil
}
