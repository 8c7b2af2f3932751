// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

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
	"github.com/taibuivan/devhub/pkg/skillset"
)

// # Profile Repository

// PostgresProfileRepository implements [ProfileRepository] using pgx.
type PostgresProfileRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewProfileRepository creates a new PostgreSQL implementation of [ProfileRepository].
func NewProfileRepository(pool *pgxpool.Pool, timeout time.Duration) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool, timeout: timeout}
}

var (
	profileColumns = strings.Join(schema.UserProfile.Columns(), ", ")

	// selectProfiles joins the owning account for the name and avatar summary.
	selectProfiles = fmt.Sprintf(`SELECT %s, a.%s, a.%s FROM %s p JOIN %s a ON a.%s = p.%s`,
		prefixed("p", schema.UserProfile.Columns()),
		schema.UserAccount.Name, schema.UserAccount.Avatar,
		schema.UserProfile.Table, schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserProfile.Owner,
	)
)

// Load retrieves the profile owned by owner.
func (repository *PostgresProfileRepository) Load(ctx context.Context, owner string) (*Profile, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := selectProfiles + fmt.Sprintf(` WHERE p.%s = $1`, schema.UserProfile.Owner)

	profile, err := scanProfile(repository.pool.QueryRow(ctx, query, owner))
	if err != nil {
		return nil, dberr.Wrap(err, "Profile")
	}

	return profile, nil
}

// Save inserts the profile or replaces the owner's existing row. The id and
// creation time of an existing row are kept.
func (repository *PostgresProfileRepository) Save(ctx context.Context, profile *Profile) error {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	skills, social, experience, education, err := encodeDocuments(profile)
	if err != nil {
		return err
	}

	t := schema.UserProfile
	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		t.Table, profileColumns,
		t.Owner,
		t.Company, t.Company, t.Website, t.Website, t.Location, t.Location, t.Status, t.Status,
		t.Skills, t.Skills, t.Bio, t.Bio, t.GitHubUsername, t.GitHubUsername, t.Social, t.Social,
		t.Experience, t.Experience, t.Education, t.Education, t.UpdatedAt, t.UpdatedAt,
	)

	_, err = repository.pool.Exec(ctx, query,
		profile.ID,
		profile.Owner,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		skills,
		profile.Bio,
		profile.GitHubUsername,
		social,
		experience,
		education,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_save_failed: %w", dberr.Wrap(err, "Profile"))
	}

	return nil
}

// List returns every profile, most recently updated first.
func (repository *PostgresProfileRepository) List(ctx context.Context) ([]*Profile, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := selectProfiles + fmt.Sprintf(` ORDER BY p.%s DESC`, schema.UserProfile.UpdatedAt)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_profile_repo_list_failed: %w", dberr.Wrap(err, "Profile"))
	}
	defer rows.Close()

	profiles := []*Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_profile_repo_list_scan_failed: %w", dberr.Wrap(err, "Profile"))
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_profile_repo_list_failed: %w", dberr.Wrap(err, "Profile"))
	}

	return profiles, nil
}

// DeleteByOwner removes the owner's profile.
func (repository *PostgresProfileRepository) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	ctx, cancel := postgres.Bound(ctx, repository.timeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserProfile.Table, schema.UserProfile.Owner)

	tag, err := repository.pool.Exec(ctx, query, owner)
	if err != nil {
		wrapped := dberr.Wrap(err, "Profile")
		if apperr.IsNotFound(wrapped) {
			return 0, nil
		}
		return 0, fmt.Errorf("postgres_profile_repo_delete_failed: %w", wrapped)
	}

	return tag.RowsAffected(), nil
}

// # Helpers

func prefixed(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

func encodeDocuments(profile *Profile) (skills, social, experience, education []byte, err error) {
	skillList := profile.Skills
	if skillList == nil {
		skillList = skillset.Set{}
	}
	experienceList := profile.Experience
	if experienceList == nil {
		experienceList = []Experience{}
	}
	educationList := profile.Education
	if educationList == nil {
		educationList = []Education{}
	}

	if skills, err = json.Marshal(skillList); err != nil {
		return nil, nil, nil, nil, apperr.Internal(fmt.Errorf("encode skills: %w", err))
	}
	if social, err = json.Marshal(profile.Social); err != nil {
		return nil, nil, nil, nil, apperr.Internal(fmt.Errorf("encode social: %w", err))
	}
	if experience, err = json.Marshal(experienceList); err != nil {
		return nil, nil, nil, nil, apperr.Internal(fmt.Errorf("encode experience: %w", err))
	}
	if education, err = json.Marshal(educationList); err != nil {
		return nil, nil, nil, nil, apperr.Internal(fmt.Errorf("encode education: %w", err))
	}

	return skills, social, experience, education, nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	profile := &Profile{}
	var skills, social, experience, education []byte

	err := row.Scan(
		&profile.ID,
		&profile.Owner,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Status,
		&skills,
		&profile.Bio,
		&profile.GitHubUsername,
		&social,
		&experience,
		&education,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.User.Name,
		&profile.User.Avatar,
	)
	if err != nil {
		return nil, err
	}
	profile.User.ID = profile.Owner

	profile.Skills = skillset.Set{}
	profile.Experience = []Experience{}
	profile.Education = []Education{}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	if err := json.Unmarshal(social, &profile.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}
	if err := json.Unmarshal(experience, &profile.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &profile.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}

	return profile, nil
}
