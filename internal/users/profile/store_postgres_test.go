// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/postgres/testhelper"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/users/auth"
	"github.com/taibuivan/devhub/internal/users/profile"
	"github.com/taibuivan/devhub/pkg/pointer"
	"github.com/taibuivan/devhub/pkg/skillset"
	"github.com/taibuivan/devhub/pkg/uuid"
)

/*
TestPostgresProfileRepository runs the upsert and history flow against a real
database, including the owner summary join.
*/
func TestPostgresProfileRepository(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	accounts := auth.NewAccountRepository(pool, 5*time.Second)
	owner := &auth.Account{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Avatar: "//gravatar/ada", CreatedAt: time.Now()}
	require.NoError(t, accounts.Create(ctx, owner))

	repository := profile.NewProfileRepository(pool, 5*time.Second)
	service := profile.NewService(repository, accounts, &stubRepos{}, quietLogger())
	caller := sec.Identity{ID: owner.ID}

	created, err := service.Upsert(ctx, caller, profile.UpsertInput{
		Status: pointer.To("Developer"),
		Skills: skillset.Parse("go, sql"),
		Social: profile.Social{YouTube: "youtube.com/ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", created.User.Name)
	assert.Equal(t, "//gravatar/ada", created.User.Avatar)
	assert.Equal(t, skillset.Set{"go", "sql"}, created.Skills)
	assert.Equal(t, "https://youtube.com/ada", created.Social.YouTube)

	replaced, err := service.Upsert(ctx, caller, profile.UpsertInput{
		Status: pointer.To("Lead"),
		Skills: skillset.Set{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID, "one profile per owner")
	assert.Equal(t, "Lead", replaced.Status)

	withHistory, err := service.AddEducation(ctx, caller, profile.EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "Math", From: "2010-09-01",
	})
	require.NoError(t, err)
	require.Len(t, withHistory.Education, 1)

	listed, err := repository.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, withHistory.Education, listed[0].Education)

	_, err = repository.Load(ctx, "not-a-uuid")
	assert.True(t, apperr.IsNotFound(err))

	removed, err := repository.DeleteByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = repository.DeleteByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// A credential outlives the account it names.
	require.NoError(t, accounts.Delete(ctx, owner.ID))

	_, err = service.Upsert(ctx, caller, profile.UpsertInput{Status: pointer.To("Ghost")})
	assert.True(t, apperr.IsNotFound(err))

	orphan := &profile.Profile{ID: uuid.New(), Owner: owner.ID, Status: "Ghost", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	err = repository.Save(ctx, orphan)
	assert.True(t, apperr.IsNotFound(err))
}
