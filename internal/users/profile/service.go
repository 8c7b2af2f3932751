// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/ordered"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/pkg/pointer"
	"github.com/taibuivan/devhub/pkg/uuid"
	"github.com/taibuivan/devhub/pkg/weburl"
)

var (
	experience = ordered.Collection[Profile, Experience]{
		Get: func(p *Profile) []Experience { return p.Experience },
		Set: func(p *Profile, entries []Experience) { p.Experience = entries },
	}
	education = ordered.Collection[Profile, Education]{
		Get: func(p *Profile) []Education { return p.Education },
		Set: func(p *Profile, entries []Education) { p.Education = entries },
	}
)

// Service orchestrates profile use cases.
type Service struct {
	profileRepository ProfileRepository
	owners            OwnerDirectory
	experience        *ordered.Mutator[Profile, Experience]
	education         *ordered.Mutator[Profile, Education]
	repos             RepoSource
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service].
func NewService(profileRepo ProfileRepository, owners OwnerDirectory, repos RepoSource, logger *slog.Logger) *Service {
	return &Service{
		profileRepository: profileRepo,
		owners:            owners,
		experience:        ordered.New(ordered.Store[Profile](profileRepo), experience),
		education:         ordered.New(ordered.Store[Profile](profileRepo), education),
		repos:             repos,
		logger:            logger,
		now:               time.Now,
	}
}

// # Profile

/*
Upsert creates the owner's profile or replaces the fields present in input.

Description: Website and social links are stored in canonical HTTPS form.
Skills and social links are recomputed from input on every call. Repeating a
call with the same input yields the same profile apart from UpdatedAt.

Returns:
  - *Profile: The stored profile
  - error: VALIDATION_ERROR for a link that cannot be canonicalized, NOT_FOUND
    when creating a profile for an account that no longer exists
*/
func (service *Service) Upsert(ctx context.Context, owner sec.Identity, input UpsertInput) (*Profile, error) {
	website, social, err := canonicalLinks(input)
	if err != nil {
		return nil, err
	}

	profile, err := service.profileRepository.Load(ctx, owner.ID)
	switch {
	case apperr.IsNotFound(err):
		if _, err := service.owners.FindByID(ctx, owner.ID); err != nil {
			return nil, fmt.Errorf("profile_service_owner_lookup_failed: %w", err)
		}
		profile = &Profile{
			ID:         uuid.New(),
			Owner:      owner.ID,
			Experience: []Experience{},
			Education:  []Education{},
			CreatedAt:  service.now().UTC(),
		}
	case err != nil:
		return nil, fmt.Errorf("profile_service_upsert_lookup_failed: %w", err)
	}

	profile.Company = trimmed(input.Company, profile.Company)
	profile.Location = trimmed(input.Location, profile.Location)
	profile.Status = trimmed(input.Status, profile.Status)
	profile.Bio = trimmed(input.Bio, profile.Bio)
	profile.GitHubUsername = trimmed(input.GitHubUsername, profile.GitHubUsername)
	profile.Website = pointer.Fallback(website, profile.Website)
	profile.Skills = input.Skills
	profile.Social = social
	profile.UpdatedAt = service.now().UTC()

	if err := service.profileRepository.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile_service_upsert_failed: %w", err)
	}

	service.logger.Info("profile_upserted", slog.String("profile_id", profile.ID), slog.String("user_id", owner.ID))

	return service.reload(ctx, owner.ID)
}

// Me returns the caller's own profile.
func (service *Service) Me(ctx context.Context, caller sec.Identity) (*Profile, error) {
	return service.ByUser(ctx, caller.ID)
}

// ByUser returns the profile owned by userID or NOT_FOUND.
func (service *Service) ByUser(ctx context.Context, userID string) (*Profile, error) {
	profile, err := service.profileRepository.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_get_failed: %w", err)
	}
	return profile, nil
}

// List returns every profile.
func (service *Service) List(ctx context.Context) ([]*Profile, error) {
	profiles, err := service.profileRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile_service_list_failed: %w", err)
	}
	return profiles, nil
}

// DeleteByOwner removes the owner's profile. Safe to repeat.
func (service *Service) DeleteByOwner(ctx context.Context, owner string) error {
	removed, err := service.profileRepository.DeleteByOwner(ctx, owner)
	if err != nil {
		return fmt.Errorf("profile_service_delete_failed: %w", err)
	}
	service.logger.Info("profile_removed", slog.String("user_id", owner), slog.Int64("count", removed))
	return nil
}

// # History

// AddExperience puts a new position at the head of the caller's work history.
func (service *Service) AddExperience(ctx context.Context, caller sec.Identity, input ExperienceInput) (*Profile, error) {
	entry := Experience{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Location:    strings.TrimSpace(input.Location),
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: strings.TrimSpace(input.Description),
	}

	if _, err := service.experience.InsertHead(ctx, caller.ID, entry, nil); err != nil {
		return nil, fmt.Errorf("profile_service_add_experience_failed: %w", err)
	}

	return service.reload(ctx, caller.ID)
}

/*
DeleteExperience removes one entry from the caller's work history.

Description: Only the caller's own profile is searched, so the profile owner
check is the lookup itself; the entry id must exist there or NOT_FOUND is
returned and nothing is saved.
*/
func (service *Service) DeleteExperience(ctx context.Context, caller sec.Identity, id string) (*Profile, error) {
	_, err := service.experience.RemoveWhere(ctx, caller.ID, ordered.Removal[Experience]{
		Match:   func(e Experience) bool { return e.ID == id },
		Missing: apperr.NotFound("Experience"),
	})
	if err != nil {
		return nil, fmt.Errorf("profile_service_delete_experience_failed: %w", err)
	}

	return service.reload(ctx, caller.ID)
}

// AddEducation puts a new entry at the head of the caller's study history.
func (service *Service) AddEducation(ctx context.Context, caller sec.Identity, input EducationInput) (*Profile, error) {
	entry := Education{
		ID:           uuid.New(),
		School:       strings.TrimSpace(input.School),
		Degree:       strings.TrimSpace(input.Degree),
		FieldOfStudy: strings.TrimSpace(input.FieldOfStudy),
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  strings.TrimSpace(input.Description),
	}

	if _, err := service.education.InsertHead(ctx, caller.ID, entry, nil); err != nil {
		return nil, fmt.Errorf("profile_service_add_education_failed: %w", err)
	}

	return service.reload(ctx, caller.ID)
}

// DeleteEducation removes one entry from the caller's study history.
func (service *Service) DeleteEducation(ctx context.Context, caller sec.Identity, id string) (*Profile, error) {
	_, err := service.education.RemoveWhere(ctx, caller.ID, ordered.Removal[Education]{
		Match:   func(e Education) bool { return e.ID == id },
		Missing: apperr.NotFound("Education"),
	})
	if err != nil {
		return nil, fmt.Errorf("profile_service_delete_education_failed: %w", err)
	}

	return service.reload(ctx, caller.ID)
}

// # GitHub

// Repos returns the latest public repositories of a GitHub user.
func (service *Service) Repos(ctx context.Context, username string) ([]Repo, error) {
	repos, err := service.repos.LatestRepos(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("profile_service_repos_failed: %w", err)
	}
	return repos, nil
}

// # Helpers

func (service *Service) reload(ctx context.Context, owner string) (*Profile, error) {
	profile, err := service.profileRepository.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("profile_service_reload_failed: %w", err)
	}
	return profile, nil
}

func trimmed(value *string, current string) string {
	if value == nil {
		return current
	}
	return strings.TrimSpace(*value)
}

// canonicalLinks returns the canonical website (nil when absent from input)
// and the recomputed social links.
func canonicalLinks(input UpsertInput) (*string, Social, error) {
	var website *string
	if input.Website != nil {
		canonical, err := weburl.Normalize(*input.Website)
		if err != nil {
			return nil, Social{}, linkError(FieldWebsite, err)
		}
		website = pointer.To(canonical)
	}

	social := Social{}
	links := []struct {
		field  string
		source string
		target *string
	}{
		{FieldYouTube, input.Social.YouTube, &social.YouTube},
		{FieldTwitter, input.Social.Twitter, &social.Twitter},
		{FieldInstagram, input.Social.Instagram, &social.Instagram},
		{FieldLinkedIn, input.Social.LinkedIn, &social.LinkedIn},
		{FieldFacebook, input.Social.Facebook, &social.Facebook},
	}

	for _, link := range links {
		canonical, err := weburl.Normalize(link.source)
		if err != nil {
			return nil, Social{}, linkError(link.field, err)
		}
		*link.target = canonical
	}

	return website, social, nil
}

func linkError(field string, cause error) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: "Must be a valid URL",
	}).WithCause(cause)
}
