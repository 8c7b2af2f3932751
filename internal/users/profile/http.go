// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/devhub/internal/platform/request"
	"github.com/taibuivan/devhub/internal/platform/respond"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/platform/validate"
	"github.com/taibuivan/devhub/pkg/pointer"
	"github.com/taibuivan/devhub/pkg/skillset"
)

// AccountTeardown removes an account together with everything it owns.
type AccountTeardown interface {
	Teardown(ctx context.Context, caller sec.Identity, accountID string) error
}

// # Definitions & Constructors

// Handler implements the profile endpoints.
type Handler struct {
	profileService  *Service
	teardown        AccountTeardown
	requireIdentity func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, teardown AccountTeardown, requireIdentity func(http.Handler) http.Handler) *Handler {
	return &Handler{profileService: service, teardown: teardown, requireIdentity: requireIdentity}
}

// Routes returns the profile router, mounted at /api/profile.
//
// # Endpoints
//   - GET    /                   : All profiles.
//   - GET    /user/{userID}      : One user's profile.
//   - GET    /github/{username}  : Latest public repositories.
//   - GET    /me                 : Caller's profile (gated).
//   - POST   /                   : Create or replace caller's profile (gated).
//   - DELETE /                   : Remove the caller's account, profile and posts (gated).
//   - PUT    /experience         : Add work history (gated).
//   - DELETE /experience/{expID} : Remove work history (gated).
//   - PUT    /education          : Add study history (gated).
//   - DELETE /education/{eduID}  : Remove study history (gated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/user/{userID}", handler.byUser)
	router.Get("/github/{username}", handler.repos)

	router.Group(func(r chi.Router) {
		r.Use(handler.requireIdentity)

		r.Get("/me", handler.me)
		r.Post("/", handler.upsert)
		r.Delete("/", handler.deleteAccount)

		r.Put("/experience", handler.addExperience)
		r.Delete("/experience/{expID}", handler.deleteExperience)
		r.Put("/education", handler.addEducation)
		r.Delete("/education/{eduID}", handler.deleteEducation)
	})

	return router
}

// # Request Payloads

type upsertRequest struct {
	Company        *string      `json:"company"`
	Website        *string      `json:"website"`
	Location       *string      `json:"location"`
	Status         *string      `json:"status"`
	Bio            *string      `json:"bio"`
	GitHubUsername *string      `json:"githubusername"`
	Skills         skillset.Set `json:"skills"`
	YouTube        string       `json:"youtube"`
	Twitter        string       `json:"twitter"`
	Instagram      string       `json:"instagram"`
	LinkedIn       string       `json:"linkedin"`
	Facebook       string       `json:"facebook"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type messageResponse struct {
	Message string `json:"msg"`
}

/*
GET /api/profile/me

Response:
  - 200: Profile
  - 404: Caller has no profile yet
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.Me(request.Context(), caller)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
POST /api/profile

Description: Unknown body fields are ignored. Website and social links are
canonicalized; skills may be a list or a comma-separated string.

Response:
  - 200: Profile
  - 400: Missing status or skills, or an invalid link
*/
func (handler *Handler) upsert(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input upsertRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := pointer.Val(input.Status)
	validator := &validate.Validator{}
	validator.Required(FieldStatus, status).
		MaxLen(FieldStatus, status, ShortTextMaxLength).
		Custom(FieldSkills, len(input.Skills) == 0, "This field is required").
		Custom(FieldSkills, len(input.Skills) > SkillsMaxCount, "Too many skills").
		MaxLen(FieldCompany, pointer.Val(input.Company), ShortTextMaxLength).
		MaxLen(FieldLocation, pointer.Val(input.Location), ShortTextMaxLength).
		MaxLen(FieldBio, pointer.Val(input.Bio), BioMaxLength).
		MaxLen(FieldGitHubUsername, pointer.Val(input.GitHubUsername), GitHubUsernameMaxLength).
		URL(FieldWebsite, pointer.Val(input.Website)).
		URL(FieldYouTube, input.YouTube).
		URL(FieldTwitter, input.Twitter).
		URL(FieldInstagram, input.Instagram).
		URL(FieldLinkedIn, input.LinkedIn).
		URL(FieldFacebook, input.Facebook)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.Upsert(request.Context(), caller, UpsertInput{
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Status:         input.Status,
		Bio:            input.Bio,
		GitHubUsername: input.GitHubUsername,
		Skills:         input.Skills,
		Social: Social{
			YouTube:   input.YouTube,
			Twitter:   input.Twitter,
			Instagram: input.Instagram,
			LinkedIn:  input.LinkedIn,
			Facebook:  input.Facebook,
		},
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/profile

Response:
  - 200: []Profile
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	profiles, err := handler.profileService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profiles)
}

/*
GET /api/profile/user/{userID}

Response:
  - 200: Profile
  - 404: No profile for this user
*/
func (handler *Handler) byUser(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.profileService.ByUser(request.Context(), requestutil.Param(request, FieldUserID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
DELETE /api/profile

Description: Removes posts, then the profile, then the account. Retrying after
a partial failure finishes the job.

Response:
  - 200: {msg}
  - 503: STORAGE_UNAVAILABLE, safe to retry
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.teardown.Teardown(request.Context(), caller, caller.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "User removed"})
}

/*
PUT /api/profile/experience

Response:
  - 200: Profile
  - 400: Missing title, company or from
  - 404: Caller has no profile
*/
func (handler *Handler) addExperience(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input experienceRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, ShortTextMaxLength).
		Required(FieldCompany, input.Company).
		MaxLen(FieldCompany, input.Company, ShortTextMaxLength).
		Required(FieldFrom, input.From).
		Date(FieldFrom, input.From).
		Date(FieldTo, input.To).
		Custom(FieldTo, input.Current && input.To != "", "Leave empty for a current position")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.AddExperience(request.Context(), caller, ExperienceInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/profile/experience/{expID}

Response:
  - 200: Profile
  - 404: No profile or no such entry
*/
func (handler *Handler) deleteExperience(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.DeleteExperience(request.Context(), caller, requestutil.Param(request, FieldExperienceID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PUT /api/profile/education

Response:
  - 200: Profile
  - 400: Missing school, degree, field of study or from
  - 404: Caller has no profile
*/
func (handler *Handler) addEducation(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input educationRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldSchool, input.School).
		MaxLen(FieldSchool, input.School, ShortTextMaxLength).
		Required(FieldDegree, input.Degree).
		MaxLen(FieldDegree, input.Degree, ShortTextMaxLength).
		Required(FieldFieldOfStudy, input.FieldOfStudy).
		MaxLen(FieldFieldOfStudy, input.FieldOfStudy, ShortTextMaxLength).
		Required(FieldFrom, input.From).
		Date(FieldFrom, input.From).
		Date(FieldTo, input.To).
		Custom(FieldTo, input.Current && input.To != "", "Leave empty for current studies")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.AddEducation(request.Context(), caller, EducationInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
DELETE /api/profile/education/{eduID}

Response:
  - 200: Profile
  - 404: No profile or no such entry
*/
func (handler *Handler) deleteEducation(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.DeleteEducation(request.Context(), caller, requestutil.Param(request, FieldEducationID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/profile/github/{username}

Response:
  - 200: []Repo, newest first, at most five
  - 404: GitHub has no such user
  - 502: GitHub failed or is throttled
*/
func (handler *Handler) repos(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, FieldUsername)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, GitHubUsernameMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	repos, err := handler.profileService.Repos(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, repos)
}
