// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/devhub/internal/platform/request"
	"github.com/taibuivan/devhub/internal/platform/respond"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements registration and authentication endpoints.
type Handler struct {
	authService     *Service
	requireIdentity func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. requireIdentity guards the routes
// that need a caller (normally [middleware.Gate.Require]).
func NewHandler(service *Service, requireIdentity func(http.Handler) http.Handler) *Handler {
	return &Handler{authService: service, requireIdentity: requireIdentity}
}

// UserRoutes returns the registration router, mounted at /api/users.
//
// # Endpoints
//   - POST / : Creates a new account and returns a credential.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.register)
	return router
}

// Routes returns the authentication router, mounted at /api/auth.
//
// # Endpoints
//   - GET  / : Current account (gated).
//   - POST / : Exchanges email and password for a credential.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.login)

	router.Group(func(r chi.Router) {
		r.Use(handler.requireIdentity)
		r.Get("/", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

/*
POST /api/users

Description: Registers a new account and signs a credential for it.

Response:
  - 201: {token}
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Custom(FieldPassword, len(input.Password) > sec.PasswordMaxBytes, fmt.Sprintf("Maximum %d bytes", sec.PasswordMaxBytes))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tokenResponse{Token: token})
}

/*
POST /api/auth

Response:
  - 200: {token}
  - 400: Validation failure or INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}

/*
GET /api/auth

Response:
  - 200: Account (password hash omitted)
  - 401: UNAUTHENTICATED or INVALID_TOKEN
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Me(request.Context(), caller)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
