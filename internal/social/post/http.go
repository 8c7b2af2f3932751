// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/devhub/internal/platform/request"
	"github.com/taibuivan/devhub/internal/platform/respond"
	"github.com/taibuivan/devhub/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the post feed endpoints.
type Handler struct {
	postService     *Service
	requireIdentity func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, requireIdentity func(http.Handler) http.Handler) *Handler {
	return &Handler{postService: service, requireIdentity: requireIdentity}
}

// Routes returns the post router, mounted at /api/post. Every route is gated.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(handler.requireIdentity)

		r.Post("/", handler.create)
		r.Get("/", handler.list)
		r.Get("/{postID}", handler.get)
		r.Delete("/{postID}", handler.delete)

		r.Put("/like/{postID}", handler.like)
		r.Put("/unlike/{postID}", handler.unlike)

		r.Post("/comment/{postID}", handler.comment)
		r.Delete("/comment/{postID}/{commentID}", handler.uncomment)
	})

	return router
}

type textRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	Message string `json:"msg"`
}

/*
POST /api/post

Response:
  - 201: Post
  - 400: Empty or oversized text
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input textRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateText(input.Text); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Create(request.Context(), caller, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
GET /api/post

Response:
  - 200: []Post, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.postService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, posts)
}

/*
GET /api/post/{postID}

Response:
  - 200: Post
  - 404: No such post (malformed ids included)
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.postService.Get(request.Context(), requestutil.Param(request, FieldPostID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

/*
DELETE /api/post/{postID}

Response:
  - 200: {msg}
  - 403: Caller is not the author
  - 404: No such post
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.postService.Delete(request.Context(), caller, requestutil.Param(request, FieldPostID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, messageResponse{Message: "Post removed"})
}

/*
PUT /api/post/like/{postID}

Response:
  - 200: []Like, newest first
  - 409: ALREADY_LIKED
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.postService.Like(request.Context(), caller, requestutil.Param(request, FieldPostID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, likes)
}

/*
PUT /api/post/unlike/{postID}

Response:
  - 200: []Like
  - 400: NOT_LIKED
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.postService.Unlike(request.Context(), caller, requestutil.Param(request, FieldPostID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, likes)
}

/*
POST /api/post/comment/{postID}

Response:
  - 200: []Comment, newest first
  - 400: Empty or oversized text
  - 404: No such post
*/
func (handler *Handler) comment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input textRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateText(input.Text); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.postService.Comment(request.Context(), caller, requestutil.Param(request, FieldPostID), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

/*
DELETE /api/post/comment/{postID}/{commentID}

Response:
  - 200: []Comment
  - 403: Caller did not write the comment
  - 404: No such post or comment
*/
func (handler *Handler) uncomment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.postService.Uncomment(request.Context(), caller,
		requestutil.Param(request, FieldPostID),
		requestutil.Param(request, FieldCommentID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

func validateText(text string) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, text).
		MaxLen(FieldText, text, TextMaxLength)
	return validator.Err()
}
