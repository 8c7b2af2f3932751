// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/devhub/internal/platform/apperr"
	"github.com/taibuivan/devhub/internal/platform/ctxutil"
	"github.com/taibuivan/devhub/internal/platform/sec"
	"github.com/taibuivan/devhub/internal/platform/validate"
)

// maxBodyBytes caps request bodies; profiles and posts are small documents.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredIdentity returns the caller attached by the gate.

Returns:
  - sec.Identity: The verified caller
  - error: apperr.Unauthenticated when the route was mounted without the gate
*/
func RequiredIdentity(request *http.Request) (sec.Identity, error) {
	identity, ok := ctxutil.GetIdentity(request.Context())
	if !ok {
		return sec.Identity{}, apperr.Unauthenticated()
	}
	return identity, nil
}
