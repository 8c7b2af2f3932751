// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration, login and the current-account lookup.

Accounts are the owners every other aggregate points at. A successful
registration or login returns a signed credential; all later requests carry
it in the x-auth-token header.
*/
package auth

import "time"

// # Domain Entities

// Account represents a registered member.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"date"`
}

// # Field Identifiers

// Field names used in validation details.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)
