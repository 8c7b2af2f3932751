// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/devhub/internal/platform/apperr"
)

// passwordCost matches the cost factor accounts were historically hashed with.
const passwordCost = 10

// PasswordMaxBytes is the longest input bcrypt accepts.
const PasswordMaxBytes = 72

// HashPassword hashes a plain-text password using bcrypt.
//
// A password over [PasswordMaxBytes] is a VALIDATION_ERROR.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("Maximum %d bytes", PasswordMaxBytes),
		}).WithCause(err)
	}
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its bcrypt hash in constant time.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
