// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, credential management and the
// single-owner authorization rule.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing,
// ownership) from the domain logic. Domain services receive it through small
// interfaces such as [TokenIssuer] so tests can substitute fakes.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of every issued credential.
const TokenTTL = 10 * time.Hour

// ErrEmptySecret is returned by [NewTokenService] when no signing secret is configured.
var ErrEmptySecret = errors.New("sec: signing secret must not be empty")

// Identity is the verified caller attached to a request.
type Identity struct {
	ID string `json:"id"`
}

// AuthClaims represents the payload embedded inside a credential.
//
// The identity is nested under "user" so the token body reads {"user":{"id":...}}.
type AuthClaims struct {
	jwt.RegisteredClaims

	User Identity `json:"user"`
}

// TokenService issues and verifies HS256 credentials.
//
// The secret is injected once at construction and never re-read at call time.
// Safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	clock  Clock
}

// NewTokenService creates a new TokenService. A nil clock defaults to [SystemClock].
func NewTokenService(secret, issuer string, clock Clock) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		clock:  clock,
	}, nil
}

// Issue signs a credential for identity that expires exactly [TokenTTL] after
// the clock's current time.
func (service *TokenService) Issue(identity Identity) (string, error) {
	if identity.ID == "" {
		return "", errors.New("sec: cannot issue a token for an empty identity")
	}

	issuedAt := service.clock.Now().Truncate(time.Second)
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
		User: identity,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, algorithm, issuer and expiry of tokenString and
// returns the embedded identity.
//
// Only HS256 is accepted. Tokens declaring "none" or any asymmetric algorithm
// are rejected before the key is consulted.
func (service *TokenService) Verify(tokenString string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.clock.Now),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)

	claims := &AuthClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid || claims.User.ID == "" {
		return Identity{}, errors.New("sec: invalid token claims")
	}

	return claims.User, nil
}
