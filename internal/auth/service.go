// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth issues game master tokens.

There are no user accounts: the game master proves knowledge of a single
password whose bcrypt hash is configured at startup, and receives a signed
access token carrying [sec.RoleGameMaster]. Everyone else browses anonymously
as a viewer.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/constants"
	"github.com/taibuivan/tabletop/internal/platform/sec"
	"github.com/taibuivan/tabletop/internal/platform/validate"
)

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	GenerateAccessToken(subject string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

type Service struct {
	passwordHash  string
	tokenProvider TokenProvider
	timeToLive    time.Duration
	logger        *slog.Logger
}

// NewService constructs a [Service] checking passwords against passwordHash
// and issuing tokens valid for timeToLive.
func NewService(passwordHash string, tokenProvider TokenProvider, timeToLive time.Duration, logger *slog.Logger) *Service {
	return &Service{
		passwordHash:  passwordHash,
		tokenProvider: tokenProvider,
		timeToLive:    timeToLive,
		logger:        logger,
	}
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

/*
Login verifies the game master password and issues an access token.

Returns:
  - [apperr.ValidationError] when the password is blank
  - [apperr.Unauthorized] when it does not match
*/
func (service *Service) Login(context context.Context, password string) (*Token, error) {

	// 1. Shape
	validator := &validate.Validator{}
	validator.Required("password", password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Credentials
	if !sec.CheckPasswordHash(password, service.passwordHash) {
		service.logger.WarnContext(context, "gm_login_rejected")
		return nil, apperr.Unauthorized("Invalid password")
	}

	// 3. Issuance
	expiresAt := time.Now().Add(service.timeToLive).UTC()
	accessToken, err := service.tokenProvider.GenerateAccessToken(constants.GameMasterSubject, sec.RoleGameMaster, service.timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "gm_login")

	return &Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		Role:        string(sec.RoleGameMaster),
		ExpiresAt:   expiresAt,
	}, nil
}
