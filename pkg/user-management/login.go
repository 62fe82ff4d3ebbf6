package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	jwthandling "github.com/Johnmontoya/library-backend/pkg/jwt-handling"
	"github.com/Johnmontoya/library-backend/pkg/records"
	"github.com/Johnmontoya/library-backend/pkg/user-management/pwhash"
	umUtils "github.com/Johnmontoya/library-backend/pkg/user-management/utils"
)

type LoginResult struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Login checks the credentials and mints a session token. Every failure
// answers with status 401 but a reason of its own; a wrong password
// counts towards the lockout threshold.
func (s *Service) Login(ctx context.Context, email string, password string) (LoginResult, *records.Problem) {
	var empty LoginResult

	email = umUtils.SanitizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return empty, records.NewProblem("invalid email or password", http.StatusUnauthorized)
		}
		return empty, records.InternalProblem("failed to log in", "account", err)
	}

	if !account.EmailConfirmed {
		return empty, records.NewProblem("email address is not confirmed", http.StatusUnauthorized)
	}
	if !account.LockoutEnabled {
		return empty, records.NewProblem("account is deactivated", http.StatusUnauthorized)
	}
	if account.CurrentlyLockedOut(s.now()) {
		return empty, records.NewProblem(
			"account is locked out until "+account.LockoutEndTime().Format(LOCKOUT_TIME_LAYOUT),
			http.StatusUnauthorized,
		)
	}

	match, err := pwhash.ComparePasswordWithHash(account.Password, password)
	if err != nil {
		return empty, records.InternalProblem("failed to log in", "password", err)
	}
	if !match {
		account.FailedAttempts += 1
		if account.FailedAttempts >= MAX_FAILED_ACCESS_ATTEMPTS {
			account.LockoutEnd = s.now().Add(LOCKOUT_DURATION).Unix()
			account.FailedAttempts = 0
			slog.Warn("account locked out after repeated login failures", slog.String("accountID", account.ID))
		}
		if err := s.store.UpdateAccount(ctx, account); err != nil {
			return empty, records.InternalProblem("failed to log in", "account", err)
		}
		return empty, records.NewProblem("invalid email or password", http.StatusUnauthorized)
	}

	if account.FailedAttempts > 0 || account.LockoutEnd != 0 {
		account.FailedAttempts = 0
		account.LockoutEnd = 0
		if err := s.store.UpdateAccount(ctx, account); err != nil {
			return empty, records.InternalProblem("failed to log in", "account", err)
		}
	}

	tokenStr, err := jwthandling.GenerateNewUserToken(
		s.tokenConfig.ExpiresIn,
		account.ID,
		account.Username,
		account.Roles,
		s.tokenConfig.Issuer,
		s.tokenConfig.Audience,
		s.tokenConfig.SignKey,
	)
	if err != nil {
		slog.Error("failed to generate session token", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return empty, records.InternalProblem("failed to log in", "token", err)
	}

	return LoginResult{
		Token:     tokenStr,
		Username:  account.Username,
		ExpiresAt: s.now().Add(s.tokenConfig.ExpiresIn).Unix(),
	}, nil
}
