// Package usermanagement implements the account lifecycle: registration,
// email confirmation, login with lockout, password management, phone
// verification and account deactivation.
package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/Johnmontoya/library-backend/pkg/messaging/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
	"github.com/Johnmontoya/library-backend/pkg/user-management/otp"
	"github.com/Johnmontoya/library-backend/pkg/user-management/pwhash"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
	umUtils "github.com/Johnmontoya/library-backend/pkg/user-management/utils"
)

const (
	MAX_FAILED_ACCESS_ATTEMPTS = 5
	LOCKOUT_DURATION           = 15 * time.Minute

	EMAIL_CONFIRMATION_TOKEN_TTL = 24 * time.Hour
	PASSWORD_RESET_TOKEN_TTL     = 1 * time.Hour
	ACTIVE_USER_TOKEN_TTL        = 1 * time.Hour

	LOCKOUT_TIME_LAYOUT = "2006-01-02 15:04:05"
)

// TokenSigningConfig carries everything needed to mint session tokens.
type TokenSigningConfig struct {
	SignKey   string
	Issuer    string
	Audience  string
	ExpiresIn time.Duration
}

type Service struct {
	store           Store
	mailer          Mailer
	otpStore        *otp.Store
	tokenConfig     TokenSigningConfig
	frontendBaseURL string

	now func() time.Time
}

func NewService(
	store Store,
	mailer Mailer,
	otpStore *otp.Store,
	tokenConfig TokenSigningConfig,
	frontendBaseURL string,
) *Service {
	return &Service{
		store:           store,
		mailer:          mailer,
		otpStore:        otpStore,
		tokenConfig:     tokenConfig,
		frontendBaseURL: frontendBaseURL,
		now:             time.Now,
	}
}

// Register creates an unconfirmed account with the default "User" role,
// stores an email-confirmation token and mails the confirmation link.
func (s *Service) Register(ctx context.Context, email string, username string, password string) (userTypes.Account, *records.Problem) {
	var empty userTypes.Account

	email = umUtils.SanitizeEmail(email)

	problem := records.NewProblem("validation error", http.StatusBadRequest)
	if !umUtils.CheckEmailFormat(email) {
		problem.AddFieldError("email", "email address is missing or malformed")
	}
	if !umUtils.CheckUsernameFormat(username) {
		problem.AddFieldError("username", "username is missing or malformed")
	}
	if !umUtils.CheckPasswordFormat(password) {
		problem.AddFieldError("password", "password does not fulfill requirements")
	}
	if problem.HasFieldErrors() {
		return empty, problem
	}

	conflict := records.NewProblem("account already exists", http.StatusConflict)
	if _, err := s.store.GetAccountByEmail(ctx, email); err == nil {
		conflict.AddFieldError("email", "email address is already in use")
	} else if !errors.Is(err, records.ErrNotFound) {
		return empty, records.InternalProblem("failed to create account", "email", err)
	}
	if _, err := s.store.GetAccountByUsername(ctx, username); err == nil {
		conflict.AddFieldError("username", "username is already taken")
	} else if !errors.Is(err, records.ErrNotFound) {
		return empty, records.InternalProblem("failed to create account", "username", err)
	}
	if conflict.HasFieldErrors() {
		return empty, conflict
	}

	hashedPassword, err := pwhash.HashPassword(password)
	if err != nil {
		return empty, records.InternalProblem("failed to create account", "password", err)
	}

	account := userTypes.Account{
		ID:             uuid.NewString(),
		Email:          email,
		Username:       username,
		Password:       hashedPassword,
		EmailConfirmed: false,
		LockoutEnabled: true,
		CreatedAt:      s.now().Unix(),
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		slog.Error("failed to create account", slog.String("email", umUtils.BlurEmailAddress(email)), slog.String("error", err.Error()))
		return empty, records.InternalProblem("failed to create account", "account", err)
	}
	if err := s.store.AddAccountRole(ctx, account.ID, userTypes.ROLE_USER); err != nil {
		slog.Error("failed to assign default role", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return empty, records.InternalProblem("failed to create account", "roles", err)
	}
	account.Roles = []string{userTypes.ROLE_USER}

	tokenStr, problem2 := s.issueToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION, EMAIL_CONFIRMATION_TOKEN_TTL)
	if problem2 != nil {
		return empty, problem2
	}

	link := s.frontendBaseURL + "/confirm-email?userId=" + account.ID + "&token=" + url.QueryEscape(tokenStr)
	if err := s.mailer.SendTemplate(
		[]string{account.Email},
		types.EMAIL_TYPE_REGISTRATION,
		map[string]string{"username": account.Username, "link": link},
	); err != nil {
		// account is created either way, the token can be re-requested
		slog.Error("failed to send confirmation email", slog.String("accountID", account.ID), slog.String("error", err.Error()))
	}

	return account, nil
}

// ConfirmEmail consumes an email-confirmation token and marks the address
// confirmed.
func (s *Service) ConfirmEmail(ctx context.Context, accountID string, token string) *records.Problem {
	if accountID == "" || token == "" {
		return records.NewProblem("user id and token are required", http.StatusBadRequest)
	}

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to confirm email", "account", err)
	}

	if problem := s.consumeToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION, token); problem != nil {
		return problem
	}

	account.EmailConfirmed = true
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to confirm email", "account", err)
	}
	return nil
}

// issueToken replaces any pending token of the given purpose with a fresh
// opaque one.
func (s *Service) issueToken(ctx context.Context, accountID string, purpose string, ttl time.Duration) (string, *records.Problem) {
	tokenStr, err := umUtils.GenerateUniqueTokenString()
	if err != nil {
		return "", records.InternalProblem("failed to generate token", "token", err)
	}
	if err := s.store.DeleteTokens(ctx, accountID, purpose); err != nil {
		return "", records.InternalProblem("failed to generate token", "token", err)
	}
	token := userTypes.Token{
		Token:     tokenStr,
		AccountID: accountID,
		Purpose:   purpose,
		ExpiresAt: s.now().Add(ttl).Unix(),
	}
	if err := s.store.SaveToken(ctx, token); err != nil {
		return "", records.InternalProblem("failed to generate token", "token", err)
	}
	return tokenStr, nil
}

// consumeToken validates a pending token and removes every token of the
// same purpose on success.
func (s *Service) consumeToken(ctx context.Context, accountID string, purpose string, tokenStr string) *records.Problem {
	token, err := s.store.FindToken(ctx, accountID, purpose, tokenStr)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NewProblem("invalid token", http.StatusBadRequest)
		}
		return records.InternalProblem("failed to verify token", "token", err)
	}
	if token.Expired(s.now()) {
		return records.NewProblem("token expired", http.StatusBadRequest)
	}
	if err := s.store.DeleteTokens(ctx, accountID, purpose); err != nil {
		return records.InternalProblem("failed to verify token", "token", err)
	}
	return nil
}

// GetAccount loads an account with its roles.
func (s *Service) GetAccount(ctx context.Context, accountID string) (userTypes.Account, *records.Problem) {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return account, records.NotFoundProblem("account not found")
		}
		return account, records.InternalProblem("failed to load account", "account", err)
	}
	return account, nil
}
