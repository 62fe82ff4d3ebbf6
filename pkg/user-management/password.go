package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Johnmontoya/library-backend/pkg/messaging/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
	"github.com/Johnmontoya/library-backend/pkg/user-management/pwhash"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
	umUtils "github.com/Johnmontoya/library-backend/pkg/user-management/utils"
)

// ForgotPassword stores a password-reset token and mails the reset link.
func (s *Service) ForgotPassword(ctx context.Context, email string) *records.Problem {
	email = umUtils.SanitizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to initiate password reset", "account", err)
	}

	tokenStr, problem := s.issueToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_PASSWORD_RESET, PASSWORD_RESET_TOKEN_TTL)
	if problem != nil {
		return problem
	}

	link := s.frontendBaseURL + "/reset-password?email=" + url.QueryEscape(account.Email) + "&token=" + url.QueryEscape(tokenStr)
	if err := s.mailer.SendTemplate(
		[]string{account.Email},
		types.EMAIL_TYPE_PASSWORD_RESET,
		map[string]string{"username": account.Username, "link": link},
	); err != nil {
		slog.Error("failed to send password reset email", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return records.InternalProblem("failed to initiate password reset", "email", err)
	}
	return nil
}

// ResetPassword consumes a password-reset token and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, email string, token string, newPassword string) *records.Problem {
	email = umUtils.SanitizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to reset password", "account", err)
	}

	if !umUtils.CheckPasswordFormat(newPassword) {
		return records.NewProblem("validation error", http.StatusBadRequest).
			AddFieldError("password", "password does not fulfill requirements")
	}

	if problem := s.consumeToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_PASSWORD_RESET, token); problem != nil {
		return problem
	}

	hashedPassword, err := pwhash.HashPassword(newPassword)
	if err != nil {
		return records.InternalProblem("failed to reset password", "password", err)
	}
	account.Password = hashedPassword
	account.FailedAttempts = 0
	account.LockoutEnd = 0
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to reset password", "account", err)
	}
	return nil
}

// ChangePassword replaces the password of the authenticated account after
// re-checking the current one.
func (s *Service) ChangePassword(ctx context.Context, accountID string, currentPassword string, newPassword string) *records.Problem {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NewProblem("failed to change password", http.StatusBadRequest)
		}
		return records.InternalProblem("failed to change password", "account", err)
	}

	match, err := pwhash.ComparePasswordWithHash(account.Password, currentPassword)
	if err != nil {
		return records.InternalProblem("failed to change password", "password", err)
	}
	if !match {
		return records.NewProblem("current password is wrong", http.StatusBadRequest)
	}

	if !umUtils.CheckPasswordFormat(newPassword) {
		return records.NewProblem("validation error", http.StatusBadRequest).
			AddFieldError("password", "password does not fulfill requirements")
	}

	hashedPassword, err := pwhash.HashPassword(newPassword)
	if err != nil {
		return records.InternalProblem("failed to change password", "password", err)
	}
	account.Password = hashedPassword
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to change password", "account", err)
	}
	return nil
}
