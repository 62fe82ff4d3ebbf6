package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/Johnmontoya/library-backend/pkg/messaging/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
	umUtils "github.com/Johnmontoya/library-backend/pkg/user-management/utils"
)

// DeactivateAccount disables the lockout flag, which bars the account
// from logging in until it is reactivated.
func (s *Service) DeactivateAccount(ctx context.Context, accountID string) *records.Problem {
	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to deactivate account", "account", err)
	}

	account.LockoutEnabled = false
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to deactivate account", "account", err)
	}
	return nil
}

// ActivateAccountEmail mails a reactivation link for a deactivated
// account.
func (s *Service) ActivateAccountEmail(ctx context.Context, email string) *records.Problem {
	email = umUtils.SanitizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to initiate account reactivation", "account", err)
	}

	tokenStr, problem := s.issueToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_ACTIVE_USER, ACTIVE_USER_TOKEN_TTL)
	if problem != nil {
		return problem
	}

	link := s.frontendBaseURL + "/reactive-account?email=" + url.QueryEscape(account.Email) + "&token=" + url.QueryEscape(tokenStr)
	if err := s.mailer.SendTemplate(
		[]string{account.Email},
		types.EMAIL_TYPE_ACCOUNT_REACTIVATION,
		map[string]string{"username": account.Username, "link": link},
	); err != nil {
		slog.Error("failed to send reactivation email", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return records.InternalProblem("failed to initiate account reactivation", "email", err)
	}
	return nil
}

// ReactivateAccount consumes a reactivation token and re-enables login.
func (s *Service) ReactivateAccount(ctx context.Context, email string, token string) *records.Problem {
	email = umUtils.SanitizeEmail(email)

	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to reactivate account", "account", err)
	}

	if problem := s.consumeToken(ctx, account.ID, userTypes.TOKEN_PURPOSE_ACTIVE_USER, token); problem != nil {
		return problem
	}

	account.LockoutEnabled = true
	account.LockoutEnd = 0
	account.FailedAttempts = 0
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to reactivate account", "account", err)
	}
	return nil
}
