package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Johnmontoya/library-backend/pkg/messaging/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
	umUtils "github.com/Johnmontoya/library-backend/pkg/user-management/utils"
)

// RegisterPhone binds a phone number to the account and sends a one-time
// code for verification.
func (s *Service) RegisterPhone(ctx context.Context, accountID string, phoneNumber string) *records.Problem {
	phoneNumber = umUtils.SanitizePhoneNumber(phoneNumber)
	if phoneNumber == "" {
		return records.NewProblem("validation error", http.StatusBadRequest).
			AddFieldError("phoneNumber", "phone number is required")
	}

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to register phone number", "account", err)
	}

	code, err := s.otpStore.Generate(phoneNumber)
	if err != nil {
		return records.InternalProblem("failed to register phone number", "otp", err)
	}

	account.PhoneNumber = phoneNumber
	account.PhoneConfirmed = false
	account.OTPSecret = code
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		slog.Error("failed to persist pending phone number", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return records.NewProblem("failed to register phone number", http.StatusBadRequest)
	}

	if err := s.mailer.SendTemplate(
		[]string{account.Email},
		types.EMAIL_TYPE_PHONE_OTP,
		map[string]string{"username": account.Username, "code": code},
	); err != nil {
		slog.Error("failed to send verification code", slog.String("accountID", account.ID), slog.String("error", err.Error()))
		return records.InternalProblem("failed to register phone number", "email", err)
	}
	return nil
}

// VerifyOTP confirms the phone number when the submitted number and code
// match the pending pair exactly. The code is consumed either way only on
// a match.
func (s *Service) VerifyOTP(ctx context.Context, accountID string, phoneNumber string, code string) *records.Problem {
	phoneNumber = umUtils.SanitizePhoneNumber(phoneNumber)

	account, err := s.store.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.NotFoundProblem("account not found")
		}
		return records.InternalProblem("failed to verify phone number", "account", err)
	}

	if phoneNumber == "" || phoneNumber != account.PhoneNumber {
		return records.NewProblem("invalid OTP", http.StatusBadRequest)
	}
	if !s.otpStore.Verify(phoneNumber, code) {
		return records.NewProblem("invalid OTP", http.StatusBadRequest)
	}

	account.PhoneConfirmed = true
	account.OTPSecret = ""
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return records.InternalProblem("failed to verify phone number", "account", err)
	}
	return nil
}
