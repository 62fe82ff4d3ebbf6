package usermanagement

import (
	"context"

	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
)

// Store is the persistence contract of the account lifecycle.
type Store interface {
	GetAccountByID(ctx context.Context, id string) (userTypes.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (userTypes.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (userTypes.Account, error)
	CreateAccount(ctx context.Context, account userTypes.Account) error
	UpdateAccount(ctx context.Context, account userTypes.Account) error
	AddAccountRole(ctx context.Context, accountID string, role string) error
	GetAccountRoles(ctx context.Context, accountID string) ([]string, error)

	SaveToken(ctx context.Context, token userTypes.Token) error
	FindToken(ctx context.Context, accountID string, purpose string, tokenStr string) (userTypes.Token, error)
	DeleteTokens(ctx context.Context, accountID string, purpose string) error
}

// Mailer delivers templated notifications to an account's email address.
type Mailer interface {
	SendTemplate(to []string, messageType string, payload map[string]string) error
}
