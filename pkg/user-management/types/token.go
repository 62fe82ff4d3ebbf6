package types

import "time"

// Purpose values for server-side account tokens. The token strings are
// opaque; only the stored purpose and expiry give them meaning.
const (
	TOKEN_PURPOSE_EMAIL_CONFIRMATION = "email-confirmation"
	TOKEN_PURPOSE_PASSWORD_RESET     = "password-reset"
	TOKEN_PURPOSE_ACTIVE_USER        = "active-user"
)

type Token struct {
	Token     string `db:"token" json:"token"`
	AccountID string `db:"account_id" json:"accountID"`
	Purpose   string `db:"purpose" json:"purpose"`
	ExpiresAt int64  `db:"expires_at" json:"expiresAt"`
}

func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.Unix()
}
