package types

import "time"

const (
	ROLE_USER  = "User"
	ROLE_ADMIN = "Admin"
)

// Account is the authentication identity: credentials, confirmation
// flags, lockout state and the pending OTP for phone verification.
type Account struct {
	ID             string `db:"id" json:"id" goqu:"skipupdate"`
	Email          string `db:"email" json:"email"`
	Username       string `db:"username" json:"username"`
	Password       string `db:"password" json:"-"`
	EmailConfirmed bool   `db:"email_confirmed" json:"emailConfirmed"`
	LockoutEnabled bool   `db:"lockout_enabled" json:"lockoutEnabled"`
	LockoutEnd     int64  `db:"lockout_end" json:"lockoutEnd"`
	FailedAttempts int    `db:"failed_attempts" json:"accessFailedCount"`
	PhoneNumber    string `db:"phone_number" json:"phoneNumber"`
	PhoneConfirmed bool   `db:"phone_confirmed" json:"phoneNumberConfirmed"`
	OTPSecret      string `db:"otp_secret" json:"-"`
	CreatedAt      int64  `db:"created_at" json:"createdAt"`

	Roles []string `db:"-" json:"roles"`
}

// CurrentlyLockedOut reports whether the lockout window is still open.
// A LockoutEnd of zero means no lockout was ever triggered.
func (a Account) CurrentlyLockedOut(now time.Time) bool {
	return a.LockoutEnd > now.Unix()
}

func (a Account) LockoutEndTime() time.Time {
	return time.Unix(a.LockoutEnd, 0)
}

func (a Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
