package user

// The DDL below is kept to the dialect subset that both the Postgres
// runtime store and the SQLite test store accept. Uniqueness of email
// and username is enforced by the store as the backstop for the
// check-then-write registration flow.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		lockout_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		lockout_end BIGINT NOT NULL DEFAULT 0,
		failed_attempts INTEGER NOT NULL DEFAULT 0,
		phone_number TEXT NOT NULL DEFAULT '',
		phone_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		otp_secret TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS account_roles (
		account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		PRIMARY KEY (account_id, role)
	)`,
	`CREATE TABLE IF NOT EXISTS account_tokens (
		token TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		purpose TEXT NOT NULL,
		expires_at BIGINT NOT NULL
	)`,
}
