package library

// Entity tables. Foreign keys cascade on parent removal; loans and
// persons reference the accounts table owned by the account store, so
// its schema must be created first.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		key INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		nationality TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		publisher TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		author_id TEXT NOT NULL REFERENCES authors(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		loan_date TEXT NOT NULL,
		return_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
		national_id INTEGER NOT NULL UNIQUE,
		birth_date TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT ''
	)`,
}
