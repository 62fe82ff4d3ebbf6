package user

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Johnmontoya/library-backend/pkg/db"
)

// table names
const (
	TABLE_NAME_ACCOUNTS       = "accounts"
	TABLE_NAME_ACCOUNT_ROLES  = "account_roles"
	TABLE_NAME_ACCOUNT_TOKENS = "account_tokens"
)

type AccountDBService struct {
	DB      *sqlx.DB
	gq      goqu.DialectWrapper
	dialect string
}

func NewAccountDBService(config db.DBConfig) (*AccountDBService, error) {
	dbClient, err := db.Connect(config)
	if err != nil {
		return nil, err
	}
	return NewAccountDBServiceWithDB(dbClient, config.Dialect), nil
}

// NewAccountDBServiceWithDB wraps an already opened connection, so the
// service can share one store with the library DB service.
func NewAccountDBServiceWithDB(dbClient *sqlx.DB, dialect string) *AccountDBService {
	return &AccountDBService{
		DB:      dbClient,
		gq:      goqu.Dialect(dialect),
		dialect: dialect,
	}
}

func (dbService *AccountDBService) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := dbService.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
