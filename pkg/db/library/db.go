package library

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Johnmontoya/library-backend/pkg/db"
	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

// table names
const (
	TABLE_NAME_CATEGORIES = "categories"
	TABLE_NAME_AUTHORS    = "authors"
	TABLE_NAME_BOOKS      = "books"
	TABLE_NAME_LOANS      = "loans"
	TABLE_NAME_PERSONS    = "persons"
	TABLE_NAME_ACCOUNTS   = "accounts"
)

// LibraryDBService bundles one generic record gateway per entity table
// plus the lookup helpers the validators run against the store.
type LibraryDBService struct {
	DB *sqlx.DB
	gq goqu.DialectWrapper

	Categories *records.Access[libTypes.Category]
	Authors    *records.Access[libTypes.Author]
	Books      *records.Access[libTypes.Book]
	Loans      *records.Access[libTypes.Loan]
	Persons    *records.Access[libTypes.Person]
}

func NewLibraryDBService(config db.DBConfig) (*LibraryDBService, error) {
	dbClient, err := db.Connect(config)
	if err != nil {
		return nil, err
	}
	return NewLibraryDBServiceWithDB(dbClient, config.Dialect), nil
}

func NewLibraryDBServiceWithDB(dbClient *sqlx.DB, dialect string) *LibraryDBService {
	return &LibraryDBService{
		DB:         dbClient,
		gq:         goqu.Dialect(dialect),
		Categories: records.NewAccess[libTypes.Category](dbClient, dialect, TABLE_NAME_CATEGORIES),
		Authors:    records.NewAccess[libTypes.Author](dbClient, dialect, TABLE_NAME_AUTHORS),
		Books:      records.NewAccess[libTypes.Book](dbClient, dialect, TABLE_NAME_BOOKS),
		Loans:      records.NewAccess[libTypes.Loan](dbClient, dialect, TABLE_NAME_LOANS),
		Persons:    records.NewAccess[libTypes.Person](dbClient, dialect, TABLE_NAME_PERSONS),
	}
}

func (dbService *LibraryDBService) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := dbService.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether a row with the given id is present.
func (dbService *LibraryDBService) Exists(ctx context.Context, table string, id string) (bool, error) {
	return dbService.exists(ctx, table, goqu.Ex{"id": id})
}

// ExistsOther reports whether another record (different id) already
// holds the given column value. Used by the uniqueness validators, so
// updates do not conflict with the record itself.
func (dbService *LibraryDBService) ExistsOther(ctx context.Context, table string, column string, value interface{}, excludeID string) (bool, error) {
	return dbService.exists(ctx, table, goqu.Ex{
		column: value,
		"id":   goqu.Op{"neq": excludeID},
	})
}

func (dbService *LibraryDBService) exists(ctx context.Context, table string, where goqu.Ex) (bool, error) {
	query, args, err := dbService.gq.From(table).
		Select(goqu.COUNT("*")).
		Where(where).
		Prepared(true).ToSQL()
	if err != nil {
		return false, err
	}
	var count int
	if err := dbService.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}
