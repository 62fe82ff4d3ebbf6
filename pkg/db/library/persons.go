package library

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	libTypes "github.com/Johnmontoya/library-backend/pkg/library/types"
	"github.com/Johnmontoya/library-backend/pkg/records"
)

// GetPersonByAccountID resolves the 1:1 profile owned by an account.
func (dbService *LibraryDBService) GetPersonByAccountID(ctx context.Context, accountID string) (libTypes.Person, error) {
	var person libTypes.Person
	query, args, err := dbService.gq.From(TABLE_NAME_PERSONS).
		Where(goqu.C("account_id").Eq(accountID)).
		Prepared(true).ToSQL()
	if err != nil {
		return person, err
	}
	if err := dbService.DB.GetContext(ctx, &person, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return person, records.ErrNotFound
		}
		return person, err
	}
	return person, nil
}
