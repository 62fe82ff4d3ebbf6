package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
)

func (dbService *AccountDBService) SaveToken(ctx context.Context, token userTypes.Token) error {
	query, args, err := dbService.gq.Insert(TABLE_NAME_ACCOUNT_TOKENS).
		Rows(token).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = dbService.DB.ExecContext(ctx, query, args...)
	return err
}

func (dbService *AccountDBService) FindToken(ctx context.Context, accountID string, purpose string, tokenStr string) (userTypes.Token, error) {
	var token userTypes.Token
	query, args, err := dbService.gq.From(TABLE_NAME_ACCOUNT_TOKENS).
		Where(
			goqu.C("account_id").Eq(accountID),
			goqu.C("purpose").Eq(purpose),
			goqu.C("token").Eq(tokenStr),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return token, err
	}
	if err := dbService.DB.GetContext(ctx, &token, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return token, records.ErrNotFound
		}
		return token, err
	}
	return token, nil
}

// DeleteTokens removes every token of the given purpose for the account,
// typically right after one of them was consumed.
func (dbService *AccountDBService) DeleteTokens(ctx context.Context, accountID string, purpose string) error {
	query, args, err := dbService.gq.Delete(TABLE_NAME_ACCOUNT_TOKENS).
		Where(
			goqu.C("account_id").Eq(accountID),
			goqu.C("purpose").Eq(purpose),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = dbService.DB.ExecContext(ctx, query, args...)
	return err
}
