package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"
)

func (dbService *AccountDBService) getAccountBy(ctx context.Context, column string, value string) (userTypes.Account, error) {
	var account userTypes.Account
	query, args, err := dbService.gq.From(TABLE_NAME_ACCOUNTS).
		Where(goqu.C(column).Eq(value)).
		Prepared(true).ToSQL()
	if err != nil {
		return account, err
	}
	if err := dbService.DB.GetContext(ctx, &account, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account, records.ErrNotFound
		}
		return account, err
	}

	roles, err := dbService.GetAccountRoles(ctx, account.ID)
	if err != nil {
		return account, err
	}
	account.Roles = roles
	return account, nil
}

func (dbService *AccountDBService) GetAccountByID(ctx context.Context, id string) (userTypes.Account, error) {
	return dbService.getAccountBy(ctx, "id", id)
}

func (dbService *AccountDBService) GetAccountByEmail(ctx context.Context, email string) (userTypes.Account, error) {
	return dbService.getAccountBy(ctx, "email", email)
}

func (dbService *AccountDBService) GetAccountByUsername(ctx context.Context, username string) (userTypes.Account, error) {
	return dbService.getAccountBy(ctx, "username", username)
}

func (dbService *AccountDBService) CreateAccount(ctx context.Context, account userTypes.Account) error {
	query, args, err := dbService.gq.Insert(TABLE_NAME_ACCOUNTS).
		Rows(account).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = dbService.DB.ExecContext(ctx, query, args...)
	return err
}

func (dbService *AccountDBService) UpdateAccount(ctx context.Context, account userTypes.Account) error {
	query, args, err := dbService.gq.Update(TABLE_NAME_ACCOUNTS).
		Set(account).
		Where(goqu.C("id").Eq(account.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	result, err := dbService.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected < 1 {
		return records.ErrNotFound
	}
	return nil
}

func (dbService *AccountDBService) AddAccountRole(ctx context.Context, accountID string, role string) error {
	query, args, err := dbService.gq.Insert(TABLE_NAME_ACCOUNT_ROLES).
		Rows(goqu.Record{"account_id": accountID, "role": role}).
		Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	_, err = dbService.DB.ExecContext(ctx, query, args...)
	return err
}

func (dbService *AccountDBService) GetAccountRoles(ctx context.Context, accountID string) ([]string, error) {
	query, args, err := dbService.gq.From(TABLE_NAME_ACCOUNT_ROLES).
		Select(goqu.C("role")).
		Where(goqu.C("account_id").Eq(accountID)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	roles := []string{}
	if err := dbService.DB.SelectContext(ctx, &roles, query, args...); err != nil {
		return nil, err
	}
	return roles, nil
}
