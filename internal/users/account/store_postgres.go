// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tamgioi/internal/platform/database/schema"
	"github.com/taibuivan/tamgioi/internal/platform/dberr"
)

// # PostgreSQL Repository

// accountRepository implements the [Repository] interface using pgx.
type accountRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &accountRepository{pool: pool}
}

func (repository *accountRepository) selectClause() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.UsersAccount.UserID, schema.UsersAccount.Username,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName,
		schema.UsersAccount.IsAdmin, schema.UsersAccount.Exp,
		schema.UsersAccount.PasswordHash,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.LastActiveAt,
		schema.UsersAccount.Table,
	)
}

/*
Find returns the account with the given user id, or nil when absent.
*/
func (repository *accountRepository) Find(context context.Context, userID int64) (*Account, error) {

	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectClause(), schema.UsersAccount.UserID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "account_find")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	account, err := scanAccount(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan account: %w", err)
	}

	return account, nil
}

/*
Upsert creates or refreshes the account in one statement.
*/
func (repository *accountRepository) Upsert(context context.Context, profile Profile) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		    %s = NOW(), %s = NOW()
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.UserID, schema.UsersAccount.Username,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.LastActiveAt,
		schema.UsersAccount.UserID,
		schema.UsersAccount.Username, schema.UsersAccount.Username,
		schema.UsersAccount.FirstName, schema.UsersAccount.FirstName,
		schema.UsersAccount.LastName, schema.UsersAccount.LastName,
		schema.UsersAccount.UpdatedAt, schema.UsersAccount.LastActiveAt,
	)

	if _, err := repository.pool.Exec(context, query,
		profile.UserID, profile.Username, profile.FirstName, profile.LastName); err != nil {
		return dberr.Wrap(err, "account_upsert")
	}

	return nil
}

/*
AddExp atomically increments a user's experience.
*/
func (repository *accountRepository) AddExp(context context.Context, userID int64, amount int) (bool, error) {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + $2, %s = NOW() WHERE %s = $1
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.Exp, schema.UsersAccount.Exp,
		schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.UserID,
	)

	result, err := repository.pool.Exec(context, query, userID, amount)
	if err != nil {
		return false, dberr.Wrap(err, "account_add_exp")
	}

	return result.RowsAffected() > 0, nil
}

/*
SetAdmin grants or revokes moderator standing.
*/
func (repository *accountRepository) SetAdmin(context context.Context, userID int64, isAdmin bool) (bool, error) {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.IsAdmin, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.UserID,
	)

	result, err := repository.pool.Exec(context, query, userID, isAdmin)
	if err != nil {
		return false, dberr.Wrap(err, "account_set_admin")
	}

	return result.RowsAffected() > 0, nil
}

/*
SetPasswordHash stores login credentials for an account.
*/
func (repository *accountRepository) SetPasswordHash(context context.Context, userID int64, hash string) (bool, error) {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.UserID,
	)

	result, err := repository.pool.Exec(context, query, userID, hash)
	if err != nil {
		return false, dberr.Wrap(err, "account_set_password")
	}

	return result.RowsAffected() > 0, nil
}

/*
List returns a page of accounts ordered by last activity, newest first.
*/
func (repository *accountRepository) List(context context.Context, limit, offset int) ([]*Account, int, error) {

	query := fmt.Sprintf(`%s ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		repository.selectClause(), schema.UsersAccount.LastActiveAt)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "account_list")
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "account_list")
	}

	total, err := repository.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return accounts, int(total), nil
}

/*
ListAdmins returns every account with moderator standing.
*/
func (repository *accountRepository) ListAdmins(context context.Context) ([]*Account, error) {

	query := fmt.Sprintf(`%s WHERE %s = TRUE ORDER BY %s ASC`,
		repository.selectClause(), schema.UsersAccount.IsAdmin, schema.UsersAccount.UserID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "account_list_admins")
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

/*
Count returns the total number of accounts.
*/
func (repository *accountRepository) Count(context context.Context) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.UsersAccount.Table)

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "account_count")
	}

	return total, nil
}

/*
CountActiveSince returns how many accounts interacted after the instant.
*/
func (repository *accountRepository) CountActiveSince(context context.Context, since time.Time) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s >= $1`,
		schema.UsersAccount.Table, schema.UsersAccount.LastActiveAt)

	var total int64
	if err := repository.pool.QueryRow(context, query, since).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "account_count_active")
	}

	return total, nil
}

// # Row Mapping

func scanAccount(scan func(dest ...any) error) (*Account, error) {
	var account Account
	var passwordHash *string

	if err := scan(&account.UserID, &account.Username,
		&account.FirstName, &account.LastName,
		&account.IsAdmin, &account.Exp, &passwordHash,
		&account.CreatedAt, &account.UpdatedAt, &account.LastActiveAt); err != nil {
		return nil, err
	}

	if passwordHash != nil {
		account.PasswordHash = *passwordHash
	}

	return &account, nil
}
