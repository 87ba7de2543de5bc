package account

import (
	"context"
	"database/sql"
	"errors"

	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/db"

	"github.com/jackc/pgx/v4"
)

const getByUsernameSQL = `
	SELECT username, name, email FROM account WHERE username = $1`

const getByEmailSQL = `
	SELECT username, name, email FROM account WHERE lower(email) = $1`

const setPasswordSQL = `
	UPDATE account SET password_hash = $2 WHERE username = $1`

type PgxAccountRepository struct {
	db db.DBTX
}

func NewPgxAccountRepository(dbtx db.DBTX) *PgxAccountRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("dbtx"))
	}
	return &PgxAccountRepository{db: dbtx}
}

func (r *PgxAccountRepository) GetByUsername(
	ctx context.Context,
	username account.Username,
) (a account.Account, err error) {
	return r.getAccount(ctx, getByUsernameSQL, string(username))
}

func (r *PgxAccountRepository) GetByEmail(
	ctx context.Context,
	email c.Email,
) (a account.Account, err error) {
	return r.getAccount(ctx, getByEmailSQL, string(email))
}

func (r *PgxAccountRepository) SetPassword(
	ctx context.Context,
	username account.Username,
	password account.PasswordHash,
) error {
	tag, err := r.db.Exec(ctx, setPasswordSQL, string(username), string(password))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

func (r *PgxAccountRepository) getAccount(
	ctx context.Context,
	query string,
	arg string,
) (a account.Account, err error) {
	var rawUsername, name string
	var email sql.NullString
	err = r.db.QueryRow(ctx, query, arg).Scan(&rawUsername, &name, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return account.Account{
		Username: account.Username(rawUsername),
		Name:     name,
		Email:    c.NewOptional(c.NewEmail(email.String), email.Valid),
	}, nil
}
