package token

import (
	"context"
	"errors"
	"time"

	"passwordreset/internal/core/domain/account"
	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const TOKEN_PK_CONSTRAINT_NAME = "password_reset_token_pkey"

const insertSQL = `
	INSERT INTO password_reset_token (token, username, source_address, expires_at)
	VALUES ($1, $2, $3, $4)`

const deleteExpiredSQL = `
	DELETE FROM password_reset_token WHERE expires_at <= $1`

const getOwnerByTokenSQL = `
	SELECT username FROM password_reset_token
	WHERE token = $1 AND expires_at > $2`

const deleteByUsernameSQL = `
	DELETE FROM password_reset_token WHERE username = $1`

const listRequestsSQL = `
	SELECT username, source_address, expires_at FROM password_reset_token
	WHERE expires_at > $1
	ORDER BY username, expires_at`

type PgxTokenRepository struct {
	db db.DBTX
}

func NewPgxTokenRepository(dbtx db.DBTX) *PgxTokenRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("dbtx"))
	}
	return &PgxTokenRepository{db: dbtx}
}

func (r *PgxTokenRepository) Create(ctx context.Context, input token.CreateTokenInput) error {
	_, err := r.db.Exec(
		ctx,
		insertSQL,
		string(input.Token),
		string(input.Username),
		input.SourceAddress,
		input.ExpiresAt,
	)

	// The generator makes collisions astronomically unlikely; the
	// primary key is defense-in-depth.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == db.PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			pgErr.ConstraintName == TOKEN_PK_CONSTRAINT_NAME {
			return token.ErrTokenAlreadyExists
		}
	}
	return err
}

func (r *PgxTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (count int64, err error) {
	tag, err := r.db.Exec(ctx, deleteExpiredSQL, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgxTokenRepository) GetOwnerByToken(
	ctx context.Context,
	t token.Token,
	now time.Time,
) (username account.Username, err error) {
	var rawUsername string
	err = r.db.QueryRow(ctx, getOwnerByTokenSQL, string(t), now).Scan(&rawUsername)
	if errors.Is(err, pgx.ErrNoRows) {
		return username, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return username, err
	}
	return account.Username(rawUsername), nil
}

func (r *PgxTokenRepository) DeleteByUsername(ctx context.Context, username account.Username) error {
	_, err := r.db.Exec(ctx, deleteByUsernameSQL, string(username))
	return err
}

func (r *PgxTokenRepository) ListRequests(ctx context.Context, now time.Time) ([]token.ResetRequest, error) {
	rows, err := r.db.Query(ctx, listRequestsSQL, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]token.ResetRequest, 0)
	for rows.Next() {
		var rawUsername, sourceAddress string
		var expiresAt time.Time
		if err := rows.Scan(&rawUsername, &sourceAddress, &expiresAt); err != nil {
			return nil, err
		}
		requests = append(requests, token.ResetRequest{
			Username:      account.Username(rawUsername),
			SourceAddress: sourceAddress,
			ExpiresAt:     expiresAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
