package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RefreshToken struct {
	ID        uuid.UUID
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

const refreshTokenColumns = `id, user_id, token_hash, expires_at, revoked, created_at`

func scanRefreshToken(row interface{ Scan(...interface{}) error }) (RefreshToken, error) {
	var t RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Revoked, &t.CreatedAt)
	return t, err
}

type CreateRefreshTokenParams struct {
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
}

const createRefreshToken = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING ` + refreshTokenColumns

func (q *Queries) CreateRefreshToken(ctx context.Context, arg CreateRefreshTokenParams) (RefreshToken, error) {
	row := q.db.QueryRowContext(ctx, createRefreshToken, arg.UserID, arg.TokenHash, arg.ExpiresAt)
	return scanRefreshToken(row)
}

const getRefreshTokenByHash = `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens
WHERE token_hash = $1 AND revoked = FALSE`

func (q *Queries) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (RefreshToken, error) {
	return scanRefreshToken(q.db.QueryRowContext(ctx, getRefreshTokenByHash, tokenHash))
}

const revokeRefreshToken = `UPDATE refresh_tokens SET revoked = TRUE WHERE id = $1`

func (q *Queries) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, revokeRefreshToken, id)
	return err
}

const deleteExpiredRefreshTokens = `DELETE FROM refresh_tokens WHERE expires_at < NOW() OR revoked = TRUE`

func (q *Queries) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredRefreshTokens)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
