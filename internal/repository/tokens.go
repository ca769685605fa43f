package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRepo records session tokens invalidated by logout, keyed by
// token ID (the JWT "jti").
type RevokedTokenRepo struct {
	pool *pgxpool.Pool
}

func NewRevokedTokenRepo(pool *pgxpool.Pool) *RevokedTokenRepo {
	return &RevokedTokenRepo{pool: pool}
}

// Revoke marks a token ID as revoked until it would have expired anyway
func (r *RevokedTokenRepo) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO revoked_tokens (token_id, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token_id) DO NOTHING
	`, tokenID, expiresAt)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked
func (r *RevokedTokenRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id = $1)
	`, tokenID).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("checking revoked token: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose tokens have expired
func (r *RevokedTokenRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("purging revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
