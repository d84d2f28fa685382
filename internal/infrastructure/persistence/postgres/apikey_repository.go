package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

const (
	insertKeySQL = `INSERT INTO api_keys (key, user_id, description, created_at, last_used)
		VALUES ($1, $2, $3, $4, $5)`
	selectKeySQL     = `SELECT key, user_id, description, created_at, last_used FROM api_keys`
	touchLastUsedSQL = `UPDATE api_keys SET last_used = $2 WHERE key = $1`
	deleteKeySQL     = `DELETE FROM api_keys WHERE key = $1`
)

type APIKeyRepository struct {
	pool *pgxpool.Pool
}

func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

// Insert does NOT map unique violations to a conflict: the secret carries
// enough entropy that a collision is an internal fault, not a client error.
func (r *APIKeyRepository) Insert(ctx context.Context, key *domain.APIKey) error {
	_, err := r.pool.Exec(ctx, insertKeySQL,
		key.Key, key.UserID, key.Description, key.CreatedAt, key.LastUsed)
	return err
}

func (r *APIKeyRepository) GetBySecret(ctx context.Context, secret string) (*domain.APIKey, error) {
	var k domain.APIKey
	err := r.pool.QueryRow(ctx, selectKeySQL+` WHERE key = $1`, secret).
		Scan(&k.Key, &k.UserID, &k.Description, &k.CreatedAt, &k.LastUsed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}

func (r *APIKeyRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.APIKey, error) {
	rows, err := r.pool.Query(ctx, selectKeySQL+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []*domain.APIKey
	for rows.Next() {
		var k domain.APIKey
		if err := rows.Scan(&k.Key, &k.UserID, &k.Description, &k.CreatedAt, &k.LastUsed); err != nil {
			return nil, err
		}
		keys = append(keys, &k)
	}
	return keys, rows.Err()
}

func (r *APIKeyRepository) TouchLastUsed(ctx context.Context, secret string, at time.Time) error {
	_, err := r.pool.Exec(ctx, touchLastUsedSQL, secret, at)
	return err
}

func (r *APIKeyRepository) Delete(ctx context.Context, secret string) error {
	_, err := r.pool.Exec(ctx, deleteKeySQL, secret)
	return err
}

var _ ports.APIKeyRepository = (*APIKeyRepository)(nil)
