package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/ports"
)

// PostgresKVStoreImpl implements the KVStore interface on the user_kv
// table. Values are stored as JSONB so they stay queryable from SQL.
type PostgresKVStoreImpl struct {
	db *sqlx.DB
}

// NewPostgresKVStore creates a Postgres-backed KV store.
func NewPostgresKVStore(db *sqlx.DB) ports.KVStore {
	return &PostgresKVStoreImpl{db: db}
}

func (s *PostgresKVStoreImpl) Get(ctx context.Context, userID, key string) ([]byte, error) {
	query := `SELECT value FROM user_kv WHERE user_id = $1 AND key = $2`

	var value []byte
	err := s.db.GetContext(ctx, &value, query, userID, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv value: %w", err)
	}

	return value, nil
}

func (s *PostgresKVStoreImpl) Set(ctx context.Context, userID, key string, value []byte) error {
	query := `
		INSERT INTO user_kv (user_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, query, userID, key, value)
	if err != nil {
		return fmt.Errorf("set kv value: %w", err)
	}

	return nil
}

func (s *PostgresKVStoreImpl) Delete(ctx context.Context, userID, key string) error {
	query := `DELETE FROM user_kv WHERE user_id = $1 AND key = $2`

	_, err := s.db.ExecContext(ctx, query, userID, key)
	if err != nil {
		return fmt.Errorf("delete kv value: %w", err)
	}

	return nil
}
