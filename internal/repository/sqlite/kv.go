package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/employee-polls/internal/domain"
)

// KV implements domain.KeyValueStore using SQLite. Each key holds one
// opaque JSON document that is fully overwritten on every write, mirroring
// the whole-collection persistence contract of the state layer.
type KV struct {
	db *sql.DB
}

// NewKV creates a new SQLite-backed KV.
func NewKV(db *DB) *KV {
	return &KV{db: db.SqlDB}
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := kv.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query kv entry: %w", err)
	}
	return value, nil
}

func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC()
	_, err := kv.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv entry: %w", err)
	}
	return nil
}
