package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"jivuma/internal/domain"
)

// CartSnapshotKey is the fixed slot the cart persists itself under.
const CartSnapshotKey = "jivuma_cart"

// SnapshotRepo stores the cart as a JSON-serialized entry array in a
// single string-keyed record, overwritten wholesale on every save.
type SnapshotRepo struct {
	db  *sqlx.DB
	key string
}

func NewSnapshotRepo(db *sqlx.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, key: CartSnapshotKey}
}

func (r *SnapshotRepo) Save(entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO snapshots(key,value,updated_at) VALUES(?,?,?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, r.key, string(b), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

// Load reads the saved entry array. A missing slot is an empty cart,
// not an error; malformed JSON is reported so the caller can log it and
// start empty.
func (r *SnapshotRepo) Load() ([]domain.Entry, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM snapshots WHERE key = ?`, r.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	var entries []domain.Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return entries, nil
}
