package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot/schema"
)

// SQLiteConfig contains configuration for the SQLite snapshot repository
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("storage path is required")
	}
	return nil
}

// SQLiteRepository stores one JSON snapshot row per character
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLite opens the database file and applies the schema
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, schema.SQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to apply snapshot schema")
	}

	slog.Info("Snapshot store opened", "driver", "sqlite", "path", cfg.Path)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get implements Repository
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE character_id = ?`,
		input.CharacterID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get snapshot for character %s", input.CharacterID)
	}

	var snap entities.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot for character %s", input.CharacterID)
	}

	return &GetOutput{Snapshot: &snap}, nil
}

// Save implements Repository
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}
	snap := input.Snapshot

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot for character %s", snap.CharacterID)
	}

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (character_id, level, data, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(character_id) DO UPDATE SET
		   level = excluded.level,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		snap.CharacterID,
		snap.Level,
		string(data),
		savedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot for character %s", snap.CharacterID)
	}

	return &SaveOutput{}, nil
}

// Delete implements Repository
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE character_id = ?`,
		input.CharacterID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot for character %s", input.CharacterID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}

	return &DeleteOutput{}, nil
}

// List implements Repository
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT character_id FROM snapshots ORDER BY character_id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan snapshot row")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}

	return &ListOutput{CharacterIDs: ids}, nil
}
