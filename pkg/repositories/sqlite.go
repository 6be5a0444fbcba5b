package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/flipside/pkg/repositories/migrations"
	"github.com/cbodonnell/flipside/pkg/repositories/models"
	"github.com/cbodonnell/flipside/pkg/save"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository keeps save slots as rows of a local database. Snapshots are
// stored compressed.
type SQLiteRepository struct {
	db    *sql.DB
	codec save.Codec
}

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}
	if err := migrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db:    db,
		codec: save.Codec{Compress: true},
	}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	ms, err := readMigrations(migrations.SQLite, "sqlite")
	if err != nil {
		return err
	}
	q := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL);`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create migration table: %v", err)
	}

	for _, m := range ms {
		var found int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM `+migrationTable+` WHERE name = ?`, m.name).Scan(&found)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check migration %s: %v", m.name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %v", err)
		}
		if _, err := tx.ExecContext(ctx, m.up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`, m.name, time.Now().UnixMilli()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %v", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %v", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) Save(ctx context.Context, slot string, snapshot *save.Snapshot) error {
	data, err := r.codec.Encode(snapshot)
	if err != nil {
		return err
	}
	q := `
	INSERT OR REPLACE INTO saves (slot, level, play_time, saved_at, updated_at, data)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err = r.db.ExecContext(ctx, q, slot, snapshot.CurrentLevelName, snapshot.CumulativePlayTimeSeconds,
		snapshot.SaveTimestamp, time.Now().UnixMilli(), data)
	if err != nil {
		return fmt.Errorf("failed to insert save: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, slot string) (*save.Snapshot, error) {
	q := `
	SELECT data FROM saves WHERE slot = ?;
	`
	var data []byte
	if err := r.db.QueryRowContext(ctx, q, slot).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Slot: slot}
		}
		return nil, fmt.Errorf("failed to scan save: %v", err)
	}

	return r.codec.Decode(data)
}

func (r *SQLiteRepository) Exists(ctx context.Context, slot string) (bool, error) {
	var found int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM saves WHERE slot = ?;`, slot).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query save: %v", err)
	}
	return true, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?;`, slot); err != nil {
		return fmt.Errorf("failed to delete save: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.SaveSlot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot, level, play_time, saved_at FROM saves ORDER BY slot;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query saves: %v", err)
	}
	defer rows.Close()

	slots := []models.SaveSlot{}
	for rows.Next() {
		var s models.SaveSlot
		if err := rows.Scan(&s.Slot, &s.Level, &s.PlayTime, &s.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan save: %v", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saves: %v", err)
	}
	return slots, nil
}
