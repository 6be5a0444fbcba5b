package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/repositories/migrations"
	"github.com/cbodonnell/flipside/pkg/repositories/models"
	"github.com/cbodonnell/flipside/pkg/save"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository keeps save slots in a PostgreSQL database.
type PostgresRepository struct {
	conn  *pgx.Conn
	codec save.Codec
}

// NewPostgresRepository connects to connStr and applies the schema.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}
	if err := migratePostgres(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, err
	}
	return &PostgresRepository{
		conn:  conn,
		codec: save.Codec{Compress: true},
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func migratePostgres(ctx context.Context, conn *pgx.Conn) error {
	ms, err := readMigrations(migrations.Postgres, "postgres")
	if err != nil {
		return err
	}
	q := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (name TEXT PRIMARY KEY, applied_at BIGINT NOT NULL);`
	if _, err := conn.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to create migration table: %v", err)
	}

	for _, m := range ms {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %v", err)
		}
		tag, err := tx.Exec(ctx, `INSERT INTO `+migrationTable+` (name, applied_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;`,
			m.name, time.Now().UnixMilli())
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %v", m.name, err)
		}
		if tag.RowsAffected() == 0 {
			tx.Rollback(ctx)
			continue
		}
		if _, err := tx.Exec(ctx, m.up); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %v", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) Save(ctx context.Context, slot string, snapshot *save.Snapshot) error {
	data, err := r.codec.Encode(snapshot)
	if err != nil {
		return err
	}
	q := `
	INSERT INTO saves (slot, level, play_time, saved_at, updated_at, data) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (slot) DO UPDATE SET level = $2, play_time = $3, saved_at = $4, updated_at = $5, data = $6;
	`
	_, err = r.conn.Exec(ctx, q, slot, snapshot.CurrentLevelName, snapshot.CumulativePlayTimeSeconds,
		snapshot.SaveTimestamp, time.Now().UnixMilli(), data)
	if err != nil {
		return fmt.Errorf("failed to insert save: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Load(ctx context.Context, slot string) (*save.Snapshot, error) {
	q := `
	SELECT data FROM saves WHERE slot = $1;
	`
	var data []byte
	if err := r.conn.QueryRow(ctx, q, slot).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Slot: slot}
		}
		return nil, fmt.Errorf("failed to scan save: %v", err)
	}

	return r.codec.Decode(data)
}

func (r *PostgresRepository) Exists(ctx context.Context, slot string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM saves WHERE slot = $1);`, slot).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query save: %v", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM saves WHERE slot = $1;`, slot); err != nil {
		return fmt.Errorf("failed to delete save: %v", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.SaveSlot, error) {
	rows, err := r.conn.Query(ctx, `SELECT slot, level, play_time, saved_at FROM saves ORDER BY slot;`)
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
