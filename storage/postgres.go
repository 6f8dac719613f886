package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

type PSQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	// Clears the snapshot table on startup. You probably only
	// want this for testing.
	ClearDB bool
}

type PSQLStorage struct {
	db *sql.DB
}

func NewPSQLStorage(cfg PSQLConfig) (*PSQLStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	if cfg.ClearDB {
		_, err = db.Exec(`DROP TABLE IF EXISTS snapshot;`)
		if err != nil {
			return nil, fmt.Errorf("clearing db: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
    sha256 TEXT,
    source TEXT NOT NULL,
    captured_at TIMESTAMPTZ NOT NULL,
    retrieved_at TIMESTAMPTZ NOT NULL,
    station_count INTEGER NOT NULL,
    body BYTEA NOT NULL,
    PRIMARY KEY (sha256)
);`)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing db: %w", err)
	}
	return nil
}

func (s *PSQLStorage) ListSnapshots(filter ListSnapshotsFilter) ([]*SnapshotMetadata, error) {
	query := `
SELECT
    sha256,
    source,
    captured_at,
    retrieved_at,
    station_count
FROM snapshot`

	conditions := []string{}
	params := []interface{}{}
	if filter.Source != "" {
		params = append(params, filter.Source)
		conditions = append(conditions, fmt.Sprintf("source = $%d", len(params)))
	}
	if !filter.CapturedBy.IsZero() {
		params = append(params, filter.CapturedBy)
		conditions = append(conditions, fmt.Sprintf("captured_at <= $%d", len(params)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY captured_at DESC"

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	metas := []*SnapshotMetadata{}
	for rows.Next() {
		meta := &SnapshotMetadata{}
		err = rows.Scan(
			&meta.SHA256,
			&meta.Source,
			&meta.CapturedAt,
			&meta.RetrievedAt,
			&meta.StationCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		metas = append(metas, meta)
	}

	return metas, rows.Err()
}

func (s *PSQLStorage) WriteSnapshot(metadata *SnapshotMetadata, body []byte) error {
	_, err := s.db.Exec(`
INSERT INTO snapshot (sha256, source, captured_at, retrieved_at, station_count, body)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (sha256) DO UPDATE SET
    source = excluded.source,
    captured_at = excluded.captured_at,
    retrieved_at = excluded.retrieved_at,
    station_count = excluded.station_count,
    body = excluded.body`,
		metadata.SHA256,
		metadata.Source,
		metadata.CapturedAt,
		metadata.RetrievedAt,
		metadata.StationCount,
		body,
	)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

func (s *PSQLStorage) ReadSnapshot(sha256 string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM snapshot WHERE sha256 = $1`, sha256).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return body, nil
}

func (s *PSQLStorage) DeleteSnapshot(sha256 string) error {
	res, err := s.db.Exec(`DELETE FROM snapshot WHERE sha256 = $1`, sha256)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}
