package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteConfig struct {
	OnDisk    bool
	Directory string
}

type SQLiteStorage struct {
	SQLiteConfig

	db *sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	onDisk := false
	directory := ""
	if len(cfg) > 0 {
		onDisk = cfg[0].OnDisk
		directory = cfg[0].Directory
	}

	sourceName := ":memory:"
	if onDisk {
		sourceName = directory + "/snapshots.db"
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
    sha256 TEXT,
    source TEXT NOT NULL,
    captured_at TIMESTAMP NOT NULL,
    retrieved_at TIMESTAMP NOT NULL,
    station_count INTEGER NOT NULL,
    body BLOB NOT NULL,
PRIMARY KEY (sha256)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	return &SQLiteStorage{
		SQLiteConfig: SQLiteConfig{
			OnDisk:    onDisk,
			Directory: directory,
		},
		db: db,
	}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) ListSnapshots(filter ListSnapshotsFilter) ([]*SnapshotMetadata, error) {
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
		conditions = append(conditions, "source = ?")
		params = append(params, filter.Source)
	}
	if !filter.CapturedBy.IsZero() {
		conditions = append(conditions, "captured_at <= ?")
		params = append(params, filter.CapturedBy)
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

func (s *SQLiteStorage) WriteSnapshot(metadata *SnapshotMetadata, body []byte) error {
	_, err := s.db.Exec(`
INSERT INTO snapshot (sha256, source, captured_at, retrieved_at, station_count, body)
VALUES (?, ?, ?, ?, ?, ?)
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

func (s *SQLiteStorage) ReadSnapshot(sha256 string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM snapshot WHERE sha256 = ?`, sha256).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return body, nil
}

func (s *SQLiteStorage) DeleteSnapshot(sha256 string) error {
	res, err := s.db.Exec(`DELETE FROM snapshot WHERE sha256 = ?`, sha256)
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
