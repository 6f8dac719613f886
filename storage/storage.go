// Package storage archives station snapshots. Each snapshot is a raw
// JSON document keyed by its content hash, plus a metadata record
// describing when and where it was captured.
package storage

import (
	"errors"
	"time"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type Storage interface {
	// Retrieves metadata for all snapshots matching the filter,
	// most recently captured first.
	ListSnapshots(filter ListSnapshotsFilter) ([]*SnapshotMetadata, error)

	// Writes a snapshot document and its metadata. Writing the
	// same hash again updates the metadata record.
	WriteSnapshot(metadata *SnapshotMetadata, body []byte) error

	// Retrieves the raw document for the snapshot with the given
	// hash. Returns ErrSnapshotNotFound if absent.
	ReadSnapshot(sha256 string) ([]byte, error)

	// Removes a snapshot and its metadata. Returns
	// ErrSnapshotNotFound if absent.
	DeleteSnapshot(sha256 string) error
}

type ListSnapshotsFilter struct {
	// If set, only include snapshots captured from this source.
	Source string

	// If set, only include snapshots captured at or before this
	// time.
	CapturedBy time.Time
}

// Metadata for an archived snapshot document.
type SnapshotMetadata struct {
	SHA256       string
	Source       string
	CapturedAt   time.Time
	RetrievedAt  time.Time
	StationCount int
}
