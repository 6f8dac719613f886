package arrivals

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"citymap.dev/arrivals/lpp"
	"citymap.dev/arrivals/model"
	"citymap.dev/arrivals/snapshot"
	"citymap.dev/arrivals/storage"
)

var ErrNoSnapshot = errors.New("no snapshot found")

// Manager handles the snapshot lifecycle around the playback engine:
// capturing snapshots from the upstream API into storage, and loading
// archived snapshots back out.
type Manager struct {
	Client *lpp.Client

	storage storage.Storage
}

func NewManager(s storage.Storage, client *lpp.Client) *Manager {
	return &Manager{
		Client:  client,
		storage: s,
	}
}

// Record captures a fresh snapshot from the API and archives it. The
// snapshot is stored as its canonical JSON document, keyed by content
// hash.
func (m *Manager) Record(ctx context.Context) (*storage.SnapshotMetadata, error) {
	snap, err := m.Client.FetchSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}

	metadata := &storage.SnapshotMetadata{
		SHA256:       fmt.Sprintf("%x", sha256.Sum256(body)),
		Source:       m.Client.BaseURL,
		CapturedAt:   snap.CapturedAt,
		RetrievedAt:  time.Now().UTC(),
		StationCount: len(snap.Stations),
	}

	if err := m.storage.WriteSnapshot(metadata, body); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}

	return metadata, nil
}

// LoadSnapshot returns the most recently captured snapshot at or
// before the given time. Returns ErrNoSnapshot when storage holds
// nothing matching.
func (m *Manager) LoadSnapshot(when time.Time) (*model.AllStationsSnapshot, error) {
	metas, err := m.storage.ListSnapshots(storage.ListSnapshotsFilter{CapturedBy: when})
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	if len(metas) == 0 {
		return nil, ErrNoSnapshot
	}

	body, err := m.storage.ReadSnapshot(metas[0].SHA256)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	snap, err := snapshot.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return snap, nil
}

// ListSnapshots returns metadata for every archived snapshot, most
// recently captured first.
func (m *Manager) ListSnapshots() ([]*storage.SnapshotMetadata, error) {
	return m.storage.ListSnapshots(storage.ListSnapshotsFilter{})
}
