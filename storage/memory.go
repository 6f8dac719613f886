package storage

import (
	"sort"
)

// In memory implementation of Storage below

type memoryEntry struct {
	metadata *SnapshotMetadata
	body     []byte
}

type MemoryStorage struct {
	snapshots map[string]*memoryEntry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		snapshots: map[string]*memoryEntry{},
	}
}

func (s *MemoryStorage) ListSnapshots(filter ListSnapshotsFilter) ([]*SnapshotMetadata, error) {
	metas := []*SnapshotMetadata{}
	for _, entry := range s.snapshots {
		if filter.Source != "" && entry.metadata.Source != filter.Source {
			continue
		}
		if !filter.CapturedBy.IsZero() && entry.metadata.CapturedAt.After(filter.CapturedBy) {
			continue
		}
		metas = append(metas, entry.metadata)
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CapturedAt.After(metas[j].CapturedAt)
	})
	return metas, nil
}

func (s *MemoryStorage) WriteSnapshot(metadata *SnapshotMetadata, body []byte) error {
	s.snapshots[metadata.SHA256] = &memoryEntry{
		metadata: metadata,
		body:     body,
	}
	return nil
}

func (s *MemoryStorage) ReadSnapshot(sha256 string) ([]byte, error) {
	entry, found := s.snapshots[sha256]
	if !found {
		return nil, ErrSnapshotNotFound
	}
	return entry.body, nil
}

func (s *MemoryStorage) DeleteSnapshot(sha256 string) error {
	if _, found := s.snapshots[sha256]; !found {
		return ErrSnapshotNotFound
	}
	delete(s.snapshots, sha256)
	return nil
}
