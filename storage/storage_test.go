package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests run against the in-memory and sqlite backends by default. Set
// ARRIVALS_POSTGRES_HOST to also run against postgres.

func testBackends(t *testing.T) map[string]Storage {
	backends := map[string]Storage{
		"memory": NewMemoryStorage(),
	}

	sqlite, err := NewSQLiteStorage()
	require.NoError(t, err)
	backends["sqlite"] = sqlite

	if host := os.Getenv("ARRIVALS_POSTGRES_HOST"); host != "" {
		psql, err := NewPSQLStorage(PSQLConfig{
			Host:     host,
			Port:     5432,
			User:     "postgres",
			Password: "mysecretpassword",
			DBName:   "arrivals",
			ClearDB:  true,
		})
		require.NoError(t, err)
		backends["postgres"] = psql
	}

	return backends
}

func meta(sha string, source string, capturedAt time.Time) *SnapshotMetadata {
	return &SnapshotMetadata{
		SHA256:       sha,
		Source:       source,
		CapturedAt:   capturedAt,
		RetrievedAt:  capturedAt.Add(time.Minute),
		StationCount: 3,
	}
}

func TestStorageWriteReadDelete(t *testing.T) {
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			capturedAt := time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC)

			require.NoError(t, s.WriteSnapshot(meta("abc", "https://api.test/", capturedAt), []byte(`{"captured_at": 1}`)))

			body, err := s.ReadSnapshot("abc")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"captured_at": 1}`), body)

			_, err = s.ReadSnapshot("missing")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)

			require.NoError(t, s.DeleteSnapshot("abc"))
			_, err = s.ReadSnapshot("abc")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)

			assert.ErrorIs(t, s.DeleteSnapshot("abc"), ErrSnapshotNotFound)
		})
	}
}

func TestStorageWriteIsUpsert(t *testing.T) {
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			capturedAt := time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC)

			require.NoError(t, s.WriteSnapshot(meta("abc", "https://api.test/", capturedAt), []byte(`one`)))
			require.NoError(t, s.WriteSnapshot(meta("abc", "https://api.other/", capturedAt), []byte(`two`)))

			metas, err := s.ListSnapshots(ListSnapshotsFilter{})
			require.NoError(t, err)
			require.Len(t, metas, 1)
			assert.Equal(t, "https://api.other/", metas[0].Source)

			body, err := s.ReadSnapshot("abc")
			require.NoError(t, err)
			assert.Equal(t, []byte(`two`), body)
		})
	}
}

func TestStorageListSnapshots(t *testing.T) {
	for name, s := range testBackends(t) {
		t.Run(name, func(t *testing.T) {
			day := func(d int) time.Time {
				return time.Date(2024, 3, d, 4, 30, 0, 0, time.UTC)
			}

			require.NoError(t, s.WriteSnapshot(meta("a", "https://api.test/", day(1)), []byte(`a`)))
			require.NoError(t, s.WriteSnapshot(meta("b", "https://api.test/", day(3)), []byte(`b`)))
			require.NoError(t, s.WriteSnapshot(meta("c", "https://api.other/", day(2)), []byte(`c`)))

			// Most recently captured first
			metas, err := s.ListSnapshots(ListSnapshotsFilter{})
			require.NoError(t, err)
			require.Len(t, metas, 3)
			assert.Equal(t, "b", metas[0].SHA256)
			assert.Equal(t, "c", metas[1].SHA256)
			assert.Equal(t, "a", metas[2].SHA256)

			// Filter by source
			metas, err = s.ListSnapshots(ListSnapshotsFilter{Source: "https://api.test/"})
			require.NoError(t, err)
			require.Len(t, metas, 2)
			assert.Equal(t, "b", metas[0].SHA256)
			assert.Equal(t, "a", metas[1].SHA256)

			// Filter by capture time; the bound is inclusive
			metas, err = s.ListSnapshots(ListSnapshotsFilter{CapturedBy: day(2)})
			require.NoError(t, err)
			require.Len(t, metas, 2)
			assert.Equal(t, "c", metas[0].SHA256)
			assert.Equal(t, "a", metas[1].SHA256)

			// Combined filters
			metas, err = s.ListSnapshots(ListSnapshotsFilter{Source: "https://api.test/", CapturedBy: day(2)})
			require.NoError(t, err)
			require.Len(t, metas, 1)
			assert.Equal(t, "a", metas[0].SHA256)
		})
	}
}
