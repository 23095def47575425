package export

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
)

// Config holds runtime knobs for exports.
type Config struct {
	// Prefix is the top-level key segment; defaults to "exports".
	Prefix string
}

// FormatVersion is bumped when the Document layout changes.
const FormatVersion = 1

// ErrObjectNotFound is returned by storage when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage abstracts blob storage (R2/S3/MinIO/memory).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// SnapshotSource loads the collections a dashboard is computed from.
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID int64) (metrics.Snapshot, error)
}

// Receipt describes a stored export.
type Receipt struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is the JSON layout of an export.
type Document struct {
	Version     int                       `json:"version"`
	ExportedAt  time.Time                 `json:"exportedAt"`
	Goals       metrics.Goals             `json:"goals"`
	Moods       []metrics.MoodEntry       `json:"moods"`
	Activities  []metrics.ActivityEntry   `json:"activities"`
	Exercises   []metrics.ExerciseEntry   `json:"exercises"`
	Meditations []metrics.MeditationEntry `json:"meditations"`
	Sleep       []metrics.SleepEntry      `json:"sleep"`
	Journals    []metrics.JournalEntry    `json:"journals"`
	Dashboard   metrics.Dashboard         `json:"dashboard"`
}
