package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

const (
	defaultPrefix = "exports"
	contentType   = "application/json"
)

// Service writes and reads per-user data exports.
type Service interface {
	Export(ctx context.Context, userID int64) (Receipt, error)
	// Fetch returns the stored document; the caller closes the reader.
	Fetch(ctx context.Context, userID int64, key string) (io.ReadCloser, error)
}

type service struct {
	prefix  string
	source  SnapshotSource
	storage ObjectStorage
	logger  *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, source SnapshotSource, storage ObjectStorage, logger *slog.Logger) Service {
	prefix := strings.Trim(strings.TrimSpace(cfg.Prefix), "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &service{
		prefix:  prefix,
		source:  source,
		storage: storage,
		logger:  logger.With("component", "export.service"),
	}
}

func (s *service) Export(ctx context.Context, userID int64) (Receipt, error) {
	snapshot, err := s.source.Snapshot(ctx, userID)
	if err != nil {
		return Receipt{}, err
	}
	doc := Document{
		Version:     FormatVersion,
		ExportedAt:  snapshot.Now.UTC(),
		Goals:       snapshot.Goals,
		Moods:       nonNil(snapshot.Moods),
		Activities:  nonNil(snapshot.Activities),
		Exercises:   nonNil(snapshot.Exercises),
		Meditations: nonNil(snapshot.Meditations),
		Sleep:       nonNil(snapshot.Sleep),
		Journals:    nonNil(snapshot.Journals),
		Dashboard:   metrics.BuildDashboard(snapshot),
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Receipt{}, apperrors.Wrap("export_error", "failed to encode export", err)
	}

	key := path.Join(s.userPrefix(userID), uuid.NewString()+".json")
	obj, err := s.storage.Put(ctx, key, payload, contentType)
	if err != nil {
		return Receipt{}, apperrors.Wrap("storage_error", "failed to store export", err)
	}
	s.logger.Info("export stored", "userId", userID, "key", obj.Key, "size", obj.Size)
	return Receipt{Key: obj.Key, Size: obj.Size, CreatedAt: doc.ExportedAt}, nil
}

func (s *service) Fetch(ctx context.Context, userID int64, key string) (io.ReadCloser, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if !s.owns(userID, key) {
		return nil, apperrors.Wrap("not_found", "export not found", nil)
	}
	body, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, apperrors.Wrap("not_found", "export not found", err)
		}
		return nil, apperrors.Wrap("storage_error", "failed to read export", err)
	}
	return body, nil
}

func (s *service) userPrefix(userID int64) string {
	return fmt.Sprintf("%s/%d", s.prefix, userID)
}

// owns accepts only <prefix>/<user>/<name>.json with no traversal.
func (s *service) owns(userID int64, key string) bool {
	if key == "" || path.Clean(key) != key || strings.Contains(key, "..") {
		return false
	}
	dir, file := path.Split(key)
	return dir == s.userPrefix(userID)+"/" && strings.HasSuffix(file, ".json") && len(file) > len(".json")
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
