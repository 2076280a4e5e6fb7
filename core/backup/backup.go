package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"pharmacy-manager/core/storage"
	"pharmacy-manager/core/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// prefix is the object key prefix all snapshots live under.
const prefix = "snapshots/"

// Service exports the store's collections as JSON snapshot objects.
type Service struct {
	store  *store.Store
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new backup service.
func NewService(st *store.Store, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{store: st, client: client, bucket: bucket, logger: logger}
}

// Run uploads one JSON object per collection under a timestamped snapshot
// prefix, creating the bucket if needed. It returns the number of uploaded
// objects and the snapshot name.
func (s *Service) Run(ctx context.Context) (int, string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return 0, "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return 0, "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	snapshot := time.Now().UTC().Format("20060102T150405Z")
	uploaded := 0
	for _, name := range s.store.Collections() {
		records, err := s.store.Dump(name)
		if err != nil {
			return uploaded, snapshot, err
		}
		payload, err := json.Marshal(records)
		if err != nil {
			return uploaded, snapshot, fmt.Errorf("failed to encode collection %q: %w", name, err)
		}

		objectName := path.Join(prefix+snapshot, name+".json")
		_, err = s.client.PutObject(ctx, s.bucket, objectName,
			bytes.NewReader(payload), int64(len(payload)),
			minio.PutObjectOptions{ContentType: "application/json"})
		if err != nil {
			return uploaded, snapshot, fmt.Errorf("failed to upload %q: %w", objectName, err)
		}
		uploaded++

		s.logger.Debug("collection uploaded",
			zap.String("collection", name),
			zap.String("object", objectName),
			zap.Int("bytes", len(payload)))
	}

	s.logger.Info("snapshot complete",
		zap.String("snapshot", snapshot),
		zap.Int("objects", uploaded))
	return uploaded, snapshot, nil
}

// Prune removes every snapshot object except those belonging to the keep most
// recent snapshots. Snapshot names sort chronologically, so a pass over the
// listed objects is enough.
func (s *Service) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1")
	}

	names := map[string]struct{}{}
	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		objects = append(objects, obj)
		if snap := snapshotOf(obj.Key); snap != "" {
			names[snap] = struct{}{}
		}
	}
	if len(names) <= keep {
		return 0, nil
	}

	keepSet := newestSnapshots(names, keep)
	removed := 0
	for _, obj := range objects {
		snap := snapshotOf(obj.Key)
		if _, ok := keepSet[snap]; ok || snap == "" {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %q: %w", obj.Key, err)
		}
		removed++
	}

	s.logger.Info("snapshots pruned", zap.Int("removed", removed), zap.Int("kept", keep))
	return removed, nil
}

// snapshotOf extracts the snapshot name from an object key, "" if malformed.
func snapshotOf(key string) string {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return ""
	}
	dir := path.Dir(rest)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// newestSnapshots returns the keep lexically-largest snapshot names.
// Timestamped names sort chronologically.
func newestSnapshots(names map[string]struct{}, keep int) map[string]struct{} {
	all := make([]string, 0, len(names))
	for name := range names {
		all = append(all, name)
	}
	sort.Strings(all)
	if keep < len(all) {
		all = all[len(all)-keep:]
	}
	out := make(map[string]struct{}, len(all))
	for _, name := range all {
		out[name] = struct{}{}
	}
	return out
}
