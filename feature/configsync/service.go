package configsync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"netbox-sync/core/storage"
)

// Result records the outcome of syncing a single device.
type Result struct {
	Device   string
	Err      error
	JSONPath string
	TextPath string
	Uploaded bool
}

// Service pulls device configurations and archives them as snapshots.
type Service struct {
	cfg    Config
	store  storage.Client
	bucket string
	log    *zap.Logger
	dial   dialFunc
}

// NewService creates a config sync service. The storage client may be nil,
// in which case snapshots are kept on disk only.
func NewService(cfg Config, store storage.Client, bucket string, log *zap.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  store,
		bucket: bucket,
		log:    log,
		dial:   dialMikrotik,
	}
}

// SyncAll pulls and archives the configuration of every device. When only is
// non-empty, devices with other names are skipped. A device failure does not
// abort the run; it is reported in that device's Result.
func (s *Service) SyncAll(ctx context.Context, devices []Device, only string) []Result {
	var results []Result
	for _, d := range devices {
		if only != "" && d.Name != only {
			continue
		}
		results = append(results, s.syncDevice(ctx, d))
	}

	if s.cfg.Commit {
		committed, err := commitSnapshots(ctx, s.cfg.Output)
		switch {
		case err != nil:
			s.log.Warn("Failed to commit snapshots", zap.Error(err))
		case committed:
			s.log.Info("Committed snapshot changes", zap.String("dir", s.cfg.Output))
		default:
			s.log.Info("No snapshot changes to commit")
		}
	}

	return results
}

func (s *Service) syncDevice(ctx context.Context, d Device) Result {
	res := Result{Device: d.Name}
	log := s.log.With(zap.String("device", d.Name), zap.String("host", d.Host))

	if d.Type != "" && d.Type != "mikrotik" {
		res.Err = fmt.Errorf("unsupported device type %q", d.Type)
		return res
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	conn, err := s.dial(d, timeout)
	if err != nil {
		res.Err = err
		log.Warn("Failed to connect to device", zap.Error(err))
		return res
	}
	defer conn.Close()

	cfg, err := pullMikrotik(conn)
	if err != nil {
		res.Err = err
		log.Warn("Failed to pull configuration", zap.Error(err))
		return res
	}

	jsonPath, txtPath, err := writeSnapshot(d.Name, cfg, s.cfg.Output)
	if err != nil {
		res.Err = err
		return res
	}
	res.JSONPath = jsonPath
	res.TextPath = txtPath
	log.Info("Saved configuration snapshot", zap.String("path", jsonPath))

	if s.store != nil && s.bucket != "" {
		if err := s.upload(ctx, d.Name, jsonPath); err != nil {
			// Keep the local snapshot even when the archive upload fails.
			log.Warn("Failed to upload snapshot", zap.Error(err))
		} else {
			res.Uploaded = true
		}
	}

	return res
}

func (s *Service) upload(ctx context.Context, deviceName, jsonPath string) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return err
	}

	object := path.Join(deviceName, time.Now().Format("2006-01-02")+".json")
	_, err = s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}
