package cmd

import (
	"context"
	"fmt"

	"netbox-sync/core/config"
	"netbox-sync/core/logger"
	"netbox-sync/core/storage"
	"netbox-sync/feature/configsync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDevicesFile string
	syncOnlyDevice  string
	syncOutput      string
	syncNoCommit    bool
)

// configsyncCmd archives the running configuration of managed devices.
var configsyncCmd = &cobra.Command{
	Use:   "configsync",
	Short: "Pull and archive device configurations",
	Long: `Configsync connects to every managed device, pulls its running
configuration over the management API, and writes a JSON snapshot plus a
human-readable summary per device. Changed snapshots are committed to git,
and uploaded to object storage when a bucket is configured.

Examples:
  netbox-sync configsync
  netbox-sync configsync --device core-switch --no-commit`,
	RunE: runConfigsync,
}

func init() {
	configsyncCmd.Flags().StringVar(&syncDevicesFile, "devices", "", "Devices JSON file (defaults to configured path)")
	configsyncCmd.Flags().StringVar(&syncOnlyDevice, "device", "", "Sync only the named device")
	configsyncCmd.Flags().StringVar(&syncOutput, "output", "", "Snapshot directory (defaults to configured path)")
	configsyncCmd.Flags().BoolVar(&syncNoCommit, "no-commit", false, "Skip committing snapshot changes to git")
	RootCmd.AddCommand(configsyncCmd)
}

func runConfigsync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l)

	syncCfg := cfg.Sync
	if syncDevicesFile != "" {
		syncCfg.DevicesFile = syncDevicesFile
	}
	if syncOutput != "" {
		syncCfg.Output = syncOutput
	}
	if syncNoCommit {
		syncCfg.Commit = false
	}

	devices, err := configsync.LoadDevices(syncCfg.DevicesFile)
	if err != nil {
		return err
	}

	// Snapshot uploads are opt-in; without a bucket the archive stays local.
	var store storage.Client
	if cfg.Storage.Bucket != "" {
		store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := configsync.NewService(syncCfg, store, cfg.Storage.Bucket, l)
	results := svc.SyncAll(ctx, devices, syncOnlyDevice)
	if len(results) == 0 {
		return fmt.Errorf("no devices matched")
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		l.Info("Device synced",
			zap.String("device", r.Device),
			zap.String("snapshot", r.JSONPath),
			zap.Bool("uploaded", r.Uploaded),
		)
	}

	if failed == len(results) {
		return fmt.Errorf("all %d devices failed to sync", failed)
	}
	if failed > 0 {
		l.Warn("Some devices failed to sync", zap.Int("failed", failed), zap.Int("total", len(results)))
	}
	return nil
}
