package cmd

import (
	"context"
	"fmt"

	"netbox-sync/core/config"
	"netbox-sync/core/logger"
	"netbox-sync/core/netbox"
	"netbox-sync/core/reconcile"
	"netbox-sync/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var inventoryFile string

// importCmd pushes the declarative inventory into NetBox.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the network inventory into NetBox",
	Long: `Import reads a JSON inventory of sites, devices, VLANs and addressing
and creates every entry that does not already exist in NetBox. Existing
entries are matched by natural key and reused, so repeated runs are safe.

A failed entry never aborts the run; it is reported and skipped, together
with everything that depends on it.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&inventoryFile, "inventory", "i", "inventory.json", "Path to the inventory JSON file")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
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

	client := netbox.NewClient(cfg.Netbox, l)

	// Probe the API before touching anything so a bad URL or token fails
	// the run up front instead of failing every resource.
	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("netbox is unreachable at %s: %w", cfg.Netbox.URL, err)
	}
	l.Info("Connected to NetBox",
		zap.String("url", cfg.Netbox.URL),
		zap.String("version", status.Version),
	)

	inv, err := inventory.Load(inventoryFile)
	if err != nil {
		return err
	}
	resources := inv.DesiredResources()
	l.Info("Loaded inventory",
		zap.String("file", inventoryFile),
		zap.Int("resources", len(resources)),
	)

	driver := reconcile.NewDriver(client, l)
	results := driver.Run(ctx, resources)

	for _, r := range results {
		switch r.Status {
		case reconcile.StatusCreated:
			l.Info("Created",
				zap.String("kind", string(r.Kind)),
				zap.String("key", string(r.Key)),
				zap.Int("id", r.Handle.ID),
			)
		case reconcile.StatusReused:
			l.Info("Exists",
				zap.String("kind", string(r.Kind)),
				zap.String("key", string(r.Key)),
				zap.Int("id", r.Handle.ID),
			)
		case reconcile.StatusFailed:
			l.Warn("Failed",
				zap.String("kind", string(r.Kind)),
				zap.String("key", string(r.Key)),
				zap.String("reason", r.Reason),
			)
		}
	}

	summary := reconcile.Summarize(results)
	l.Info("Import complete",
		zap.Int("created", summary.Created),
		zap.Int("reused", summary.Reused),
		zap.Int("failed", summary.Failed),
	)

	// Individual rejections are data quality issues the operator fixes in
	// the inventory; only broken prerequisite chains fail the command.
	if summary.MissingPrereq > 0 {
		return fmt.Errorf("%d resources skipped due to missing prerequisites", summary.MissingPrereq)
	}
	return nil
}
