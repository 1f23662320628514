package cmd

import (
	"context"
	"fmt"

	"netbox-sync/core/config"
	"netbox-sync/core/database"
	"netbox-sync/core/logger"
	"netbox-sync/feature/macvendor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	macvendorInput  string
	macvendorOutput string
)

// macvendorCmd resolves MAC vendors, one-off or for a whole CSV.
var macvendorCmd = &cobra.Command{
	Use:   "macvendor [mac]",
	Short: "Look up the vendor behind MAC addresses",
	Long: `Macvendor resolves MAC addresses to hardware vendors, using a local
cache backed by the configured database and the macvendors.com API.

With a single MAC address argument, prints its vendor. With --input, reads
a device inventory CSV and fills in the Vendor column for every row whose
vendor is empty or Unknown.

Examples:
  netbox-sync macvendor dc:2c:6e:0f:12:34
  netbox-sync macvendor --input devices.csv --output devices_enriched.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMacvendor,
}

func init() {
	macvendorCmd.Flags().StringVar(&macvendorInput, "input", "", "Device inventory CSV to enrich")
	macvendorCmd.Flags().StringVar(&macvendorOutput, "output", "", "Where to write the enriched CSV (defaults to --input)")
	RootCmd.AddCommand(macvendorCmd)
}

func runMacvendor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 && macvendorInput == "" {
		return fmt.Errorf("pass a MAC address or --input CSV file")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	cache, err := macvendor.NewCache(db)
	if err != nil {
		return fmt.Errorf("failed to prepare vendor cache: %w", err)
	}

	svc := macvendor.NewService(cfg.Vendor, cache, l)

	if len(args) == 1 {
		vendor, err := svc.Lookup(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", args[0], vendor)
		return nil
	}

	output := macvendorOutput
	if output == "" {
		output = macvendorInput
	}

	stats, err := svc.EnrichCSV(ctx, macvendorInput, output)
	if err != nil {
		return err
	}

	l.Info("Inventory enriched",
		zap.String("output", output),
		zap.Int("devices", stats.Total),
		zap.Int("identified", stats.Identified),
		zap.Int("unknown", stats.Unknown),
	)
	return nil
}
