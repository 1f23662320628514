package macvendor

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Column names expected in the device inventory export.
const (
	columnMAC    = "MAC Address"
	columnVendor = "Vendor"
)

// EnrichStats summarizes one CSV enrichment pass.
type EnrichStats struct {
	Total      int
	Unknown    int
	Identified int
}

// EnrichCSV reads a device inventory CSV, looks up every device whose vendor
// column is empty or Unknown, and writes the updated inventory. A failed
// lookup leaves the row unchanged; it does not abort the pass.
func (s *Service) EnrichCSV(ctx context.Context, inputPath, outputPath string) (EnrichStats, error) {
	var stats EnrichStats

	in, err := os.Open(inputPath)
	if err != nil {
		return stats, fmt.Errorf("failed to open inventory: %w", err)
	}
	defer in.Close()

	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return stats, fmt.Errorf("failed to parse inventory CSV: %w", err)
	}
	if len(rows) == 0 {
		return stats, fmt.Errorf("inventory CSV %s is empty", inputPath)
	}

	header := rows[0]
	macCol, vendorCol := -1, -1
	for i, name := range header {
		switch name {
		case columnMAC:
			macCol = i
		case columnVendor:
			vendorCol = i
		}
	}
	if macCol < 0 || vendorCol < 0 {
		return stats, fmt.Errorf("inventory CSV must carry %q and %q columns", columnMAC, columnVendor)
	}

	for _, row := range rows[1:] {
		stats.Total++
		if len(row) <= macCol || len(row) <= vendorCol {
			continue
		}

		current := row[vendorCol]
		if current != "" && current != VendorUnknown {
			continue
		}
		stats.Unknown++

		vendor, err := s.Lookup(ctx, row[macCol])
		if err != nil {
			s.log.Warn("Vendor lookup failed", zap.String("mac", row[macCol]), zap.Error(err))
			continue
		}

		row[vendorCol] = vendor
		if vendor != VendorUnknown {
			stats.Identified++
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return stats, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		return stats, fmt.Errorf("failed to write updated inventory: %w", err)
	}

	return stats, nil
}
