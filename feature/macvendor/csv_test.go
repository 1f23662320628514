package macvendor

import (
	"context"
	"encoding/csv"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichCSV(t *testing.T) {
	svc := newTestService(t, nil, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Routerboard.com"))
	})

	dir := t.TempDir()
	input := filepath.Join(dir, "devices.csv")
	output := filepath.Join(dir, "devices_enriched.csv")

	content := "Name,MAC Address,Vendor\n" +
		"core-switch,dc:2c:6e:0f:12:34,\n" +
		"old-device,00:11:22:33:44:55,Unknown\n" +
		"known-device,f4:92:bf:00:00:01,Ubiquiti\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	stats, err := svc.EnrichCSV(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Unknown)
	assert.Equal(t, 2, stats.Identified)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Routerboard.com", rows[1][2])
	assert.Equal(t, "Routerboard.com", rows[2][2])
	// Rows with a confirmed vendor are left untouched.
	assert.Equal(t, "Ubiquiti", rows[3][2])
}

func TestEnrichCSV_Errors(t *testing.T) {
	svc := newTestService(t, nil, func(w http.ResponseWriter, r *http.Request) {})
	dir := t.TempDir()

	t.Run("Missing Input", func(t *testing.T) {
		_, err := svc.EnrichCSV(context.Background(), filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
		assert.Error(t, err)
	})

	t.Run("Missing Columns", func(t *testing.T) {
		input := filepath.Join(dir, "bad.csv")
		require.NoError(t, os.WriteFile(input, []byte("Name,Address\nx,y\n"), 0o644))

		_, err := svc.EnrichCSV(context.Background(), input, filepath.Join(dir, "out.csv"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAC Address")
	})

	t.Run("Empty File", func(t *testing.T) {
		input := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(input, nil, 0o644))

		_, err := svc.EnrichCSV(context.Background(), input, filepath.Join(dir, "out.csv"))
		assert.Error(t, err)
	})
}
