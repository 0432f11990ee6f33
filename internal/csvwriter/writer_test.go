package csvwriter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/engine"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriterWritesHeaderAndRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(path, []string{"a", "b"}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, w.Write([]string{"1", "2"}))
	require.NoError(t, w.Write([]string{"3", "4"}))
	require.NoError(t, w.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestWriterRejectsMismatchedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(path, []string{"a", "b"}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Write([]string{"only one"}))
}

func TestExportGenerationStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	stats := []engine.GenerationStats{
		{Generation: 0, Best: 1.5, Mean: 0.5, Worst: -2, InvalidCount: 3, FailedCount: 1, BestExpression: "greater_than(sma(close, 20), close)"},
		{Generation: 1, Best: 2, Mean: 1, Worst: -1},
	}

	require.NoError(t, ExportGenerationStats(path, stats, zap.NewNop()))

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "generation", rows[0][0])
	assert.Equal(t, []string{"0", "1.5", "0.5", "-2", "3", "1", "greater_than(sma(close, 20), close)"}, rows[1])
	assert.Equal(t, "1", rows[2][0])
}
