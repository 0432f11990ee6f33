package datastore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/your-org/strategy-miner/pkg/logger"
)

// LoadCandlesFromCSV reads an entire candle file into memory. The file is
// expected to have a header and the columns:
// time, open, high, low, close, volume
// Malformed rows are skipped with a warning rather than aborting the load.
func LoadCandlesFromCSV(filePath string) (Series, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Read the header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return Series{}, nil // Empty file is okay
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var candles Series
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		if len(record) != 6 {
			logger.Warnf("Skipping record due to invalid number of columns: expected 6, got %d", len(record))
			continue
		}

		t, err := parseTime(record[0])
		if err != nil {
			logger.Warnf("Skipping record due to time parse error: %v", err)
			continue
		}

		fields := make([]float64, 5)
		bad := false
		for i := 0; i < 5; i++ {
			fields[i], err = strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				logger.Warnf("Skipping record due to numeric parse error in column %d: %v", i+1, err)
				bad = true
				break
			}
		}
		if bad {
			continue
		}

		candles = append(candles, Candle{
			Time:   t,
			Open:   fields[0],
			High:   fields[1],
			Low:    fields[2],
			Close:  fields[3],
			Volume: fields[4],
		})
	}

	logger.Infof("Loaded %d candles from %s", len(candles), filePath)
	return candles, nil
}

func parseTime(timeStr string) (time.Time, error) {
	// Exported data uses this layout; RFC3339 is accepted as a fallback.
	const layout = "2006-01-02 15:04:05.999999-07"
	t, err := time.Parse(layout, timeStr)
	if err != nil {
		t, err = time.Parse(time.RFC3339, timeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("could not parse time '%s' with any known format", timeStr)
		}
	}
	return t, nil
}
