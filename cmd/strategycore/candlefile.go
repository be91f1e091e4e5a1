package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/raykavin/strategycore/pkg/core"
)

// defaultHeaderMap is the time/open/close/low/high/volume column order
// assumed for a headerless file.
var defaultHeaderMap = map[string]int{
	"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
}

// loadCandlesCSV reads a candle series from a CSV file. The first row is
// treated as a header naming columns (in any order) unless its first
// field parses as an integer, in which case defaultHeaderMap applies.
func loadCandlesCSV(path string) ([]core.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candle file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read candle file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("candle file %s is empty", path)
	}

	headerMap := defaultHeaderMap
	if _, err := strconv.Atoi(rows[0][0]); err != nil {
		headerMap = make(map[string]int, len(rows[0]))
		for i, name := range rows[0] {
			headerMap[name] = i
		}
		rows = rows[1:]
	}

	candles := make([]core.Candle, 0, len(rows))
	for i, row := range rows {
		candle, err := parseCandleRow(row, headerMap)
		if err != nil {
			return nil, fmt.Errorf("candle file %s, row %d: %w", path, i, err)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func parseCandleRow(row []string, headerMap map[string]int) (core.Candle, error) {
	field := func(name string) (float64, error) {
		idx, ok := headerMap[name]
		if !ok || idx >= len(row) {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return strconv.ParseFloat(row[idx], 64)
	}

	var candle core.Candle
	var err error
	if candle.Open, err = field("open"); err != nil {
		return core.Candle{}, err
	}
	if candle.High, err = field("high"); err != nil {
		return core.Candle{}, err
	}
	if candle.Low, err = field("low"); err != nil {
		return core.Candle{}, err
	}
	if candle.Close, err = field("close"); err != nil {
		return core.Candle{}, err
	}
	if candle.Volume, err = field("volume"); err != nil {
		return core.Candle{}, err
	}
	return candle, nil
}
