// Package archive persists fetched daily bars to disk in CSV, JSON or
// Parquet form.
package archive

import (
	"fmt"
	"strings"
	"time"

	"stockfetch/pkg/indicators"
)

// Record is the flat on-disk form of one daily bar.
type Record struct {
	Symbol string  `json:"symbol" parquet:"symbol"`
	Date   string  `json:"date" parquet:"date"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume float64 `json:"volume" parquet:"volume"`
}

// FromBars flattens bars into records carrying the symbol on every row.
func FromBars(symbol string, bars []indicators.Bar) []Record {
	records := make([]Record, len(bars))
	for i, b := range bars {
		records[i] = Record{
			Symbol: symbol,
			Date:   b.Date.Format(time.DateOnly),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return records
}

// Saver writes one batch of records to path. Implementations append their
// own extension via Extension.
type Saver interface {
	Save(records []Record, path string) error
	Extension() string
}

// NewSaver returns the Saver for format ("csv", "json" or "parquet"), or nil
// when the format is unknown.
func NewSaver(format string) Saver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// MustSaver is NewSaver but panics on an unknown format.
func MustSaver(format string) Saver {
	s := NewSaver(format)
	if s == nil {
		panic(fmt.Sprintf("archive: unsupported format %q (use: csv, json, parquet)", format))
	}
	return s
}
