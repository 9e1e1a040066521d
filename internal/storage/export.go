package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	RunMetadata
	Trace []TraceRow `json:"trace"`
}

// ExportJSON writes a saved run's metadata and trace as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, trace []TraceRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Trace: trace})
}

// ExportCSV writes a saved run's trace as CSV.
func ExportCSV(w io.Writer, trace []TraceRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "position", "velocity", "phase"}); err != nil {
		return err
	}
	for _, row := range trace {
		record := []string{
			strconv.FormatFloat(row.Time, 'f', 6, 64),
			strconv.FormatFloat(row.Position, 'f', 6, 64),
			strconv.FormatFloat(row.Velocity, 'f', 6, 64),
			row.Phase,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return cw.Error()
}
