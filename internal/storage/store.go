// Package storage persists finished runs under a data directory: one
// directory per run holding metadata.json and trace.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brakelab/brakelab/internal/engine"
)

// ErrRunNotFound is returned when a run id has no directory under the
// data dir.
var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID               string             `json:"id"`
	Timestamp        time.Time          `json:"timestamp"`
	Speed            string             `json:"speed"`
	Surface          string             `json:"surface"`
	ObstacleDistance float64            `json:"obstacle_distance"`
	Crashed          bool               `json:"crashed"`
	BrakingDistance  float64            `json:"braking_distance_m"`
	Ticks            int                `json:"ticks"`
	Metrics          map[string]float64 `json:"metrics,omitempty"`
}

func (s *Store) Save(result *engine.Result) (string, error) {
	cfg := result.Outcome.Config
	runID := fmt.Sprintf("%s_%s_%d", cfg.SpeedClass, cfg.Surface, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Timestamp:        time.Now(),
		Speed:            string(cfg.SpeedClass),
		Surface:          string(cfg.Surface),
		ObstacleDistance: cfg.ObstacleDistance,
		Crashed:          result.Outcome.Crashed,
		BrakingDistance:  result.Outcome.Distance,
		Ticks:            result.Ticks,
		Metrics:          result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "phase"}); err != nil {
		return "", err
	}
	for _, sample := range result.Trace {
		row := []string{
			strconv.FormatFloat(sample.Time, 'f', 6, 64),
			strconv.FormatFloat(sample.Position, 'f', 6, 64),
			strconv.FormatFloat(sample.Velocity, 'f', 6, 64),
			sample.Phase.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads the per-tick samples of a saved run. The phase column
// is returned as recorded; unknown values are kept verbatim.
func (s *Store) LoadTrace(runID string) ([]TraceRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []TraceRow{}, nil
	}

	rows := make([]TraceRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		pos, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		vel, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		rows = append(rows, TraceRow{Time: t, Position: pos, Velocity: vel, Phase: record[3]})
	}

	return rows, nil
}

type TraceRow struct {
	Time     float64
	Position float64
	Velocity float64
	Phase    string
}
