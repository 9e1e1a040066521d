package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/brakelab/brakelab/internal/engine"
	"github.com/brakelab/brakelab/internal/scenario"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Trace: []engine.TraceSample{
			{Time: 0, Position: -60, Velocity: 15, Phase: engine.PhaseCruising},
			{Time: 1.0 / 60.0, Position: -59.75, Velocity: 15, Phase: engine.PhaseCruising},
			{Time: 2.0 / 60.0, Position: -59.5, Velocity: 15, Phase: engine.PhaseBraking},
		},
		Outcome: engine.Outcome{
			Distance: 38.6,
			Crashed:  false,
			Config: scenario.RunConfiguration{
				SpeedClass:       scenario.SpeedMedium,
				Surface:          scenario.SurfaceDry,
				ObstacleDistance: 400,
			},
		},
		Ticks:   3,
		Metrics: map[string]float64{"peak_decel": 2.25},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Speed != "medium" || meta.Surface != "dry" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.BrakingDistance != 38.6 || meta.Crashed {
		t.Errorf("unexpected outcome fields: %+v", meta)
	}
	if meta.Metrics["peak_decel"] != 2.25 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}
	if len(trace) != 3 {
		t.Fatalf("expected 3 trace rows, got %d", len(trace))
	}
	if trace[2].Phase != "braking" {
		t.Errorf("expected braking phase, got %q", trace[2].Phase)
	}
	if trace[0].Position != -60 {
		t.Errorf("expected position -60, got %f", trace[0].Position)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(sampleResult()); err != nil {
		t.Fatalf("save: %v", err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/nope")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestExportCSV(t *testing.T) {
	trace := []TraceRow{
		{Time: 0, Position: -60, Velocity: 15, Phase: "cruising"},
		{Time: 0.5, Position: -52.5, Velocity: 15, Phase: "braking"},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, trace); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,position,velocity,phase" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], "braking") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, trace); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"braking_distance_m": 38.6`) {
		t.Errorf("metadata missing from export: %s", out)
	}
	if !strings.Contains(out, `"trace"`) {
		t.Errorf("trace missing from export: %s", out)
	}
}

func TestLoadMissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("no_such_run"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := s.LoadTrace("no_such_run"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}
