package export

import (
	"strings"
	"testing"

	"github.com/brakelab/brakelab/internal/storage"
)

func TestTraceSVG(t *testing.T) {
	meta := &storage.RunMetadata{Speed: "medium", Surface: "dry", BrakingDistance: 38.6}
	trace := []storage.TraceRow{
		{Time: 0, Position: -60, Velocity: 15, Phase: "cruising"},
		{Time: 14, Position: 150, Velocity: 15, Phase: "braking"},
		{Time: 36, Position: 246, Velocity: 0, Phase: "stopped"},
	}

	svg := TraceSVG(meta, trace)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<polyline") {
		t.Error("missing velocity polyline")
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("missing brake-line marker")
	}
	if !strings.Contains(svg, "#00ff88") {
		t.Error("safe run should use the safe stroke color")
	}

	meta.Crashed = true
	if !strings.Contains(TraceSVG(meta, trace), "#ff4444") {
		t.Error("crashed run should use the crash stroke color")
	}
}

func TestTraceSVGTooShort(t *testing.T) {
	if TraceSVG(nil, []storage.TraceRow{{Time: 0}}) != "" {
		t.Error("expected empty output for a single-sample trace")
	}
}
