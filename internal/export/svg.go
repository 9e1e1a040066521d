// Package export renders saved run traces as standalone SVG charts.
package export

import (
	"fmt"
	"strings"

	"github.com/brakelab/brakelab/internal/storage"
)

const (
	chartWidth  = 800
	chartHeight = 300
	margin      = 40
)

// TraceSVG renders the velocity-vs-time curve of a run, with the
// brake-line crossing marked, as a self-contained SVG document.
func TraceSVG(meta *storage.RunMetadata, trace []storage.TraceRow) string {
	if len(trace) < 2 {
		return ""
	}

	maxT := trace[len(trace)-1].Time
	maxV := trace[0].Velocity
	for _, row := range trace {
		if row.Velocity > maxV {
			maxV = row.Velocity
		}
	}
	if maxT <= 0 {
		maxT = 1
	}
	if maxV <= 0 {
		maxV = 1
	}

	plotW := float64(chartWidth - 2*margin)
	plotH := float64(chartHeight - 2*margin)
	toX := func(t float64) float64 { return margin + plotW*t/maxT }
	toY := func(v float64) float64 { return margin + plotH*(1-v/maxV) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, chartWidth, chartHeight, chartWidth, chartHeight))

	// Mark the brake-line crossing.
	for _, row := range trace {
		if row.Phase == "braking" {
			x := toX(row.Time)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#ffcc00" stroke-dasharray="4 4"/>
`, x, margin, x, chartHeight-margin))
			break
		}
	}

	stroke := "#00ff88"
	if meta != nil && meta.Crashed {
		stroke = "#ff4444"
	}

	sb.WriteString(`<polyline fill="none" stroke="` + stroke + `" stroke-width="2" points="`)
	for i, row := range trace {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(row.Time), toY(row.Velocity)))
	}
	sb.WriteString("\"/>\n")

	if meta != nil {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="#cccccc" font-family="monospace" font-size="12">%s / %s - %.1f m</text>
`, margin, margin-10, meta.Speed, meta.Surface, meta.BrakingDistance))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
