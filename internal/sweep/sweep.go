// Package sweep runs the full speed × surface scenario matrix. Each run
// is single-threaded and deterministic; runs are independent, so the
// matrix executes them concurrently.
package sweep

import (
	"context"
	"sync"

	"github.com/brakelab/brakelab/internal/engine"
	"github.com/brakelab/brakelab/internal/history"
	"github.com/brakelab/brakelab/internal/scenario"
)

var (
	Speeds   = []scenario.SpeedClass{scenario.SpeedLow, scenario.SpeedMedium, scenario.SpeedHigh}
	Surfaces = []scenario.Surface{scenario.SurfaceDry, scenario.SurfaceWet, scenario.SurfaceIcy}
)

// Cell is one matrix entry.
type Cell struct {
	Config scenario.RunConfiguration
	Result *engine.Result
	Err    error
}

// Run executes every speed/surface combination at the given obstacle
// distance and returns cells in speed-major, surface-minor order.
func Run(ctx context.Context, obstacleDistance float64, maxTicks int) []Cell {
	cells := make([]Cell, len(Speeds)*len(Surfaces))

	var wg sync.WaitGroup
	for i, speed := range Speeds {
		for j, surface := range Surfaces {
			wg.Add(1)
			go func(idx int, cfg scenario.RunConfiguration) {
				defer wg.Done()
				eng := engine.New(cfg, history.NewLog())
				result, err := eng.Run(ctx, maxTicks)
				cells[idx] = Cell{Config: cfg, Result: result, Err: err}
			}(i*len(Surfaces)+j, scenario.RunConfiguration{
				SpeedClass:       speed,
				Surface:          surface,
				ObstacleDistance: obstacleDistance,
			})
		}
	}
	wg.Wait()

	return cells
}

// BySpeed returns the cells for one speed class, in surface order.
func BySpeed(cells []Cell, speed scenario.SpeedClass) []Cell {
	out := make([]Cell, 0, len(Surfaces))
	for _, c := range cells {
		if c.Config.SpeedClass == speed {
			out = append(out, c)
		}
	}
	return out
}
