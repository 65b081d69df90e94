// Package simulation holds the Monte Carlo kernel that drives scenario
// transition rules across the fixed evaluation horizons.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"futuremirror/internal/scenario"
	"futuremirror/internal/stats"
)

// horizons are the evaluation horizons in months, in reporting order.
var horizons = []int{3, 6, 12}

// ErrNonFiniteResult signals that a trial produced NaN or an infinity. This
// is a server-side fault of the parameter set, never a client error.
var ErrNonFiniteResult = errors.New("simulation produced a non-finite value")

// Engine performs the Monte Carlo projection. It carries no state between
// runs beyond its seed source; a zero-cost value that is safe to share.
type Engine struct {
	seed func() int64
}

// NewEngine creates an Engine seeded from the wall clock. Successive runs use
// fresh pseudorandom streams, so results are intentionally not reproducible.
func NewEngine() *Engine {
	return &Engine{seed: func() int64 { return time.Now().UnixNano() }}
}

// NewEngineWithSeed creates an Engine with a fixed base seed, for tests.
func NewEngineWithSeed(seed int64) *Engine {
	return &Engine{seed: func() int64 { return seed }}
}

// Run executes the scenario's transition rule for every horizon and reduces
// each horizon's terminal values to percentile statistics. Horizons are
// independent and run concurrently, each on its own random stream.
func (e *Engine) Run(p scenario.Params) ([]scenario.HorizonResult, error) {
	iterations := p.Config().Iterations
	if iterations < 1 {
		iterations = 1
	}

	base := e.seed()
	results := make([]scenario.HorizonResult, len(horizons))

	var grp errgroup.Group
	for idx, h := range horizons {
		grp.Go(func() error {
			// Offset by a large odd constant so horizon streams never overlap.
			r, err := e.runHorizon(p, h, iterations, base+int64(uint64(idx)*0x9E3779B97F4A7C15))
			if err != nil {
				return err
			}
			results[idx] = r
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (e *Engine) runHorizon(p scenario.Params, horizon, iterations int, seed int64) (scenario.HorizonResult, error) {
	g := stats.NewSamplerWithSeed(seed)

	// The inner loop runs iterations*horizon times; keep it allocation-free
	// beyond the pre-sized terminal slice.
	terminals := make([]float64, iterations)
	ruined := 0

	for i := 0; i < iterations; i++ {
		state := p.InitialState()
		ranOut := false

		for m := 1; m <= horizon; m++ {
			var hit bool
			state, hit = p.Step(m, state, g)
			if hit {
				// Ruin is sticky: clamp to zero and stop accumulating.
				ranOut = true
				ruined++
				break
			}
		}

		if ranOut {
			terminals[i] = 0
		} else {
			if math.IsNaN(state) || math.IsInf(state, 0) {
				return scenario.HorizonResult{}, fmt.Errorf("%w: horizon %d, trial %d", ErrNonFiniteResult, horizon, i)
			}
			terminals[i] = state
		}
	}

	sort.Float64s(terminals)

	median, _ := stats.Quantile(terminals, 0.5)
	p10, _ := stats.Quantile(terminals, 0.1)
	p90, _ := stats.Quantile(terminals, 0.9)
	ruinRate := float64(ruined) / float64(iterations)

	r := scenario.HorizonResult{HorizonMonths: horizon}
	p.Summarize(&r, median, p10, p90, ruinRate)
	return r, nil
}
