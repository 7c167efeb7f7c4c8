// Package paretune is a two-stage constrained multi-objective optimizer for
// AI text-processing pipeline configurations.
//
// Paretune searches a 14-dimensional decision space (scoring weights,
// strictness, compression, sampling temperature, reasoning depth, context
// strategy and related knobs) for configurations that trade off eight
// objectives at once: task success, output quality, coverage and diversity
// are maximized while cost, latency, calibration error and regression rate
// are minimized. No scalarization is applied; the result is a Pareto front of
// non-dominated, constraint-feasible candidates.
//
// Key Components:
//
//   - core: The data model. ObjectiveVector with strict Pareto dominance,
//     the composed 5D/14D DecisionVariables records with a flat numeric
//     encoding, and the black-box Evaluator contract.
//
//   - constraints: Feasibility checking across four independent groups:
//     immutable safety bounds, anti-gaming guards, hard quality gates and
//     regression checks against a caller-supplied baseline. Hard violations
//     make a candidate infeasible; soft violations only warn.
//
//   - optimizers: The search itself:
//     * Explorer: deterministic coarse grid sweep of the 5D base space
//     * Refiner: NSGA-II-style generational refinement of the full 14D
//       space with non-dominated sorting, crowding distance, tournament
//       selection and hypervolume-based convergence detection
//     * Mode distillation: the final front condensed into five named
//       presets (speed, balanced, quality, research, audit)
//
//   - logging, errors: run-scoped structured logging and coded errors shared
//     by all of the above.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/paretune/paretune/pkg/core"
//	    "github.com/paretune/paretune/pkg/optimizers"
//	)
//
//	func main() {
//	    evaluator := core.EvaluatorFunc(func(ctx context.Context, vars core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
//	        // Run the pipeline under this configuration and measure it.
//	        return benchmark(ctx, vars)
//	    })
//
//	    opt, err := optimizers.New(optimizers.DefaultConfig(), evaluator)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    result := opt.Optimize(context.Background())
//	    if !result.Success {
//	        fmt.Println("optimization failed:", result.Error)
//	        return
//	    }
//	    for _, c := range result.ParetoFront {
//	        fmt.Printf("%.3f success at cost %.1f\n", c.Objectives.TaskSuccess, c.Objectives.Cost)
//	    }
//	    fmt.Println("balanced preset:", result.Modes["balanced"].Variables)
//	}
//
// Optimize never panics and never returns an error: failures inside the run
// are caught at the boundary and reported on the result. An empty Pareto
// front with a nil BestCandidate is a valid outcome when nothing feasible
// exists.
package paretune
