package optimizers

import (
	"context"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/paretune/paretune/pkg/constraints"
	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/logging"
	"github.com/paretune/paretune/pkg/utils"
)

// pipeline runs the evaluate-then-constraint-check step shared by both
// stages. Candidates within a batch are evaluated concurrently, but results
// are written by index so ranking always sees the original candidate order —
// ordering affects tie-breaks in non-dominated sorting.
type pipeline struct {
	evaluator   core.Evaluator
	checker     *constraints.Checker
	concurrency int
	evaluations atomic.Int64
}

// evaluate turns a batch of decision-variable settings into evaluated,
// constraint-checked candidates. An evaluator error does not abort the run:
// the candidate is marked infeasible with the error recorded, preserving
// partial progress.
func (p *pipeline) evaluate(ctx context.Context, batch []core.DecisionVariables, generation int) []*Candidate {
	logger := logging.GetLogger()
	results := make([]*Candidate, len(batch))

	workers := pool.New().WithMaxGoroutines(p.concurrency)
	for i := range batch {
		i := i
		workers.Go(func() {
			candidate := newCandidate(batch[i], generation)
			p.evaluations.Add(1)

			if err := ctx.Err(); err != nil {
				candidate.Feasible = false
				candidate.EvalError = err.Error()
				results[i] = candidate
				return
			}

			objectives, quality, err := p.evaluator.Evaluate(ctx, batch[i])
			if err != nil {
				logger.Debug(ctx, "evaluation failed for candidate %s: %v", candidate.ID, err)
				candidate.Feasible = false
				candidate.EvalError = err.Error()
				results[i] = candidate
				return
			}

			candidate.Objectives = objectives
			candidate.Quality = utils.CloneMetrics(quality)
			candidate.Check = p.checker.Check(objectives, batch[i], quality)
			candidate.Feasible = candidate.Check.Feasible
			results[i] = candidate
		})
	}
	workers.Wait()

	return results
}
