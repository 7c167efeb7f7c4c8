package optimizers

import (
	"context"

	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/errors"
	"github.com/paretune/paretune/pkg/logging"
)

// Stage 1 grid discretization of the 5D base space. The sweep is the full
// cross product: 3 x 3 x 3 x 3 x 2 = 162 combinations, enumerated in the
// fixed order below so repeated runs against a deterministic evaluator
// produce identical candidate sets and rank assignments.
var (
	relevanceGrid = []float64{0.30, 0.65, 1.00}
	coherenceGrid = []float64{0.10, 0.55, 1.00}
)

// Explorer performs the deterministic coarse sweep of the 5D subspace. Each
// grid point is lifted to the full 14D space with the default extension
// values before evaluation.
type Explorer struct {
	pipe *pipeline
}

func newExplorer(pipe *pipeline) *Explorer {
	return &Explorer{pipe: pipe}
}

// gridPoints enumerates the full grid in canonical order.
func gridPoints() []core.DecisionVariables {
	ext := core.DefaultExtension()
	points := make([]core.DecisionVariables, 0,
		len(relevanceGrid)*len(coherenceGrid)*3*3*2)

	for _, relevance := range relevanceGrid {
		for _, coherence := range coherenceGrid {
			for _, strictness := range core.StrictnessValues() {
				for _, compression := range core.CompressionValues() {
					for _, selfCheck := range []bool{false, true} {
						points = append(points, core.DecisionVariables{
							Base: core.BaseVariables{
								RelevanceWeight: relevance,
								CoherenceWeight: coherence,
								Strictness:      strictness,
								Compression:     compression,
								SelfCheck:       selfCheck,
							},
							Ext: ext,
						})
					}
				}
			}
		}
	}
	return points
}

// Explore evaluates the whole grid, non-dominated sorts it, and returns the
// feasible rank-0 candidates as the seed population for refinement. No
// randomness anywhere in this stage.
func (e *Explorer) Explore(ctx context.Context) ([]*Candidate, error) {
	logger := logging.GetLogger()

	points := gridPoints()
	logger.Info(ctx, "stage 1: sweeping %d grid points", len(points))

	candidates := e.pipe.evaluate(ctx, points, 0)
	if err := errors.CheckContext(ctx, "grid sweep"); err != nil {
		return nil, err
	}

	fronts := nonDominatedSort(candidates)
	if len(fronts) == 0 {
		return nil, nil
	}

	seeds := feasibleFront(fronts[0])
	logger.Info(ctx, "stage 1: front size %d, feasible seeds %d", len(fronts[0]), len(seeds))
	return seeds, nil
}
