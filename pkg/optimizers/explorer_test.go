package optimizers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paretune/paretune/internal/testutil"
	"github.com/paretune/paretune/pkg/constraints"
	"github.com/paretune/paretune/pkg/core"
)

func newTestPipeline(evaluator core.Evaluator) *pipeline {
	return &pipeline{
		evaluator:   evaluator,
		checker:     constraints.NewChecker(),
		concurrency: 4,
	}
}

// linearEvaluator couples task-success to the relevance weight and cost to
// the reasoning depth, with everything else healthy and fixed. Deterministic
// and trivially optimizable.
func linearEvaluator() core.Evaluator {
	return core.EvaluatorFunc(func(_ context.Context, vars core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
		return core.ObjectiveVector{
			TaskSuccess:      vars.Base.RelevanceWeight,
			Quality:          0.8,
			Coverage:         0.7,
			Diversity:        0.6,
			Cost:             50 * float64(vars.Ext.ReasoningDepth),
			Latency:          80,
			CalibrationError: 0.1,
			RegressionRate:   0.02,
		}, testutil.PassingQualityMetrics(), nil
	})
}

func TestGridPoints(t *testing.T) {
	points := gridPoints()
	require.Len(t, points, 162)

	// Canonical enumeration order: innermost loop first.
	first := points[0]
	assert.Equal(t, 0.30, first.Base.RelevanceWeight)
	assert.Equal(t, 0.10, first.Base.CoherenceWeight)
	assert.Equal(t, core.StrictnessLenient, first.Base.Strictness)
	assert.Equal(t, core.CompressionLight, first.Base.Compression)
	assert.False(t, first.Base.SelfCheck)
	assert.True(t, points[1].Base.SelfCheck)

	last := points[len(points)-1]
	assert.Equal(t, 1.00, last.Base.RelevanceWeight)
	assert.Equal(t, core.StrictnessStrict, last.Base.Strictness)
	assert.Equal(t, core.CompressionAggressive, last.Base.Compression)
	assert.True(t, last.Base.SelfCheck)

	// Every grid point carries the default extension.
	ext := core.DefaultExtension()
	seen := make(map[core.BaseVariables]bool, len(points))
	for _, p := range points {
		assert.Equal(t, ext, p.Ext)
		seen[p.Base] = true
	}
	assert.Len(t, seen, 162, "grid points must be distinct")
}

func TestExploreReturnsFeasibleFrontSeeds(t *testing.T) {
	explorer := newExplorer(newTestPipeline(linearEvaluator()))

	seeds, err := explorer.Explore(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, seeds)

	for _, seed := range seeds {
		assert.Equal(t, 0, seed.Rank)
		assert.True(t, seed.Feasible)
		// Only relevance drives task-success here, so the front is exactly
		// the max-relevance slice of the grid.
		assert.Equal(t, 1.00, seed.Variables.Base.RelevanceWeight)
	}
}

func TestExploreIsDeterministic(t *testing.T) {
	run := func() []*Candidate {
		explorer := newExplorer(newTestPipeline(linearEvaluator()))
		seeds, err := explorer.Explore(context.Background())
		require.NoError(t, err)
		return seeds
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Variables, second[i].Variables)
		assert.Equal(t, first[i].Objectives, second[i].Objectives)
		assert.Equal(t, first[i].Rank, second[i].Rank)
	}
}

func TestExploreAllInfeasible(t *testing.T) {
	// Every point violates the hard regression ceiling; stage 1 yields an
	// empty seed set without erroring.
	evaluator := core.EvaluatorFunc(func(_ context.Context, _ core.DecisionVariables) (core.ObjectiveVector, map[string]float64, error) {
		return core.ObjectiveVector{TaskSuccess: 0.9, RegressionRate: 0.9}, testutil.PassingQualityMetrics(), nil
	})

	seeds, err := newExplorer(newTestPipeline(evaluator)).Explore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestExploreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newExplorer(newTestPipeline(linearEvaluator())).Explore(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
