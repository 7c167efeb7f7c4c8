package optimizers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paretune/paretune/pkg/core"
)

func TestEfficiencyOf(t *testing.T) {
	assert.Equal(t, 1.0, efficiencyOf(core.ObjectiveVector{Cost: 0}))
	assert.Equal(t, 0.8, efficiencyOf(core.ObjectiveVector{Cost: 200}))
	assert.Equal(t, 0.0, efficiencyOf(core.ObjectiveVector{Cost: costCeiling}))
	// Out-of-range costs clamp instead of escaping [0,1].
	assert.Equal(t, 0.0, efficiencyOf(core.ObjectiveVector{Cost: 5000}))
	assert.Equal(t, 1.0, efficiencyOf(core.ObjectiveVector{Cost: -10}))
}

func TestHypervolume2D(t *testing.T) {
	t.Run("empty front", func(t *testing.T) {
		assert.Equal(t, 0.0, hypervolume2D(nil))
	})

	t.Run("single point is its rectangle", func(t *testing.T) {
		front := []*Candidate{
			candidateWith(core.ObjectiveVector{TaskSuccess: 0.8, Cost: 200}),
		}
		// 0.8 task-success times 0.8 efficiency.
		assert.InDelta(t, 0.64, hypervolume2D(front), 1e-9)
	})

	t.Run("dominated point adds nothing", func(t *testing.T) {
		dominant := candidateWith(core.ObjectiveVector{TaskSuccess: 0.8, Cost: 200})
		dominated := candidateWith(core.ObjectiveVector{TaskSuccess: 0.5, Cost: 500})

		alone := hypervolume2D([]*Candidate{dominant})
		both := hypervolume2D([]*Candidate{dominant, dominated})
		assert.InDelta(t, alone, both, 1e-9)
	})

	t.Run("trade-off points union their rectangles", func(t *testing.T) {
		front := []*Candidate{
			candidateWith(core.ObjectiveVector{TaskSuccess: 0.9, Cost: 800}), // eff 0.2
			candidateWith(core.ObjectiveVector{TaskSuccess: 0.5, Cost: 200}), // eff 0.8
		}
		// 0.9*0.2 plus 0.5*(0.8-0.2).
		assert.InDelta(t, 0.48, hypervolume2D(front), 1e-9)
	})

	t.Run("order independent", func(t *testing.T) {
		a := candidateWith(core.ObjectiveVector{TaskSuccess: 0.9, Cost: 800})
		b := candidateWith(core.ObjectiveVector{TaskSuccess: 0.7, Cost: 500})
		c := candidateWith(core.ObjectiveVector{TaskSuccess: 0.4, Cost: 100})

		forward := hypervolume2D([]*Candidate{a, b, c})
		backward := hypervolume2D([]*Candidate{c, b, a})
		assert.InDelta(t, forward, backward, 1e-12)
	})

	t.Run("adding a non-dominated point never shrinks", func(t *testing.T) {
		front := []*Candidate{
			candidateWith(core.ObjectiveVector{TaskSuccess: 0.9, Cost: 800}),
			candidateWith(core.ObjectiveVector{TaskSuccess: 0.5, Cost: 200}),
		}
		before := hypervolume2D(front)
		grown := append(front, candidateWith(core.ObjectiveVector{TaskSuccess: 0.7, Cost: 400}))
		assert.GreaterOrEqual(t, hypervolume2D(grown), before)
	})
}
