package optimizers

import (
	"math"
	"sort"

	"github.com/paretune/paretune/pkg/core"
	"github.com/paretune/paretune/pkg/utils"
)

// costCeiling normalizes raw cost onto [0,1] for the efficiency axis. Costs
// at or above the ceiling count as zero efficiency.
const costCeiling = 1000.0

// efficiencyOf maps an objective vector onto the cost-derived efficiency
// axis shared by convergence detection and mode distillation.
func efficiencyOf(v core.ObjectiveVector) float64 {
	return 1.0 - utils.Clamp(v.Cost/costCeiling, 0, 1)
}

// hypervolume2D computes the hypervolume of a front projected onto
// (task-success, efficiency) against the fixed reference point (0, 0).
// Standard 2D sweep: points sorted by descending task-success, accumulating
// rectangles as efficiency improves.
func hypervolume2D(front []*Candidate) float64 {
	if len(front) == 0 {
		return 0
	}

	type point struct{ x, y float64 }
	points := make([]point, 0, len(front))
	for _, c := range front {
		x := math.Max(c.Objectives.TaskSuccess, 0)
		y := efficiencyOf(c.Objectives)
		points = append(points, point{x: x, y: y})
	}

	sort.SliceStable(points, func(a, b int) bool {
		return points[a].x > points[b].x
	})

	hv := 0.0
	maxY := 0.0
	for _, p := range points {
		if p.y > maxY {
			hv += p.x * (p.y - maxY)
			maxY = p.y
		}
	}
	return hv
}
