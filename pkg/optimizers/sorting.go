package optimizers

import (
	"math"
	"sort"

	"github.com/paretune/paretune/pkg/core"
)

// nonDominatedSort partitions candidates into Pareto fronts using O(n²)
// pairwise domination counting and writes each candidate's Rank. Front 0 is
// the non-dominated set. Deterministic for a fixed input ordering; ties keep
// insertion order.
func nonDominatedSort(candidates []*Candidate) [][]*Candidate {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	dominated := make([][]int, n) // indexes each candidate dominates
	counts := make([]int, n)      // how many candidates dominate i

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if candidates[i].Objectives.Dominates(candidates[j].Objectives) {
				dominated[i] = append(dominated[i], j)
				counts[j]++
			}
		}
	}

	var fronts [][]*Candidate
	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if counts[i] == 0 {
			current = append(current, i)
		}
	}

	rank := 0
	for len(current) > 0 {
		front := make([]*Candidate, 0, len(current))
		next := make([]int, 0)
		for _, i := range current {
			candidates[i].Rank = rank
			front = append(front, candidates[i])
		}
		for _, i := range current {
			for _, j := range dominated[i] {
				counts[j]--
				if counts[j] == 0 {
					next = append(next, j)
				}
			}
		}
		fronts = append(fronts, front)
		current = next
		rank++
	}

	return fronts
}

// assignCrowdingDistances computes the true per-front crowding distance: for
// each objective, the front is sorted by that objective and every interior
// candidate accumulates the normalized gap between its neighbors; boundary
// candidates get infinite distance. Writes Crowding on each candidate.
func assignCrowdingDistances(front []*Candidate) {
	n := len(front)
	if n == 0 {
		return
	}
	if n <= 2 {
		for _, c := range front {
			c.Crowding = math.Inf(1)
		}
		return
	}

	for _, c := range front {
		c.Crowding = 0
	}

	order := make([]int, n)
	for obj := 0; obj < core.NumObjectives; obj++ {
		for i := range order {
			order[i] = i
		}
		values := make([]float64, n)
		for i, c := range front {
			values[i] = c.Objectives.ToSlice()[obj]
		}
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] < values[order[b]]
		})

		lo := values[order[0]]
		hi := values[order[n-1]]
		span := hi - lo
		if span <= 0 {
			// Constant objective: no spread to reward, no boundaries to pin.
			continue
		}
		front[order[0]].Crowding = math.Inf(1)
		front[order[n-1]].Crowding = math.Inf(1)
		for i := 1; i < n-1; i++ {
			c := front[order[i]]
			if math.IsInf(c.Crowding, 1) {
				continue
			}
			c.Crowding += (values[order[i+1]] - values[order[i-1]]) / span
		}
	}
}

// feasibleFront filters a front down to its feasible members.
func feasibleFront(front []*Candidate) []*Candidate {
	out := make([]*Candidate, 0, len(front))
	for _, c := range front {
		if c.Feasible {
			out = append(out, c)
		}
	}
	return out
}
