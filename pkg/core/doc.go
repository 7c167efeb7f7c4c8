// Package core defines the objective and decision-variable model shared by
// the optimization stages: the 8-objective vector with its Pareto dominance
// relation, the 5D/14D decision spaces with a flat numeric encoding for
// generic evolutionary operators, and the black-box Evaluator contract.
package core
