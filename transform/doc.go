// Package transform: cost-matrix transforms for bottleneck-TSP search.
//
// Every exported type here is one row of the table in spec.md §4.1. A
// FeasibilityOracle attempt (package oracle) always does exactly three
// things with a Transform: Reseed it, Apply it to the base matrix to get
// a derived View, hand the View to a subsolver, then call Feasible on
// whatever tour came back — in that order, every time.
//
// BTSPShake1.Delta is carried purely for documentation/XML-output parity
// with the original tool's parameter list; the feasibility predicate for
// that variant depends only on the derived length being zero, which
// already implies every edge landed in [Lo,Hi] ⊆ [CostMin,Delta].
package transform
