// Package arrow is a suite of bottleneck-objective TSP solvers: plain
// Bottleneck TSP (BTSP), length-Constrained Bottleneck TSP (CBTSP), and
// Balanced TSP (BalTSP), each driven by a threshold search over a dense
// cost matrix and a black-box TSPSubsolver.
//
// Subpackages:
//
//	costmatrix/ — the dense CostMatrix and its derived ProblemInfo cost index
//	transform/  — the CostTransform family (threshold/band-penalised views)
//	subsolver/  — the TSPSubsolver interface plus Held-Karp and heuristic backends
//	oracle/     — FeasibilityOracle, driving a SolvePlan through a subsolver
//	driver/     — EBST, ConstrainedEBST, DT, and IB threshold-search drivers
//	lowerbound/ — the 2MB/BBSSP/BSCSSP/BAP/CBAP/DCBPB/CBST lower-bound battery
//	asym/       — the asymmetric-to-symmetric reduction of spec.md §4.7
//	tsplib/     — TSPLIB instance/tour file parsing and writing
//	config/, logging/, telemetry/ — ambient configuration, logging, and metrics
//	internal/cliapp, cmd/arrow-* — the three command-line solvers
package arrow
