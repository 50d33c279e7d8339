// Package transform implements the CostTransform family of spec.md §4.1:
// a stateless family of functions that each produce a *derived*
// costmatrix.CostMatrix from a base one, parameterised by a threshold or
// band (and, for the "shake" variants, a deterministically reseedable
// random offset table), plus the feasible(tour, length) predicate the
// oracle uses to accept or reject a candidate tour on the derived matrix.
//
// Design note (lazy composition): rather than materialising an n×n
// buffer up front the way lvlath/matrix's dense builders do, every
// Transform here wraps the base CostMatrix in a View — a small struct
// holding the base pointer plus the transform's parameters — and only
// a caller that genuinely needs a full *costmatrix.CostMatrix (driver.IB,
// which runs a lower-bound routine on the derived matrix) calls
// View.Materialize to reify a dense copy; the subsolvers read a View
// through Cost alone. This mirrors the
// "shallow vs deep copies" design note of spec.md §9: prefer lazy
// composition, reify only when a consumer demands a full matrix.
package transform

import "github.com/arrowtsp/arrow/costmatrix"

// Transform is the capability set every CostTransform variant implements
// (spec.md §9: "re-architect as a sum type of transforms each
// implementing a small Transform capability set").
type Transform interface {
	// Apply returns a derived CostMatrix view over base.
	Apply(base *costmatrix.CostMatrix) *View

	// Feasible evaluates the variant's feasible(tour, length) predicate
	// against the ORIGINAL base matrix (not the derived view); the oracle
	// re-measures an accepted tour on base before returning it (spec.md
	// §4.2).
	Feasible(base *costmatrix.CostMatrix, tour []int, derivedLength int) bool

	// Reseed re-initializes any internal random state (the shake
	// variants' RandTable). Transforms with no random state treat this
	// as a no-op. Reseeding is the caller's duty (spec.md §4.1); the
	// oracle calls Reseed once per oracle attempt (spec.md §4.2 step 2a).
	Reseed(rng RNG)
}

// RNG is the minimal random source a shake transform needs: a uniform
// draw in [0,bound). package oracle passes on the *rand.Rand its
// caller supplies (through its own adapter) as this interface so that no
// package here reads the process's default math/rand source directly
// (spec.md §5: "the random number generator is a process-wide state...
// consumed by every transform reinit in a deterministic order").
type RNG interface {
	Intn(n int) int
}

// View is a derived CostMatrix composed lazily over a base matrix via a
// per-edge cost function. It satisfies enough of CostMatrix's read
// surface (Cost, Size) for a subsolver to consume directly; subsolvers
// that need a dense buffer call Materialize.
type View struct {
	base *costmatrix.CostMatrix
	n    int
	cost func(i, j int) int
}

// NewView constructs a View from an explicit per-edge cost function.
func NewView(base *costmatrix.CostMatrix, cost func(i, j int) int) *View {
	return &View{base: base, n: base.Size(), cost: cost}
}

// Size returns n.
func (v *View) Size() int { return v.n }

// Cost returns the derived cost of edge i->j.
func (v *View) Cost(i, j int) int { return v.cost(i, j) }

// Materialize reifies the View into a dense *costmatrix.CostMatrix,
// needed by consumers (driver.IB's lower-bound pass, any O(n^2) matrix
// scan) that require a real *costmatrix.CostMatrix rather than a closure.
// Materialize never carries fixed edges forward, so the new matrix's
// fixed-edge set is empty; feasible() predicates consult the BASE
// matrix's fixed edges directly.
func (v *View) Materialize() (*costmatrix.CostMatrix, error) {
	data := make([]int, v.n*v.n)
	for i := 0; i < v.n; i++ {
		for j := 0; j < v.n; j++ {
			if i == j {
				continue
			}
			data[i*v.n+j] = v.cost(i, j)
		}
	}

	return costmatrix.New(v.n, data, v.base.Symmetric(), nil)
}
