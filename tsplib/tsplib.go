// Package tsplib reads and writes the TSPLIB instance and tour formats
// of spec.md §6.2/§6.4: a thin, line-oriented text format with a
// key:value header section followed by a coordinate, weight, or tour
// body section.
//
// No repo in the retrieved corpus touches this format, so this package
// is deliberately plain standard library (bufio scanning, strconv
// parsing, math for the distance functions) — see DESIGN.md for the
// justification. Everything downstream of ReadProblem (costmatrix,
// transform, subsolver, lowerbound, oracle, driver) consumes only
// *costmatrix.CostMatrix, so this package's only job is to get a
// TSPLIB file into that shape and back out again.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arrowtsp/arrow/arrowerrors"
	"github.com/arrowtsp/arrow/costmatrix"
)

// ErrUnsupportedEdgeWeightType indicates an EDGE_WEIGHT_TYPE this
// package does not implement. Wraps arrowerrors.ErrUnsupportedEdgeWeightType.
var ErrUnsupportedEdgeWeightType = fmt.Errorf("tsplib: unsupported EDGE_WEIGHT_TYPE: %w", arrowerrors.ErrUnsupportedEdgeWeightType)

// ErrMalformed indicates a structurally broken TSPLIB file (missing
// DIMENSION, truncated section, unparsable numeric field). Wraps
// arrowerrors.ErrMalformedTSPLIB.
var ErrMalformed = fmt.Errorf("tsplib: malformed input: %w", arrowerrors.ErrMalformedTSPLIB)

// Problem is a parsed TSPLIB instance: its declared name/dimension plus
// the derived CostMatrix ready for every downstream package.
type Problem struct {
	Name      string
	Dimension int
	Matrix    *costmatrix.CostMatrix
}

type point struct{ x, y float64 }

// ReadProblem parses a TSPLIB `.tsp` file. Supported EDGE_WEIGHT_TYPE
// values: EUC_2D, CEIL_2D, GEO, ATT (all computed from NODE_COORD_SECTION),
// and EXPLICIT with EDGE_WEIGHT_FORMAT=FULL_MATRIX (read verbatim from
// EDGE_WEIGHT_SECTION, symmetric or asymmetric per spec.md §6.2).
func ReadProblem(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		name, weightType, weightFormat string
		dim                            int
	)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "NODE_COORD_SECTION" || line == "EDGE_WEIGHT_SECTION" {
			break
		}
		key, val, isHeader := splitHeader(line)
		if !isHeader {
			continue
		}
		switch key {
		case "NAME":
			name = val
		case "DIMENSION":
			d, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("tsplib.ReadProblem: DIMENSION: %w", ErrMalformed)
			}
			dim = d
		case "EDGE_WEIGHT_TYPE":
			weightType = val
		case "EDGE_WEIGHT_FORMAT":
			weightFormat = val
		}
	}

	if dim <= 0 {
		return nil, fmt.Errorf("tsplib.ReadProblem: missing or invalid DIMENSION: %w", ErrMalformed)
	}

	var (
		mat *costmatrix.CostMatrix
		err error
	)

	switch weightType {
	case "EUC_2D", "CEIL_2D", "GEO", "ATT":
		mat, err = readCoordSection(sc, dim, weightType)
	case "EXPLICIT":
		if weightFormat != "FULL_MATRIX" && weightFormat != "" {
			return nil, fmt.Errorf("tsplib.ReadProblem: EDGE_WEIGHT_FORMAT %q: %w", weightFormat, ErrUnsupportedEdgeWeightType)
		}
		mat, err = readExplicitSection(sc, dim)
	default:
		return nil, fmt.Errorf("tsplib.ReadProblem: EDGE_WEIGHT_TYPE %q: %w", weightType, ErrUnsupportedEdgeWeightType)
	}
	if err != nil {
		return nil, err
	}

	return &Problem{Name: name, Dimension: dim, Matrix: mat}, nil
}

// readCoordSection expects the scanner positioned right after the
// NODE_COORD_SECTION header line (already consumed by the header loop
// before its break) — it reads `dim` lines of "idx x y" and derives the cost matrix
// from the named distance function.
func readCoordSection(sc *bufio.Scanner, dim int, weightType string) (*costmatrix.CostMatrix, error) {
	pts := make([]point, dim)
	for i := 0; i < dim; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("tsplib: NODE_COORD_SECTION truncated at node %d: %w", i, ErrMalformed)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("tsplib: malformed coordinate line %q: %w", sc.Text(), ErrMalformed)
		}
		x, err1 := strconv.ParseFloat(fields[1], 64)
		y, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("tsplib: malformed coordinate value %q: %w", sc.Text(), ErrMalformed)
		}
		pts[i] = point{x: x, y: y}
	}

	dist := distanceFunc(weightType)
	data := make([]int, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				continue
			}
			data[i*dim+j] = dist(pts[i], pts[j])
		}
	}

	return costmatrix.New(dim, data, true, nil)
}

func readExplicitSection(sc *bufio.Scanner, dim int) (*costmatrix.CostMatrix, error) {
	values := make([]int, 0, dim*dim)
	for len(values) < dim*dim && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == "EOF" {
			continue
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("tsplib: malformed weight value %q: %w", f, ErrMalformed)
			}
			values = append(values, v)
		}
	}
	if len(values) != dim*dim {
		return nil, fmt.Errorf("tsplib: EDGE_WEIGHT_SECTION truncated (want %d values, got %d): %w", dim*dim, len(values), ErrMalformed)
	}

	symmetric := true
checkSym:
	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			if values[i*dim+j] != values[j*dim+i] {
				symmetric = false

				break checkSym
			}
		}
	}

	return costmatrix.New(dim, values, symmetric, nil)
}

// distanceFunc returns the TSPLIB-standard rounding distance function
// for a given symmetric EDGE_WEIGHT_TYPE.
func distanceFunc(weightType string) func(a, b point) int {
	switch weightType {
	case "CEIL_2D":
		return func(a, b point) int {
			return int(math.Ceil(euclid(a, b)))
		}
	case "GEO":
		return geoDistance
	case "ATT":
		return attDistance
	default: // EUC_2D
		return func(a, b point) int {
			return int(math.Round(euclid(a, b)))
		}
	}
}

func euclid(a, b point) float64 {
	dx, dy := a.x-b.x, a.y-b.y

	return math.Sqrt(dx*dx + dy*dy)
}

// geoDistance implements TSPLIB's GEO latitude/longitude great-circle
// distance: coordinates are degrees.minutes, converted to radians, then
// the standard spherical law-of-cosines formula scaled by Earth's
// TSPLIB-conventional radius (6378.388 km).
func geoDistance(a, b point) int {
	const pi = 3.141592
	const radius = 6378.388

	toRad := func(coord float64) float64 {
		deg := math.Trunc(coord)
		minutes := coord - deg

		return pi * (deg + 5.0*minutes/3.0) / 180.0
	}

	lat1, lon1 := toRad(a.x), toRad(a.y)
	lat2, lon2 := toRad(b.x), toRad(b.y)

	q1 := math.Cos(lon1 - lon2)
	q2 := math.Cos(lat1 - lat2)
	q3 := math.Cos(lat1 + lat2)

	return int(radius*math.Acos(0.5*((1+q1)*q2-(1-q1)*q3)) + 1.0)
}

// attDistance implements TSPLIB's ATT pseudo-Euclidean distance.
func attDistance(a, b point) int {
	dx, dy := a.x-b.x, a.y-b.y
	r := math.Sqrt((dx*dx + dy*dy) / 10.0)
	t := math.Round(r)
	if t < r {
		return int(t) + 1
	}

	return int(t)
}

func splitHeader(line string) (key, val string, isHeader bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}

	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// ReadTour parses a TSPLIB tour file's TOUR_SECTION: one 1-based node
// index per line, terminated by -1. Returns the tour as 0-based indices.
func ReadTour(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	inSection := false
	var tour []int

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !inSection {
			if line == "TOUR_SECTION" {
				inSection = true
			}

			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("tsplib.ReadTour: malformed index %q: %w", line, ErrMalformed)
		}
		if v == -1 {
			break
		}
		tour = append(tour, v-1)
	}
	if !inSection {
		return nil, fmt.Errorf("tsplib.ReadTour: missing TOUR_SECTION: %w", ErrMalformed)
	}

	return tour, nil
}

// WriteTour emits a TSPLIB tour file: a NAME header, TOUR_SECTION with
// 1-based indices, a -1 terminator, and a trailing EOF marker.
func WriteTour(w io.Writer, name string, tour []int) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		if _, err := fmt.Fprintf(bw, "NAME: %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "TYPE: TOUR\nDIMENSION: %d\nTOUR_SECTION\n", len(tour)); err != nil {
		return err
	}
	for _, v := range tour {
		if _, err := fmt.Fprintf(bw, "%d\n", v+1); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "-1"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, "EOF"); err != nil {
		return err
	}

	return bw.Flush()
}
