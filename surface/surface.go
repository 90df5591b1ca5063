package surface

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/bcdannyboy/optcross/models"
)

var (
	// ErrInvalidSurfaceQuery means interpolation/extrapolation produced no
	// finite volatility for the requested (strike, maturity).
	ErrInvalidSurfaceQuery = errors.New("surface returned no finite volatility")

	// ErrMissingColumns means a surface table lacks one of the required
	// maturity/strike/iv columns.
	ErrMissingColumns = errors.New("surface table missing required columns")
)

// Point is one observed implied-vol quote, the raw input row of a surface.
// IV is in decimals, e.g. 0.22 for 22%.
type Point struct {
	Maturity float64 `json:"maturity"`
	Strike   float64 `json:"strike"`
	IV       float64 `json:"iv"`
}

// Surface interpolates implied volatility across strike and maturity on a
// dense grid over sorted unique axes. Vols[i][j] belongs to Maturities[i]
// and Strikes[j]; NaN marks a gap (an unobserved combination).
//
// A surface is immutable after Build. IV and ShockParallel never mutate the
// receiver, so concurrent readers need no synchronization.
type Surface struct {
	Maturities []float64
	Strikes    []float64
	Vols       [][]float64
}

// Build constructs a surface from raw rows. Duplicate (maturity, strike)
// pairs collapse to the last value; missing combinations stay as gaps.
func Build(rows []Point) (*Surface, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no surface rows", models.ErrInvalidInput)
	}

	type key struct{ t, k float64 }
	byKey := make(map[key]float64, len(rows))
	for _, row := range rows {
		byKey[key{row.Maturity, row.Strike}] = row.IV
	}

	maturities := make([]float64, 0, len(rows))
	strikes := make([]float64, 0, len(rows))
	for _, row := range rows {
		maturities = append(maturities, row.Maturity)
		strikes = append(strikes, row.Strike)
	}
	sort.Float64s(maturities)
	sort.Float64s(strikes)
	maturities = dedupe(maturities)
	strikes = dedupe(strikes)

	vols := make([][]float64, len(maturities))
	for i, t := range maturities {
		vols[i] = make([]float64, len(strikes))
		for j, k := range strikes {
			if v, ok := byKey[key{t, k}]; ok {
				vols[i][j] = v
			} else {
				vols[i][j] = math.NaN()
			}
		}
	}

	return &Surface{Maturities: maturities, Strikes: strikes, Vols: vols}, nil
}

func dedupe(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// IV returns the implied volatility at (strike, maturity) by bilinear
// interpolation inside the observed axis hull and nearest-boundary
// extrapolation outside it. Gaps are tolerated by falling back to the
// nearest observed node. Returns NaN when no finite value is reachable;
// the pricing dispatcher surfaces that as ErrInvalidSurfaceQuery.
func (s *Surface) IV(strike, maturity float64) float64 {
	if math.IsNaN(strike) || math.IsNaN(maturity) {
		return math.NaN()
	}

	ti, tw := locate(s.Maturities, maturity)
	si, sw := locate(s.Strikes, strike)
	tj := min(ti+1, len(s.Maturities)-1)
	sj := min(si+1, len(s.Strikes)-1)

	low := lerp(s.Vols[ti][si], s.Vols[ti][sj], sw)
	high := lerp(s.Vols[tj][si], s.Vols[tj][sj], sw)
	v := lerp(low, high, tw)

	if math.IsNaN(v) {
		return s.nearestFinite(strike, maturity)
	}
	return v
}

// ShockParallel returns a new surface with every implied vol shifted by
// bump. The receiver's grid is never touched.
func (s *Surface) ShockParallel(bump float64) *Surface {
	out := &Surface{
		Maturities: append([]float64(nil), s.Maturities...),
		Strikes:    append([]float64(nil), s.Strikes...),
		Vols:       make([][]float64, len(s.Vols)),
	}
	for i, row := range s.Vols {
		out.Vols[i] = append([]float64(nil), row...)
		floats.AddConst(bump, out.Vols[i])
	}
	return out
}

// locate finds the interval index lo and weight w in [0,1] such that x sits
// at axis[lo] + w*(axis[lo+1]-axis[lo]). Queries outside the axis clamp to
// the boundary (w pinned to 0 or 1), which yields nearest-boundary
// extrapolation.
func locate(axis []float64, x float64) (int, float64) {
	n := len(axis)
	if n == 1 || x <= axis[0] {
		return 0, 0
	}
	if x >= axis[n-1] {
		return n - 2, 1
	}
	i := sort.SearchFloat64s(axis, x) // first index with axis[i] >= x
	lo := i - 1
	return lo, (x - axis[lo]) / (axis[lo+1] - axis[lo])
}

// lerp short-circuits the endpoints so that an exact node hit never touches
// the opposite corner (which may be a NaN gap).
func lerp(a, b, w float64) float64 {
	if w == 0 {
		return a
	}
	if w == 1 {
		return b
	}
	return (1-w)*a + w*b
}

// nearestFinite scans the grid for the closest observed node, with axis
// distances normalized by each axis span so strikes and maturities weigh
// comparably. Returns NaN for a surface with no finite cells.
func (s *Surface) nearestFinite(strike, maturity float64) float64 {
	best := math.NaN()
	bestDist := math.Inf(1)
	tSpan := span(s.Maturities)
	kSpan := span(s.Strikes)
	for i, t := range s.Maturities {
		for j, k := range s.Strikes {
			v := s.Vols[i][j]
			if math.IsNaN(v) {
				continue
			}
			dist := math.Abs(t-maturity)/tSpan + math.Abs(k-strike)/kSpan
			if dist < bestDist {
				bestDist = dist
				best = v
			}
		}
	}
	return best
}

func span(axis []float64) float64 {
	if s := axis[len(axis)-1] - axis[0]; s > 0 {
		return s
	}
	return 1
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
