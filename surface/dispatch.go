package surface

import (
	"fmt"
	"math"
	"strings"

	"github.com/bcdannyboy/optcross/lattice"
	"github.com/bcdannyboy/optcross/models"
	"github.com/bcdannyboy/optcross/montecarlo"
	"github.com/bcdannyboy/optcross/pricing"
)

// Method selects the pricing engine for surface-driven pricing.
type Method int

const (
	MethodBSM Method = iota
	MethodBinomial
	MethodMonteCarlo
)

func (m Method) String() string {
	switch m {
	case MethodBSM:
		return "bsm"
	case MethodBinomial:
		return "binomial"
	case MethodMonteCarlo:
		return "mc"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod matches "bsm", "binomial" or "mc" case-insensitively and
// rejects everything else.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bsm":
		return MethodBSM, nil
	case "binomial":
		return MethodBinomial, nil
	case "mc":
		return MethodMonteCarlo, nil
	}
	return 0, fmt.Errorf("%w: method must be \"bsm\", \"binomial\" or \"mc\", got %q", models.ErrInvalidInput, s)
}

// Options is forwarded verbatim to whichever pricer the method selects.
// Zero values fall back to each engine's defaults.
type Options struct {
	Type     models.OptionType
	Exercise models.ExerciseStyle // binomial only
	Steps    int                  // binomial only, 0 = lattice.DefaultSteps
	MC       *montecarlo.Config   // monte carlo only, nil = montecarlo.DefaultConfig
}

// PriceFromSurface resolves the implied volatility for (strike, maturity)
// from the surface and delegates to the selected pricer.
func PriceFromSurface(s, k, t, r float64, surf *Surface, method Method, opts Options) (float64, error) {
	if surf == nil {
		return 0, fmt.Errorf("%w: nil surface", models.ErrInvalidInput)
	}

	sigma := surf.IV(k, t)
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return 0, fmt.Errorf("%w: strike=%v maturity=%v", ErrInvalidSurfaceQuery, k, t)
	}

	spec := models.OptionSpec{S: s, K: k, T: t, R: r, Sigma: sigma, Type: opts.Type}

	switch method {
	case MethodBSM:
		return pricing.Price(spec)
	case MethodBinomial:
		steps := opts.Steps
		if steps == 0 {
			steps = lattice.DefaultSteps
		}
		return lattice.Price(spec, steps, opts.Exercise)
	case MethodMonteCarlo:
		cfg := montecarlo.DefaultConfig()
		if opts.MC != nil {
			cfg = *opts.MC
		}
		return montecarlo.Price(spec, cfg)
	}
	return 0, fmt.Errorf("%w: unrecognized method %d", models.ErrInvalidInput, int(method))
}
