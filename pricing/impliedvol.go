package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdannyboy/optcross/models"
)

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
	DefaultLowerBound    = 1e-6
	DefaultUpperBound    = 5.0
)

var (
	// ErrBracketing means f(lower) and f(upper) share a sign, so the root is
	// not guaranteed inside the bracket. Raised before any iteration.
	ErrBracketing = errors.New("implied vol not bracketed")

	// ErrConvergence means the iteration budget ran out before |f(mid)|
	// dropped below tolerance.
	ErrConvergence = errors.New("implied vol did not converge")
)

// IVConfig controls the bisection search. The zero value is not useful;
// start from DefaultIVConfig.
type IVConfig struct {
	Tolerance     float64
	MaxIterations int
	Lower         float64
	Upper         float64
}

func DefaultIVConfig() IVConfig {
	return IVConfig{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Lower:         DefaultLowerBound,
		Upper:         DefaultUpperBound,
	}
}

// ImpliedVol solves price(sigma) == targetPrice by classic bisection over
// [cfg.Lower, cfg.Upper]. Deterministic; the bracket strictly shrinks every
// step. Convergence failure is terminal for the call, there are no retries.
func ImpliedVol(targetPrice, s, k, t, r float64, typ models.OptionType, cfg IVConfig) (float64, error) {
	if targetPrice <= 0 {
		return 0, fmt.Errorf("%w: target price must be positive, got %v", models.ErrInvalidInput, targetPrice)
	}

	f := func(sigma float64) (float64, error) {
		p, err := Price(models.OptionSpec{S: s, K: k, T: t, R: r, Sigma: sigma, Type: typ})
		if err != nil {
			return 0, err
		}
		return p - targetPrice, nil
	}

	fLower, err := f(cfg.Lower)
	if err != nil {
		return 0, err
	}
	fUpper, err := f(cfg.Upper)
	if err != nil {
		return 0, err
	}
	if fLower*fUpper > 0 {
		return 0, fmt.Errorf("%w: widen [%v, %v]", ErrBracketing, cfg.Lower, cfg.Upper)
	}

	a, b := cfg.Lower, cfg.Upper
	for i := 0; i < cfg.MaxIterations; i++ {
		mid := 0.5 * (a + b)
		fMid, err := f(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(fMid) < cfg.Tolerance {
			return mid, nil
		}
		if fLower*fMid < 0 {
			b = mid
		} else {
			a = mid
			fLower = fMid
		}
	}

	return 0, fmt.Errorf("%w after %d iterations", ErrConvergence, cfg.MaxIterations)
}
