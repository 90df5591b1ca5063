package stats

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/optcross/models"
)

// NormPDF is the standard normal probability density function.
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// NormCDF is the standard normal cumulative distribution function.
// Uses math.Erf for numerical stability at extreme |x|.
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// D1 is the Black-Scholes d1 term (no dividends).
func D1(s, k, t, r, sigma float64) (float64, error) {
	if t <= 0 {
		return 0, fmt.Errorf("%w: maturity must be positive, got %v", models.ErrInvalidInput, t)
	}
	if sigma <= 0 {
		return 0, fmt.Errorf("%w: volatility must be positive, got %v", models.ErrInvalidInput, sigma)
	}
	return (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t)), nil
}

// D2 is the Black-Scholes d2 term, d1 - sigma*sqrt(T).
func D2(s, k, t, r, sigma float64) (float64, error) {
	d1, err := D1(s, k, t, r, sigma)
	if err != nil {
		return 0, err
	}
	return d1 - sigma*math.Sqrt(t), nil
}
