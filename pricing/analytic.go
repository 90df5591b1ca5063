package pricing

import (
	"math"

	"github.com/bcdannyboy/optcross/models"
	"github.com/bcdannyboy/optcross/stats"
)

// Price computes the Black-Scholes-Merton value of a European option.
// No dividends, European exercise only.
func Price(spec models.OptionSpec) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	d1, err := stats.D1(spec.S, spec.K, spec.T, spec.R, spec.Sigma)
	if err != nil {
		return 0, err
	}
	d2 := d1 - spec.Sigma*math.Sqrt(spec.T)
	discount := math.Exp(-spec.R * spec.T)

	if spec.Type == models.Call {
		return spec.S*stats.NormCDF(d1) - spec.K*discount*stats.NormCDF(d2), nil
	}
	return spec.K*discount*stats.NormCDF(-d2) - spec.S*stats.NormCDF(-d1), nil
}

// Greeks computes delta, gamma, vega, theta and rho for a European option.
// Gamma and vega are identical for calls and puts; delta, theta and rho
// carry the usual put/call asymmetry.
func Greeks(spec models.OptionSpec) (models.Greeks, error) {
	if err := spec.Validate(); err != nil {
		return models.Greeks{}, err
	}

	d1, err := stats.D1(spec.S, spec.K, spec.T, spec.R, spec.Sigma)
	if err != nil {
		return models.Greeks{}, err
	}
	d2 := d1 - spec.Sigma*math.Sqrt(spec.T)

	sqrtT := math.Sqrt(spec.T)
	discount := math.Exp(-spec.R * spec.T)
	pdfD1 := stats.NormPDF(d1)

	g := models.Greeks{
		Gamma: pdfD1 / (spec.S * spec.Sigma * sqrtT),
		Vega:  spec.S * pdfD1 * sqrtT,
	}

	if spec.Type == models.Call {
		g.Delta = stats.NormCDF(d1)
		g.Theta = -(spec.S*pdfD1*spec.Sigma)/(2*sqrtT) - spec.R*spec.K*discount*stats.NormCDF(d2)
		g.Rho = spec.K * spec.T * discount * stats.NormCDF(d2)
	} else {
		g.Delta = stats.NormCDF(d1) - 1
		g.Theta = -(spec.S*pdfD1*spec.Sigma)/(2*sqrtT) + spec.R*spec.K*discount*stats.NormCDF(-d2)
		g.Rho = -spec.K * spec.T * discount * stats.NormCDF(-d2)
	}

	return g, nil
}
