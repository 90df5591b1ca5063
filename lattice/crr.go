package lattice

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/optcross/models"
)

const DefaultSteps = 200

// Price values an option on a Cox-Ross-Rubinstein binomial tree.
// European exercise discounts the risk-neutral expectation at every node;
// American exercise additionally floors each node at its intrinsic value.
//
// The two node buffers are scoped to this call and reused across levels.
// Node spots are walked back in place one level at a time (spot at level i
// equals the level-i+1 spot at the same up-count times u). The repeated
// multiplication accumulates floating error at large step counts; it stays
// well inside the model's own convergence tolerance.
func Price(spec models.OptionSpec, steps int, exercise models.ExerciseStyle) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if steps < 1 {
		return 0, fmt.Errorf("%w: steps must be >= 1, got %d", models.ErrInvalidInput, steps)
	}
	if exercise != models.European && exercise != models.American {
		return 0, fmt.Errorf("%w: unrecognized exercise style %d", models.ErrInvalidInput, int(exercise))
	}

	dt := spec.T / float64(steps)
	u := math.Exp(spec.Sigma * math.Sqrt(dt))
	d := 1 / u
	p := (math.Exp(spec.R*dt) - d) / (u - d)
	disc := math.Exp(-spec.R * dt)

	spots := make([]float64, steps+1)
	values := make([]float64, steps+1)
	for j := 0; j <= steps; j++ {
		spots[j] = spec.S * math.Pow(u, float64(j)) * math.Pow(d, float64(steps-j))
		values[j] = intrinsic(spec, spots[j])
	}

	for i := steps - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			continuation := disc * (p*values[j+1] + (1-p)*values[j])
			spots[j] *= u
			if exercise == models.American {
				values[j] = math.Max(continuation, intrinsic(spec, spots[j]))
			} else {
				values[j] = continuation
			}
		}
	}

	if exercise == models.American {
		// The walk-back reaches the root with accumulated float error in
		// spots[0]; pin the root to the exact immediate-exercise bound.
		values[0] = math.Max(values[0], intrinsic(spec, spec.S))
	}

	return values[0], nil
}

func intrinsic(spec models.OptionSpec, spot float64) float64 {
	if spec.Type == models.Call {
		return math.Max(spot-spec.K, 0)
	}
	return math.Max(spec.K-spot, 0)
}
