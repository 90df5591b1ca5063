package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/optcross/models"
)

func TestImpliedVolRoundTrip(t *testing.T) {
	cases := []models.OptionSpec{
		{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call},
		{S: 100, K: 110, T: 1, R: 0.05, Sigma: 0.25, Type: models.Put},
		{S: 80, K: 75, T: 0.4, R: 0.02, Sigma: 0.55, Type: models.Call},
		{S: 120, K: 140, T: 2, R: 0.03, Sigma: 0.35, Type: models.Put},
	}
	for _, spec := range cases {
		target, err := Price(spec)
		if err != nil {
			t.Fatalf("price: %v", err)
		}
		iv, err := ImpliedVol(target, spec.S, spec.K, spec.T, spec.R, spec.Type, DefaultIVConfig())
		if err != nil {
			t.Fatalf("implied vol for %+v: %v", spec, err)
		}
		if math.Abs(iv-spec.Sigma) > 1e-4 {
			t.Fatalf("round trip for %+v: recovered %v, want %v", spec, iv, spec.Sigma)
		}
	}
}

func TestImpliedVolBracketingError(t *testing.T) {
	target, err := Price(models.OptionSpec{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call})
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	cfg := DefaultIVConfig()
	cfg.Lower = 0.5
	cfg.Upper = 0.5 // degenerate bracket, no sign change
	if _, err := ImpliedVol(target, 100, 100, 1, 0.05, models.Call, cfg); !errors.Is(err, ErrBracketing) {
		t.Fatalf("expected ErrBracketing, got %v", err)
	}
}

func TestImpliedVolConvergenceError(t *testing.T) {
	target, err := Price(models.OptionSpec{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call})
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	cfg := DefaultIVConfig()
	cfg.Tolerance = 1e-15 // unreachable inside three halvings
	cfg.MaxIterations = 3
	if _, err := ImpliedVol(target, 100, 100, 1, 0.05, models.Call, cfg); !errors.Is(err, ErrConvergence) {
		t.Fatalf("expected ErrConvergence, got %v", err)
	}
}

func TestImpliedVolRejectsNonPositiveTarget(t *testing.T) {
	if _, err := ImpliedVol(0, 100, 100, 1, 0.05, models.Call, DefaultIVConfig()); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := ImpliedVol(-3, 100, 100, 1, 0.05, models.Put, DefaultIVConfig()); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
