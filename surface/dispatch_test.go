package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/optcross/models"
	"github.com/bcdannyboy/optcross/montecarlo"
	"github.com/bcdannyboy/optcross/pricing"
)

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"bsm":      MethodBSM,
		"BSM":      MethodBSM,
		"Binomial": MethodBinomial,
		"mc":       MethodMonteCarlo,
		" MC ":     MethodMonteCarlo,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		if err != nil {
			t.Fatalf("ParseMethod(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMethod(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "montecarlo", "trinomial", "bs"} {
		if _, err := ParseMethod(in); !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("ParseMethod(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestPriceFromSurfaceBSM(t *testing.T) {
	s, err := Build(sampleRows())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := PriceFromSurface(100, 100, 0.5, 0.05, s, MethodBSM, Options{Type: models.Call})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	sigma := s.IV(100, 0.5)
	want, err := pricing.Price(models.OptionSpec{S: 100, K: 100, T: 0.5, R: 0.05, Sigma: sigma, Type: models.Call})
	if err != nil {
		t.Fatalf("direct price: %v", err)
	}
	if got != want {
		t.Fatalf("dispatched %v, direct %v", got, want)
	}
}

func TestPriceFromSurfaceBinomialAndMC(t *testing.T) {
	s, err := Build(sampleRows())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	bsm, err := PriceFromSurface(100, 100, 0.5, 0.05, s, MethodBSM, Options{Type: models.Put})
	if err != nil {
		t.Fatalf("bsm: %v", err)
	}

	tree, err := PriceFromSurface(100, 100, 0.5, 0.05, s, MethodBinomial, Options{
		Type:     models.Put,
		Exercise: models.European,
		Steps:    500,
	})
	if err != nil {
		t.Fatalf("binomial: %v", err)
	}
	if math.Abs(tree-bsm) > 0.25 {
		t.Fatalf("binomial %v too far from bsm %v", tree, bsm)
	}

	mc, err := PriceFromSurface(100, 100, 0.5, 0.05, s, MethodMonteCarlo, Options{
		Type: models.Put,
		MC:   &montecarlo.Config{Paths: 20000, Antithetic: true, Seed: 5, Workers: 2},
	})
	if err != nil {
		t.Fatalf("mc: %v", err)
	}
	if math.Abs(mc-bsm) > 1.0 {
		t.Fatalf("mc %v too far from bsm %v", mc, bsm)
	}
}

func TestPriceFromSurfaceInvalidQuery(t *testing.T) {
	empty := &Surface{
		Maturities: []float64{0.5},
		Strikes:    []float64{100},
		Vols:       [][]float64{{math.NaN()}},
	}
	if _, err := PriceFromSurface(100, 100, 0.5, 0.05, empty, MethodBSM, Options{}); !errors.Is(err, ErrInvalidSurfaceQuery) {
		t.Fatalf("expected ErrInvalidSurfaceQuery, got %v", err)
	}
}

func TestPriceFromSurfaceInvalidMethod(t *testing.T) {
	s, err := Build(sampleRows())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := PriceFromSurface(100, 100, 0.5, 0.05, s, Method(42), Options{}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := PriceFromSurface(100, 100, 0.5, 0.05, nil, MethodBSM, Options{}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("nil surface: expected ErrInvalidInput, got %v", err)
	}
}
