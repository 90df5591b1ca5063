package lattice

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/optcross/models"
	"github.com/bcdannyboy/optcross/pricing"
)

func TestConvergesToAnalytic(t *testing.T) {
	spec := models.OptionSpec{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call}
	bsm, err := pricing.Price(spec)
	if err != nil {
		t.Fatalf("analytic: %v", err)
	}
	tree, err := Price(spec, 500, models.European)
	if err != nil {
		t.Fatalf("lattice: %v", err)
	}
	if math.Abs(bsm-tree) > 0.25 {
		t.Fatalf("500-step tree %v too far from analytic %v", tree, bsm)
	}

	spec.Type = models.Put
	bsmPut, _ := pricing.Price(spec)
	treePut, err := Price(spec, 500, models.European)
	if err != nil {
		t.Fatalf("lattice put: %v", err)
	}
	if math.Abs(bsmPut-treePut) > 0.25 {
		t.Fatalf("500-step put tree %v too far from analytic %v", treePut, bsmPut)
	}
}

func TestAmericanDominatesEuropean(t *testing.T) {
	specs := []models.OptionSpec{
		{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Put},
		{S: 90, K: 110, T: 0.5, R: 0.08, Sigma: 0.3, Type: models.Put},
		{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call},
		{S: 130, K: 100, T: 2, R: 0.02, Sigma: 0.4, Type: models.Call},
	}
	for _, spec := range specs {
		euro, err := Price(spec, 200, models.European)
		if err != nil {
			t.Fatalf("european: %v", err)
		}
		amer, err := Price(spec, 200, models.American)
		if err != nil {
			t.Fatalf("american: %v", err)
		}
		if amer < euro-1e-12 {
			t.Fatalf("american %v below european %v for %+v", amer, euro, spec)
		}
	}
}

func TestAmericanPutCarriesEarlyExercisePremium(t *testing.T) {
	// Deep ITM put with a high rate: early exercise must be worth something.
	spec := models.OptionSpec{S: 60, K: 100, T: 1, R: 0.1, Sigma: 0.2, Type: models.Put}
	euro, _ := Price(spec, 400, models.European)
	amer, _ := Price(spec, 400, models.American)
	if amer <= euro {
		t.Fatalf("expected early exercise premium: american %v european %v", amer, euro)
	}
	// The American put can never be worth less than immediate exercise.
	// The root node is floored with the exact spot, so no tolerance here.
	if amer < spec.K-spec.S {
		t.Fatalf("american put %v below intrinsic %v", amer, spec.K-spec.S)
	}
}

func TestSingleStepTree(t *testing.T) {
	spec := models.OptionSpec{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call}
	got, err := Price(spec, 1, models.European)
	if err != nil {
		t.Fatalf("steps=1: %v", err)
	}
	// One CRR step by hand: u=e^0.2, d=1/u, p=(e^0.05-d)/(u-d),
	// price = e^-0.05 * p * (S*u - K).
	u := math.Exp(0.2)
	d := 1 / u
	p := (math.Exp(0.05) - d) / (u - d)
	want := math.Exp(-0.05) * p * (100*u - 100)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("single step = %v, want %v", got, want)
	}
}

func TestInvalidInputs(t *testing.T) {
	spec := models.OptionSpec{S: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: models.Call}
	if _, err := Price(spec, 0, models.European); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("steps=0: expected ErrInvalidInput, got %v", err)
	}
	if _, err := Price(spec, 200, models.ExerciseStyle(9)); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("bad exercise: expected ErrInvalidInput, got %v", err)
	}
	spec.Sigma = 0
	if _, err := Price(spec, 200, models.European); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("sigma=0: expected ErrInvalidInput, got %v", err)
	}
}
