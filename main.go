package main

import (
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/optcross/config"
	"github.com/bcdannyboy/optcross/lattice"
	"github.com/bcdannyboy/optcross/logger"
	"github.com/bcdannyboy/optcross/models"
	"github.com/bcdannyboy/optcross/montecarlo"
	"github.com/bcdannyboy/optcross/pricing"
	"github.com/bcdannyboy/optcross/surface"
)

type comparison struct {
	Spec          models.OptionSpec  `json:"spec"`
	Analytic      float64            `json:"analytic"`
	Binomial      float64            `json:"binomial"`
	MonteCarlo    float64            `json:"monte_carlo"`
	Greeks        models.Greeks      `json:"greeks"`
	ImpliedVol    float64            `json:"implied_vol"`
	SurfaceVol    float64            `json:"surface_vol,omitempty"`
	SurfacePrices map[string]float64 `json:"surface_prices,omitempty"`
	ShockedVol    float64            `json:"shocked_vol,omitempty"`
}

func main() {
	_ = godotenv.Load()
	log := logger.New()

	cfgPath := os.Getenv("OPTCROSS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	optType, err := models.ParseOptionType(cfg.Option.Type)
	if err != nil {
		log.WithError(err).Fatal("parsing option type")
	}
	exercise, err := models.ParseExerciseStyle(cfg.Lattice.Exercise)
	if err != nil {
		log.WithError(err).Fatal("parsing exercise style")
	}

	spec := models.OptionSpec{
		S:     cfg.Option.Spot,
		K:     cfg.Option.Strike,
		T:     cfg.Option.Maturity,
		R:     cfg.Option.Rate,
		Sigma: cfg.Option.Vol,
		Type:  optType,
	}

	result := comparison{Spec: spec}

	result.Analytic, err = pricing.Price(spec)
	if err != nil {
		log.WithError(err).Fatal("analytic pricer")
	}
	result.Greeks, err = pricing.Greeks(spec)
	if err != nil {
		log.WithError(err).Fatal("analytic greeks")
	}

	result.Binomial, err = lattice.Price(spec, cfg.Lattice.Steps, exercise)
	if err != nil {
		log.WithError(err).Fatal("binomial pricer")
	}

	mcCfg := montecarlo.DefaultConfig()
	if cfg.MonteCarlo.Paths > 0 {
		mcCfg.Paths = cfg.MonteCarlo.Paths
	}
	if cfg.MonteCarlo.Antithetic != nil {
		mcCfg.Antithetic = *cfg.MonteCarlo.Antithetic
	}
	mcCfg.Seed = cfg.MonteCarlo.Seed
	mcCfg.Workers = cfg.MonteCarlo.Workers
	result.MonteCarlo, err = montecarlo.Price(spec, mcCfg)
	if err != nil {
		log.WithError(err).Fatal("monte carlo pricer")
	}

	// Round-trip the analytic price back through the bisection solver.
	result.ImpliedVol, err = pricing.ImpliedVol(result.Analytic, spec.S, spec.K, spec.T, spec.R, spec.Type, pricing.DefaultIVConfig())
	if err != nil {
		log.WithError(err).Warn("implied vol round trip failed")
	}

	fmt.Println("\n=================== MODEL COMPARISON ===================")
	fmt.Printf("%-34s %10.4f\n", "Black-Scholes (closed form):", result.Analytic)
	fmt.Printf("%-34s %10.4f\n", fmt.Sprintf("Binomial tree (%d steps, %s):", cfg.Lattice.Steps, exercise), result.Binomial)
	fmt.Printf("%-34s %10.4f\n", fmt.Sprintf("Monte Carlo (%d paths):", mcCfg.Paths), result.MonteCarlo)
	fmt.Println("========================================================")
	fmt.Printf("MC vs BSM difference: %.4f\n", math.Abs(result.MonteCarlo-result.Analytic))
	fmt.Printf("Implied vol round trip: %.6f (input %.6f)\n", result.ImpliedVol, spec.Sigma)
	fmt.Printf("Greeks: delta=%.4f gamma=%.4f vega=%.4f theta=%.4f rho=%.4f\n",
		result.Greeks.Delta, result.Greeks.Gamma, result.Greeks.Vega, result.Greeks.Theta, result.Greeks.Rho)

	if surf := buildSurface(cfg, log); surf != nil {
		result.SurfaceVol = surf.IV(spec.K, spec.T)
		result.SurfacePrices = make(map[string]float64, 3)
		for _, method := range []surface.Method{surface.MethodBSM, surface.MethodBinomial, surface.MethodMonteCarlo} {
			price, err := surface.PriceFromSurface(spec.S, spec.K, spec.T, spec.R, surf, method, surface.Options{
				Type:     spec.Type,
				Exercise: exercise,
				Steps:    cfg.Lattice.Steps,
				MC:       &mcCfg,
			})
			if err != nil {
				log.WithError(err).WithField("method", method.String()).Error("surface-driven pricing")
				continue
			}
			result.SurfacePrices[method.String()] = price
		}

		shocked := surf.ShockParallel(cfg.Surface.Bump)
		result.ShockedVol = shocked.IV(spec.K, spec.T)

		fmt.Println("\n================= SURFACE-DRIVEN PRICES ================")
		fmt.Printf("Surface vol at (K=%.2f, T=%.2f): %.4f\n", spec.K, spec.T, result.SurfaceVol)
		for name, price := range result.SurfacePrices {
			fmt.Printf("%-12s %10.4f\n", name+":", price)
		}
		fmt.Printf("After %+.4f parallel shock: vol %.4f\n", cfg.Surface.Bump, result.ShockedVol)
		fmt.Println("========================================================")
	}

	if cfg.Output.ResultsFile != "" {
		data, err := json.Marshal(result)
		if err != nil {
			log.WithError(err).Fatal("marshalling results")
		}
		if err := os.WriteFile(cfg.Output.ResultsFile, data, 0o644); err != nil {
			log.WithError(err).Fatal("writing results file")
		}
		log.WithFields(logger.Fields{"file": cfg.Output.ResultsFile}).Info("wrote results")
	}
}

// buildSurface loads the configured CSV, or falls back to a small sample
// smile so the surface path of the demo always runs.
func buildSurface(cfg *config.Config, log *logrus.Logger) *surface.Surface {
	var rows []surface.Point
	if cfg.Surface.File != "" {
		var err error
		rows, err = surface.LoadCSV(cfg.Surface.File)
		if err != nil {
			log.WithError(err).WithField("file", cfg.Surface.File).Error("loading surface rows")
			return nil
		}
	} else {
		rows = []surface.Point{
			{Maturity: 0.25, Strike: 90, IV: 0.26},
			{Maturity: 0.25, Strike: 100, IV: 0.23},
			{Maturity: 0.25, Strike: 110, IV: 0.22},
			{Maturity: 1.0, Strike: 90, IV: 0.25},
			{Maturity: 1.0, Strike: 100, IV: 0.22},
			{Maturity: 1.0, Strike: 110, IV: 0.21},
			{Maturity: 2.0, Strike: 90, IV: 0.24},
			{Maturity: 2.0, Strike: 100, IV: 0.22},
			{Maturity: 2.0, Strike: 110, IV: 0.21},
		}
	}

	surf, err := surface.Build(rows)
	if err != nil {
		log.WithError(err).Error("building surface")
		return nil
	}
	return surf
}
