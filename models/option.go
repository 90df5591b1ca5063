package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput covers non-positive spot/strike/maturity/volatility and
// unrecognized option type, exercise style, or method names.
var ErrInvalidInput = errors.New("invalid input")

type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("OptionType(%d)", int(t))
}

// ParseOptionType matches case-insensitively and rejects anything that is
// not exactly "call" or "put". There is no default branch.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: option type must be \"call\" or \"put\", got %q", ErrInvalidInput, s)
}

type ExerciseStyle int

const (
	European ExerciseStyle = iota
	American
)

func (e ExerciseStyle) String() string {
	switch e {
	case European:
		return "european"
	case American:
		return "american"
	}
	return fmt.Sprintf("ExerciseStyle(%d)", int(e))
}

func ParseExerciseStyle(s string) (ExerciseStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "european":
		return European, nil
	case "american":
		return American, nil
	}
	return 0, fmt.Errorf("%w: exercise style must be \"european\" or \"american\", got %q", ErrInvalidInput, s)
}

// OptionSpec is the shared input contract of every pricer. Values are owned
// by the caller for the duration of one pricing call and never mutated.
type OptionSpec struct {
	S     float64 // Spot price of the underlying
	K     float64 // Strike price
	T     float64 // Time to maturity in years
	R     float64 // Continuously compounded risk-free rate
	Sigma float64 // Annualized volatility, decimal
	Type  OptionType
}

func (o OptionSpec) Validate() error {
	if o.S <= 0 {
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidInput, o.S)
	}
	if o.K <= 0 {
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidInput, o.K)
	}
	if o.T <= 0 {
		return fmt.Errorf("%w: maturity must be positive, got %v", ErrInvalidInput, o.T)
	}
	if o.Sigma <= 0 {
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidInput, o.Sigma)
	}
	if o.Type != Call && o.Type != Put {
		return fmt.Errorf("%w: unrecognized option type %d", ErrInvalidInput, int(o.Type))
	}
	return nil
}

// Greeks holds the analytic sensitivities of an option price.
// Vega is per 1.0 change in volatility, theta per year, rho per 1.0 change
// in rate.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}
