package pricing

import (
	"math"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

const daysPerYear = 365.0

// NormCDF is the standard normal cumulative distribution function.
// The complement relation NormCDF(-x) = 1 - NormCDF(x) holds to float
// tolerance because math.Erf is odd.
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// YearsToExpiry converts whole days to year fractions, floored at one
// day so contracts at or just past expiry never divide by zero.
func YearsToExpiry(days int) float64 {
	if days < 1 {
		days = 1
	}
	return float64(days) / daysPerYear
}

// Inputs are the validated arguments of one pricing call.
type Inputs struct {
	Underlying   float64
	Strike       float64
	TimeToExpiry float64 // years
	Rate         float64 // annualized, decimal
	Vol          float64 // annualized, decimal
	OptionType   optionmodels.OptionType
}

func (in Inputs) Validate() error {
	const op = "PriceAndGreeks"

	if in.Underlying <= 0 {
		return optionmodels.NewInvalidInputError(op, "underlying", in.Underlying)
	}

	if in.Strike <= 0 {
		return optionmodels.NewInvalidInputError(op, "strike", in.Strike)
	}

	if in.TimeToExpiry <= 0 {
		return optionmodels.NewInvalidInputError(op, "time to expiry", in.TimeToExpiry)
	}

	if in.Vol <= 0 {
		return optionmodels.NewInvalidInputError(op, "vol", in.Vol)
	}

	if err := in.OptionType.Validate(); err != nil {
		return err
	}

	return nil
}

// PriceAndGreeks computes the closed-form Black-Scholes price and the
// five standard greeks for a European put or call. Theta is the
// per-year rate of value decay, negative for long options.
func PriceAndGreeks(in Inputs) (optionmodels.GreeksResult, error) {
	if err := in.Validate(); err != nil {
		return optionmodels.GreeksResult{}, err
	}

	S := in.Underlying
	K := in.Strike
	T := in.TimeToExpiry
	r := in.Rate
	sigma := in.Vol

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discount := math.Exp(-r * T)

	result := optionmodels.GreeksResult{
		D1:    d1,
		D2:    d2,
		Gamma: NormPDF(d1) / (S * sigma * sqrtT),
		Vega:  S * NormPDF(d1) * sqrtT,
	}

	if in.OptionType == optionmodels.Call {
		result.Price = S*NormCDF(d1) - K*discount*NormCDF(d2)
		result.Delta = NormCDF(d1)
		result.Theta = -(S*NormPDF(d1)*sigma)/(2*sqrtT) - r*K*discount*NormCDF(d2)
		result.Rho = K * T * discount * NormCDF(d2)
	} else {
		result.Price = K*discount*NormCDF(-d2) - S*NormCDF(-d1)
		result.Delta = NormCDF(d1) - 1
		result.Theta = -(S*NormPDF(d1)*sigma)/(2*sqrtT) + r*K*discount*NormCDF(-d2)
		result.Rho = -K * T * discount * NormCDF(-d2)
	}

	return result, nil
}
