package pricing

import (
	"fmt"
	"math"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

const (
	ivInitialGuess  = 0.25
	ivLowerBound    = 1e-4
	ivUpperBound    = 5.0
	ivPriceTol      = 1e-4
	ivMaxIterations = 100
	ivVegaFloor     = 1e-10
)

// ImpliedVolatility inverts the Black-Scholes price: it finds the
// volatility that reproduces observedPrice. Newton-Raphson with vega
// as the derivative, falling back to bisection whenever vega is
// numerically flat or the iterate leaves (0, 5]. Failure to converge
// returns optionmodels.ErrIVNotFound, which callers treat as "skip
// this contract".
func ImpliedVolatility(observedPrice, underlying, strike, timeToExpiry, rate float64, optionType optionmodels.OptionType) (float64, error) {
	const op = "ImpliedVolatility"

	if underlying <= 0 {
		return 0, optionmodels.NewInvalidInputError(op, "underlying", underlying)
	}

	if strike <= 0 {
		return 0, optionmodels.NewInvalidInputError(op, "strike", strike)
	}

	if timeToExpiry <= 0 {
		return 0, optionmodels.NewInvalidInputError(op, "time to expiry", timeToExpiry)
	}

	if err := optionType.Validate(); err != nil {
		return 0, err
	}

	// A price at or below intrinsic value has no volatility solution;
	// do not bother iterating.
	if observedPrice <= 0 || observedPrice <= intrinsicValue(underlying, strike, optionType) {
		return 0, fmt.Errorf("%s: observed price %v at or below intrinsic: %w", op, observedPrice, optionmodels.ErrIVNotFound)
	}

	lo, hi := ivLowerBound, ivUpperBound
	sigma := ivInitialGuess

	for i := 0; i < ivMaxIterations; i++ {
		result, err := PriceAndGreeks(Inputs{
			Underlying:   underlying,
			Strike:       strike,
			TimeToExpiry: timeToExpiry,
			Rate:         rate,
			Vol:          sigma,
			OptionType:   optionType,
		})
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}

		diff := result.Price - observedPrice
		if math.Abs(diff) < ivPriceTol {
			return sigma, nil
		}

		// Price is monotone in vol, so the sign of diff tightens the
		// bracket.
		if diff > 0 {
			hi = sigma
		} else {
			lo = sigma
		}

		next := sigma - diff/result.Vega
		if result.Vega < ivVegaFloor || next <= lo || next >= hi || math.IsNaN(next) {
			next = (lo + hi) / 2
		}

		sigma = next
	}

	return 0, fmt.Errorf("%s: no convergence after %d iterations: %w", op, ivMaxIterations, optionmodels.ErrIVNotFound)
}

func intrinsicValue(underlying, strike float64, optionType optionmodels.OptionType) float64 {
	if optionType == optionmodels.Call {
		return math.Max(underlying-strike, 0)
	}
	return math.Max(strike-underlying, 0)
}
