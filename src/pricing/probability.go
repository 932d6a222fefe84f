package pricing

import (
	"github.com/optionscout/wheelscreener/src/optionmodels"
)

// AssignmentProbability computes the exact risk-neutral probability of
// a contract finishing in the money at expiry, using the same d2 as
// the pricing kernel. This is deliberately not the |delta| proxy.
func AssignmentProbability(req optionmodels.ProbabilityRequest, bands optionmodels.RiskBandConfig) (optionmodels.ProbabilityResult, error) {
	if req.Underlying <= 0 {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: "underlying must be positive"}
	}

	if req.Strike <= 0 {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: "strike must be positive"}
	}

	if req.DaysToExpiry <= 0 {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: "days to expiry must be positive"}
	}

	if req.Vol <= 0 {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: "vol must be positive"}
	}

	if err := req.OptionType.Validate(); err != nil {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: err.Error()}
	}

	result, err := PriceAndGreeks(Inputs{
		Underlying:   req.Underlying,
		Strike:       req.Strike,
		TimeToExpiry: YearsToExpiry(req.DaysToExpiry),
		Rate:         req.Rate,
		Vol:          req.Vol,
		OptionType:   req.OptionType,
	})
	if err != nil {
		return optionmodels.ProbabilityResult{}, &optionmodels.ProbabilityInputError{Request: req, Reason: err.Error()}
	}

	var assignment, ratio float64
	if req.OptionType == optionmodels.Put {
		assignment = NormCDF(-result.D2)
		ratio = req.Strike / req.Underlying
	} else {
		assignment = NormCDF(result.D2)
		ratio = req.Underlying / req.Strike
	}

	return optionmodels.ProbabilityResult{
		AssignmentProbability: assignment,
		ExpireOTMProbability:  1 - assignment,
		MoneynessRatio:        ratio,
		Moneyness:             optionmodels.ClassifyMoneyness(ratio),
		RiskBand:              bands.Classify(assignment),
	}, nil
}
