package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

func TestAssignmentProbability(t *testing.T) {
	bands := optionmodels.DefaultRiskBandConfig()

	req := optionmodels.ProbabilityRequest{
		Underlying:   100,
		Strike:       95,
		DaysToExpiry: 30,
		Vol:          0.30,
		Rate:         0.048,
		OptionType:   optionmodels.Put,
	}

	t.Run("30-day put scenario", func(t *testing.T) {
		result, err := AssignmentProbability(req, bands)
		require.NoError(t, err)

		assert.InDelta(t, 0.2745, result.AssignmentProbability, 1e-3)
		assert.InDelta(t, 0.95, result.MoneynessRatio, 1e-9)
		assert.Equal(t, optionmodels.OptionMoneynessNearTheMoney, result.Moneyness)
		assert.Equal(t, optionmodels.RiskBandLow, result.RiskBand)
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		result, err := AssignmentProbability(req, bands)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, result.AssignmentProbability+result.ExpireOTMProbability, 1e-12)
	})

	t.Run("put and call probabilities are complements for the same contract", func(t *testing.T) {
		putResult, err := AssignmentProbability(req, bands)
		require.NoError(t, err)

		callReq := req
		callReq.OptionType = optionmodels.Call
		callResult, err := AssignmentProbability(callReq, bands)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, putResult.AssignmentProbability+callResult.AssignmentProbability, 1e-12)
	})

	t.Run("call moneyness ratio inverts the convention", func(t *testing.T) {
		callReq := req
		callReq.OptionType = optionmodels.Call

		result, err := AssignmentProbability(callReq, bands)
		require.NoError(t, err)

		assert.InDelta(t, 100.0/95.0, result.MoneynessRatio, 1e-9)
		assert.Equal(t, optionmodels.OptionMoneynessInTheMoney, result.Moneyness)
	})

	t.Run("deep in-the-money put lands in the extreme band", func(t *testing.T) {
		deep := req
		deep.Strike = 120

		result, err := AssignmentProbability(deep, bands)
		require.NoError(t, err)

		assert.Greater(t, result.AssignmentProbability, 0.70)
		assert.Equal(t, optionmodels.RiskBandExtreme, result.RiskBand)
	})

	t.Run("precondition violations carry the original request", func(t *testing.T) {
		for _, bad := range []optionmodels.ProbabilityRequest{
			{Underlying: 0, Strike: 95, DaysToExpiry: 30, Vol: 0.3, Rate: 0.048, OptionType: optionmodels.Put},
			{Underlying: 100, Strike: 0, DaysToExpiry: 30, Vol: 0.3, Rate: 0.048, OptionType: optionmodels.Put},
			{Underlying: 100, Strike: 95, DaysToExpiry: 0, Vol: 0.3, Rate: 0.048, OptionType: optionmodels.Put},
			{Underlying: 100, Strike: 95, DaysToExpiry: 30, Vol: 0, Rate: 0.048, OptionType: optionmodels.Put},
			{Underlying: 100, Strike: 95, DaysToExpiry: 30, Vol: 0.3, Rate: 0.048, OptionType: optionmodels.OptionType("condor")},
		} {
			_, err := AssignmentProbability(bad, bands)
			require.Error(t, err)

			var inputErr *optionmodels.ProbabilityInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, bad, inputErr.Request)
		}
	})
}

func TestRiskBandConfig(t *testing.T) {
	bands := optionmodels.DefaultRiskBandConfig()

	t.Run("default thresholds", func(t *testing.T) {
		assert.Equal(t, optionmodels.RiskBandExtreme, bands.Classify(0.71))
		assert.Equal(t, optionmodels.RiskBandHigh, bands.Classify(0.51))
		assert.Equal(t, optionmodels.RiskBandModerate, bands.Classify(0.31))
		assert.Equal(t, optionmodels.RiskBandLow, bands.Classify(0.16))
		assert.Equal(t, optionmodels.RiskBandMinimal, bands.Classify(0.10))
	})

	t.Run("thresholds are exclusive at the boundary", func(t *testing.T) {
		assert.Equal(t, optionmodels.RiskBandHigh, bands.Classify(0.70))
		assert.Equal(t, optionmodels.RiskBandMinimal, bands.Classify(0.15))
	})

	t.Run("custom thresholds are honored", func(t *testing.T) {
		custom := optionmodels.RiskBandConfig{Extreme: 0.9, High: 0.6, Moderate: 0.4, Low: 0.2}
		assert.Equal(t, optionmodels.RiskBandHigh, custom.Classify(0.71))
	})
}
