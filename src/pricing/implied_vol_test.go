package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

func TestImpliedVolatility(t *testing.T) {
	t.Run("round trip recovers volatility", func(t *testing.T) {
		for _, optionType := range []optionmodels.OptionType{optionmodels.Put, optionmodels.Call} {
			for _, vol := range []float64{0.10, 0.20, 0.50, 1.00} {
				for _, timeToExpiry := range []float64{7.0 / 365.0, 30.0 / 365.0, 1.0} {
					in := Inputs{
						Underlying:   100,
						Strike:       100,
						TimeToExpiry: timeToExpiry,
						Rate:         0.048,
						Vol:          vol,
						OptionType:   optionType,
					}

					result, err := PriceAndGreeks(in)
					require.NoError(t, err)

					recovered, err := ImpliedVolatility(result.Price, in.Underlying, in.Strike, in.TimeToExpiry, in.Rate, in.OptionType)
					require.NoError(t, err, "type=%s vol=%v T=%v", optionType, vol, timeToExpiry)

					assert.InDelta(t, vol, recovered, 1e-3, "type=%s vol=%v T=%v", optionType, vol, timeToExpiry)
				}
			}
		}
	})

	t.Run("non-positive observed price short-circuits", func(t *testing.T) {
		_, err := ImpliedVolatility(0, 100, 95, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorIs(t, err, optionmodels.ErrIVNotFound)

		_, err = ImpliedVolatility(-1.2, 100, 95, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorIs(t, err, optionmodels.ErrIVNotFound)
	})

	t.Run("price at or below intrinsic short-circuits", func(t *testing.T) {
		// Put struck at 100 against a 90 spot has 10.00 of intrinsic.
		_, err := ImpliedVolatility(9.50, 90, 100, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorIs(t, err, optionmodels.ErrIVNotFound)

		_, err = ImpliedVolatility(10.0, 90, 100, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorIs(t, err, optionmodels.ErrIVNotFound)
	})

	t.Run("price just above intrinsic still converges", func(t *testing.T) {
		recovered, err := ImpliedVolatility(10.45, 90, 100, 30.0/365.0, 0.048, optionmodels.Put)
		require.NoError(t, err)
		assert.Greater(t, recovered, 0.0)
	})

	t.Run("invalid market inputs are rejected", func(t *testing.T) {
		var invalid *optionmodels.InvalidInputError

		_, err := ImpliedVolatility(1.0, 0, 95, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorAs(t, err, &invalid)

		_, err = ImpliedVolatility(1.0, 100, 0, 30.0/365.0, 0.048, optionmodels.Put)
		assert.ErrorAs(t, err, &invalid)

		_, err = ImpliedVolatility(1.0, 100, 95, 0, 0.048, optionmodels.Put)
		assert.ErrorAs(t, err, &invalid)
	})
}
