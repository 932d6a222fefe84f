package screener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

var screenNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)

func putQuote(strike, bid, ask float64, oi int, greeks *optionmodels.Greeks) optionmodels.OptionQuote {
	return optionmodels.OptionQuote{
		Symbol:           "COST240531P",
		UnderlyingSymbol: "COST",
		Strike:           strike,
		OptionType:       optionmodels.Put,
		Expiration:       screenNow.AddDate(0, 0, 30),
		Bid:              bid,
		Ask:              ask,
		OpenInterest:     oi,
		ContractSize:     100,
		Greeks:           greeks,
	}
}

func putParams() optionmodels.PutScreenParams {
	params := optionmodels.DefaultPutScreenParams()
	params.BuyingPowerLimit = 10000
	params.OpenInterestMin = 500
	params.DeltaMin = -0.30
	params.DeltaMax = -0.10
	params.RiskFreeRate = 0.048
	return params
}

func TestScreenPuts(t *testing.T) {
	s := New()

	t.Run("open interest filter eliminates the illiquid strike", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
			putQuote(90, 0.50, 0.60, 100, &optionmodels.Greeks{Delta: -0.10, MidIV: 0.30}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		require.NotNil(t, result.Recommended)
		assert.Equal(t, 95.0, result.Recommended.Quote.Strike)
		assert.Empty(t, result.Alternatives)
	})

	t.Run("recommended contract carries derived metrics", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		c := result.Recommended

		assert.Equal(t, 30, c.DaysToExpiry)
		assert.InDelta(t, 1.05, c.MidPrice, 1e-9)
		assert.InDelta(t, (1.05/95.0)*(365.0/30.0)*100, c.AnnualizedReturnPct, 1e-9)
		assert.InDelta(t, 105.0, c.PremiumIncome, 1e-9)
		assert.InDelta(t, 9500.0, c.RequiredCapital, 1e-9)
		assert.InDelta(t, 20.0, c.ProbabilityByDelta, 1e-9)
		assert.Greater(t, c.AssignmentProbability, 0.0)
		assert.InDelta(t, 1.0, c.AssignmentProbability+c.ExpireOTMProbability, 1e-12)
	})

	t.Run("vendor greeks are preferred over computed", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		assert.Equal(t, optionmodels.DeltaSourceVendor, result.Recommended.DeltaSource)
		assert.Equal(t, -0.20, result.Recommended.Delta())
		assert.Equal(t, 0.28, result.Recommended.ImpliedVol)
	})

	t.Run("missing greeks fall back to the solver", func(t *testing.T) {
		// Priced off the kernel: 30-day put struck at 95 against a 100
		// spot at 30 vol is worth about 1.31.
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.26, 1.37, 600, nil),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		c := result.Recommended

		assert.Equal(t, optionmodels.DeltaSourceComputed, c.DeltaSource)
		assert.InDelta(t, 0.30, c.ImpliedVol, 0.02)
		assert.InDelta(t, -0.2466, c.Delta(), 0.01)
		assert.NotZero(t, c.Greeks.D2)
	})

	t.Run("empty chain is no_options", func(t *testing.T) {
		result := s.ScreenPuts("COST", nil, 100, putParams(), screenNow)
		assert.Equal(t, optionmodels.StatusNoOptions, result.Status)
	})

	t.Run("strikes outside the band are no_options", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(80, 0.10, 0.20, 600, &optionmodels.Greeks{Delta: -0.05, MidIV: 0.30}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		assert.Equal(t, optionmodels.StatusNoOptions, result.Status)
		assert.Equal(t, 1, result.Skipped.OutOfStrikeBand)
	})

	t.Run("delta rejection is no_suitable", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 2.50, 2.70, 600, &optionmodels.Greeks{Delta: -0.45, MidIV: 0.40}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		assert.Equal(t, optionmodels.StatusNoSuitable, result.Status)
		assert.Equal(t, 1, result.Skipped.DeltaOutOfBand)
	})

	t.Run("capital rejection is no_suitable", func(t *testing.T) {
		params := putParams()
		params.BuyingPowerLimit = 5000

		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, params, screenNow)

		assert.Equal(t, optionmodels.StatusNoSuitable, result.Status)
		assert.Equal(t, 1, result.Skipped.CapitalExceeded)
	})

	t.Run("unsolvable quotes are skipped, not fatal", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			// Mid below intrinsic value: no volatility reproduces it.
			putQuote(105, 4.80, 5.00, 600, nil),
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		assert.Equal(t, 95.0, result.Recommended.Quote.Strike)
		assert.Equal(t, 1, result.Skipped.IVNotFound)
	})

	t.Run("non-tradable quotes are excluded", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 0, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
			putQuote(96, 1.00, 0, 600, &optionmodels.Greeks{Delta: -0.22, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		assert.Equal(t, optionmodels.StatusNoOptions, result.Status)
		assert.Equal(t, 2, result.Skipped.NotTradable)
	})

	t.Run("ranking maximizes annualized return", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
			putQuote(96, 1.40, 1.50, 600, &optionmodels.Greeks{Delta: -0.26, MidIV: 0.28}),
			putQuote(97, 1.80, 1.90, 600, &optionmodels.Greeks{Delta: -0.29, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		assert.Equal(t, 97.0, result.Recommended.Quote.Strike)
		require.Len(t, result.Alternatives, 2)
		assert.Equal(t, 96.0, result.Alternatives[0].Quote.Strike)
		assert.Equal(t, 95.0, result.Alternatives[1].Quote.Strike)
	})

	t.Run("ties prefer delta closest to the canonical target", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.18, MidIV: 0.28}),
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.28, MidIV: 0.28}),
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		assert.Equal(t, -0.28, result.Recommended.Delta())
	})

	t.Run("at most four alternatives are returned", func(t *testing.T) {
		var quotes []optionmodels.OptionQuote
		for i := 0; i < 8; i++ {
			quotes = append(quotes, putQuote(95+float64(i)*0.5, 1.00+float64(i)*0.1, 1.10+float64(i)*0.1, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}))
		}

		result := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		require.Equal(t, optionmodels.StatusFound, result.Status)
		assert.Len(t, result.Alternatives, 4)
	})

	t.Run("repeated screening of identical inputs is identical", func(t *testing.T) {
		quotes := []optionmodels.OptionQuote{
			putQuote(95, 1.00, 1.10, 600, &optionmodels.Greeks{Delta: -0.20, MidIV: 0.28}),
			putQuote(96, 1.40, 1.50, 600, nil),
			putQuote(97, 1.80, 1.90, 600, &optionmodels.Greeks{Delta: -0.29, MidIV: 0.28}),
		}

		first := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)
		second := s.ScreenPuts("COST", quotes, 100, putParams(), screenNow)

		assert.Equal(t, first, second)
	})

	t.Run("invalid params are a structured error status", func(t *testing.T) {
		params := putParams()
		params.DeltaMin = 0.30 // positive delta band makes no sense for puts

		result := s.ScreenPuts("COST", nil, 100, params, screenNow)
		assert.Equal(t, optionmodels.StatusError, result.Status)
	})
}
