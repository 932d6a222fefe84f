package screener

import (
	"sort"
	"time"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

// ScreenCalls runs the covered-call pipeline. The strike window is
// asymmetric above spot, and contracts whose strike clears the upper
// volatility band are strictly preferred over higher-yielding ones
// below it: the band marks statistical resistance, and being called
// away above it is an acceptable outcome.
func (s *Screener) ScreenCalls(symbol string, quotes []optionmodels.OptionQuote, underlyingPrice float64, band optionmodels.VolatilityBand, params optionmodels.CallScreenParams, now time.Time) optionmodels.ScreenResult {
	result := optionmodels.ScreenResult{
		Symbol:              symbol,
		OptionType:          optionmodels.Call,
		UnderlyingPrice:     underlyingPrice,
		GeneratedAt:         now,
		UpperVolatilityBand: &band,
	}

	if underlyingPrice <= 0 {
		result.Status = optionmodels.StatusError
		return result
	}

	if err := params.Validate(); err != nil {
		result.Status = optionmodels.StatusError
		return result
	}

	strikeMin := underlyingPrice * params.StrikeMinPct
	strikeMax := underlyingPrice * params.StrikeMaxPct

	eligible := make([]optionmodels.OptionQuote, 0, len(quotes))
	for _, q := range quotes {
		switch {
		case q.OptionType != optionmodels.Call:
			result.Skipped.WrongType++
		case !q.Tradable():
			result.Skipped.NotTradable++
		case q.OpenInterest < params.OpenInterestMin:
			result.Skipped.LowOpenInterest++
		case q.Strike < strikeMin || q.Strike > strikeMax:
			result.Skipped.OutOfStrikeBand++
		case outsideExpiryWindow(q, params.MinDaysToExpiry, params.MaxDaysToExpiry, now):
			result.Skipped.OutOfExpiryWindow++
		default:
			eligible = append(eligible, q)
		}
	}

	if len(eligible) == 0 {
		result.Status = optionmodels.StatusNoOptions
		return result
	}

	sortByContract(eligible)

	outcomes := s.evaluateAll(eligible, func(q optionmodels.OptionQuote) evalOutcome {
		candidate, skip := s.buildCandidate(q, underlyingPrice, params.RiskFreeRate, q.DaysToExpiry(now))
		if skip != skipNone {
			return evalOutcome{skip: skip}
		}

		delta := candidate.Delta()
		if delta < params.DeltaMin || delta > params.DeltaMax {
			return evalOutcome{skip: skipDeltaOutOfBand}
		}

		candidate.AboveVolatilityBand = q.Strike > band.Upper

		return evalOutcome{candidate: candidate}
	})

	candidates := collectOutcomes(outcomes, &result.Skipped)
	if len(candidates) == 0 {
		result.Status = optionmodels.StatusNoSuitable
		return result
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AboveVolatilityBand != candidates[j].AboveVolatilityBand {
			return candidates[i].AboveVolatilityBand
		}
		if candidates[i].AnnualizedReturnPct != candidates[j].AnnualizedReturnPct {
			return candidates[i].AnnualizedReturnPct > candidates[j].AnnualizedReturnPct
		}
		return candidates[i].Quote.Strike < candidates[j].Quote.Strike
	})

	result.Status = optionmodels.StatusFound
	result.Recommended = &candidates[0]
	result.Alternatives = alternativesOf(candidates)

	return result
}
