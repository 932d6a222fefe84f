package screener

import (
	"math"
	"sort"
	"time"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

const maxAlternatives = 4

// ScreenPuts runs the cash-secured-put pipeline: filter the chain to
// tradable puts around spot, price each survivor, reject those outside
// the delta band or over the buying-power limit, and rank what
// remains. Primary key is annualized return, tie-break prefers delta
// closest to the canonical target.
func (s *Screener) ScreenPuts(symbol string, quotes []optionmodels.OptionQuote, underlyingPrice float64, params optionmodels.PutScreenParams, now time.Time) optionmodels.ScreenResult {
	result := optionmodels.ScreenResult{
		Symbol:          symbol,
		OptionType:      optionmodels.Put,
		UnderlyingPrice: underlyingPrice,
		GeneratedAt:     now,
	}

	if underlyingPrice <= 0 {
		result.Status = optionmodels.StatusError
		return result
	}

	if err := params.Validate(); err != nil {
		result.Status = optionmodels.StatusError
		return result
	}

	strikeMin := underlyingPrice * (1 - params.StrikeBandPct)
	strikeMax := underlyingPrice * (1 + params.StrikeBandPct)

	eligible := make([]optionmodels.OptionQuote, 0, len(quotes))
	for _, q := range quotes {
		switch {
		case q.OptionType != optionmodels.Put:
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

		if candidate.RequiredCapital > params.BuyingPowerLimit {
			return evalOutcome{skip: skipCapitalExceeded}
		}

		return evalOutcome{candidate: candidate}
	})

	candidates := collectOutcomes(outcomes, &result.Skipped)
	if len(candidates) == 0 {
		result.Status = optionmodels.StatusNoSuitable
		return result
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AnnualizedReturnPct != candidates[j].AnnualizedReturnPct {
			return candidates[i].AnnualizedReturnPct > candidates[j].AnnualizedReturnPct
		}
		return math.Abs(candidates[i].Delta()-optionmodels.PutDeltaTarget) < math.Abs(candidates[j].Delta()-optionmodels.PutDeltaTarget)
	})

	result.Status = optionmodels.StatusFound
	result.Recommended = &candidates[0]
	result.Alternatives = alternativesOf(candidates)

	return result
}

func outsideExpiryWindow(q optionmodels.OptionQuote, minDays, maxDays int, now time.Time) bool {
	days := q.DaysToExpiry(now)
	if days < minDays {
		return true
	}
	return maxDays > 0 && days > maxDays
}

func collectOutcomes(outcomes []evalOutcome, skipped *optionmodels.SkipCounts) []optionmodels.CandidateContract {
	var candidates []optionmodels.CandidateContract

	for _, outcome := range outcomes {
		switch outcome.skip {
		case skipIVNotFound:
			skipped.IVNotFound++
		case skipDeltaOutOfBand:
			skipped.DeltaOutOfBand++
		case skipCapitalExceeded:
			skipped.CapitalExceeded++
		default:
			candidates = append(candidates, *outcome.candidate)
		}
	}

	return candidates
}

func alternativesOf(candidates []optionmodels.CandidateContract) []optionmodels.CandidateContract {
	if len(candidates) <= 1 {
		return nil
	}

	rest := candidates[1:]
	if len(rest) > maxAlternatives {
		rest = rest[:maxAlternatives]
	}

	out := make([]optionmodels.CandidateContract, len(rest))
	copy(out, rest)
	return out
}
