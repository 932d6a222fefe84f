package screener

import (
	"errors"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/optionscout/wheelscreener/src/optionmodels"
	"github.com/optionscout/wheelscreener/src/pricing"
)

const defaultWorkers = 8

// Screener filters, prices and ranks raw option-chain rows for the
// put-selling and covered-call pipelines. It holds no mutable state
// across calls: identical inputs produce identical results.
type Screener struct {
	Workers   int
	RiskBands optionmodels.RiskBandConfig
}

func New() *Screener {
	return &Screener{
		Workers:   defaultWorkers,
		RiskBands: optionmodels.DefaultRiskBandConfig(),
	}
}

type skipReason int

const (
	skipNone skipReason = iota
	skipIVNotFound
	skipDeltaOutOfBand
	skipCapitalExceeded
)

type evalOutcome struct {
	candidate *optionmodels.CandidateContract
	skip      skipReason
}

// evaluateAll fans the per-contract evaluations out over a bounded
// worker pool. Outcomes land in a slice indexed by input position, so
// the merge is deterministic regardless of scheduling.
func (s *Screener) evaluateAll(quotes []optionmodels.OptionQuote, eval func(optionmodels.OptionQuote) evalOutcome) []evalOutcome {
	workers := s.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(quotes) {
		workers = len(quotes)
	}

	outcomes := make([]evalOutcome, len(quotes))

	indexCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range indexCh {
				outcomes[i] = eval(quotes[i])
			}
		}()
	}

	for i := range quotes {
		indexCh <- i
	}

	close(indexCh)
	wg.Wait()

	return outcomes
}

// sortByContract orders quotes by (expiration, strike) so ranking sees
// the same sequence no matter how the provider ordered the chain.
func sortByContract(quotes []optionmodels.OptionQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		if !quotes[i].Expiration.Equal(quotes[j].Expiration) {
			return quotes[i].Expiration.Before(quotes[j].Expiration)
		}
		return quotes[i].Strike < quotes[j].Strike
	})
}

// resolveVol returns the volatility for a quote: the vendor mid IV
// when supplied, otherwise recovered from the observed mid price.
func resolveVol(quote optionmodels.OptionQuote, underlying, timeToExpiry, rate float64) (float64, error) {
	if quote.Greeks != nil && quote.Greeks.MidIV > 0 {
		return quote.Greeks.MidIV, nil
	}

	return pricing.ImpliedVolatility(quote.MidPrice(), underlying, quote.Strike, timeToExpiry, rate, quote.OptionType)
}

// buildCandidate enriches one eligible quote with greeks, implied vol,
// assignment probability and return metrics. An IV that fails to
// converge skips the contract, never the batch.
func (s *Screener) buildCandidate(quote optionmodels.OptionQuote, underlying, rate float64, days int) (*optionmodels.CandidateContract, skipReason) {
	timeToExpiry := pricing.YearsToExpiry(days)

	vol, err := resolveVol(quote, underlying, timeToExpiry, rate)
	if err != nil {
		if !errors.Is(err, optionmodels.ErrIVNotFound) {
			log.Warnf("Screener: buildCandidate: %s strike %.2f: %v", quote.OptionType, quote.Strike, err)
		}
		return nil, skipIVNotFound
	}

	greeks, err := pricing.PriceAndGreeks(pricing.Inputs{
		Underlying:   underlying,
		Strike:       quote.Strike,
		TimeToExpiry: timeToExpiry,
		Rate:         rate,
		Vol:          vol,
		OptionType:   quote.OptionType,
	})
	if err != nil {
		log.Warnf("Screener: buildCandidate: %s strike %.2f: %v", quote.OptionType, quote.Strike, err)
		return nil, skipIVNotFound
	}

	deltaSource := optionmodels.DeltaSourceComputed
	if quote.Greeks != nil && quote.Greeks.Delta != 0 {
		// Vendor greeks are preferred when the venue publishes them.
		deltaSource = optionmodels.DeltaSourceVendor
		greeks.Delta = quote.Greeks.Delta
		if quote.Greeks.Gamma != 0 {
			greeks.Gamma = quote.Greeks.Gamma
		}
		if quote.Greeks.Theta != 0 {
			greeks.Theta = quote.Greeks.Theta
		}
		if quote.Greeks.Vega != 0 {
			greeks.Vega = quote.Greeks.Vega
		}
		if quote.Greeks.Rho != 0 {
			greeks.Rho = quote.Greeks.Rho
		}
	}

	prob, err := pricing.AssignmentProbability(optionmodels.ProbabilityRequest{
		Underlying:   underlying,
		Strike:       quote.Strike,
		DaysToExpiry: maxInt(days, 1),
		Vol:          vol,
		Rate:         rate,
		OptionType:   quote.OptionType,
	}, s.RiskBands)
	if err != nil {
		log.Warnf("Screener: buildCandidate: %s strike %.2f: %v", quote.OptionType, quote.Strike, err)
		return nil, skipIVNotFound
	}

	mid := quote.MidPrice()
	annualized := (mid / quote.Strike) * (365.0 / float64(maxInt(days, 1))) * 100

	delta := greeks.Delta

	return &optionmodels.CandidateContract{
		Quote:                 quote,
		Greeks:                greeks,
		DeltaSource:           deltaSource,
		ImpliedVol:            vol,
		AssignmentProbability: prob.AssignmentProbability,
		ExpireOTMProbability:  prob.ExpireOTMProbability,
		ProbabilityByDelta:    abs(delta) * 100,
		Moneyness:             prob.Moneyness,
		RiskBand:              prob.RiskBand,
		DaysToExpiry:          days,
		MidPrice:              mid,
		AnnualizedReturnPct:   annualized,
		PremiumIncome:         mid * optionmodels.ContractMultiplier,
		RequiredCapital:       quote.Strike * optionmodels.ContractMultiplier,
	}, skipNone
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
