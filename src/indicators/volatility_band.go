package indicators

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

const (
	DefaultBandPeriod = 20
	DefaultBandWidth  = 2.0

	// Applied when there is not enough history for a full window: the
	// upper band is estimated as a multiple of spot. Kept as a named
	// path so callers and tests can see when it fires.
	FallbackBandMultiple = 1.1
)

// VolatilityBandCalculator computes a Bollinger-style upper band over
// the most recent Period daily closes: mean + Width standard
// deviations (population). A pure function of its inputs.
type VolatilityBandCalculator struct {
	Period int
	Width  float64
}

func NewVolatilityBandCalculator() *VolatilityBandCalculator {
	return &VolatilityBandCalculator{
		Period: DefaultBandPeriod,
		Width:  DefaultBandWidth,
	}
}

// Compute returns the band for the given closes, ordered oldest first.
// With fewer than Period observations it falls back to spot times
// FallbackBandMultiple rather than failing.
func (c *VolatilityBandCalculator) Compute(symbol string, closes []float64, spot float64, asOf time.Time) (optionmodels.VolatilityBand, error) {
	if len(closes) < c.Period {
		if spot <= 0 {
			return optionmodels.VolatilityBand{}, fmt.Errorf("VolatilityBandCalculator: Compute: %d closes for %s and no spot to fall back on", len(closes), symbol)
		}

		log.Warnf("VolatilityBandCalculator: only %d of %d closes for %s, falling back to %.1fx spot", len(closes), c.Period, symbol, FallbackBandMultiple)

		return optionmodels.VolatilityBand{
			Symbol:   symbol,
			AsOf:     asOf,
			Upper:    spot * FallbackBandMultiple,
			Fallback: true,
		}, nil
	}

	window := closes[len(closes)-c.Period:]

	movingAverage, err := stats.Mean(window)
	if err != nil {
		return optionmodels.VolatilityBand{}, fmt.Errorf("VolatilityBandCalculator: Compute: failed to calculate mean: %v", err)
	}

	sd, err := stats.StandardDeviation(window)
	if err != nil {
		return optionmodels.VolatilityBand{}, fmt.Errorf("VolatilityBandCalculator: Compute: failed to calculate the standard deviation: %v", err)
	}

	return optionmodels.VolatilityBand{
		Symbol:        symbol,
		AsOf:          asOf,
		MovingAverage: movingAverage,
		StandardDev:   sd,
		Upper:         movingAverage + c.Width*sd,
	}, nil
}
