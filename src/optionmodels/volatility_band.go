package optionmodels

import "time"

// VolatilityBand is a Bollinger-style band over recent daily closes,
// used to bias covered-call strike selection above statistical
// resistance. Fallback is set when there was not enough history and
// the upper band was estimated from spot instead.
type VolatilityBand struct {
	Symbol        string    `json:"symbol"`
	AsOf          time.Time `json:"as_of"`
	MovingAverage float64   `json:"moving_average"`
	StandardDev   float64   `json:"standard_dev"`
	Upper         float64   `json:"upper"`
	Fallback      bool      `json:"fallback"`
}
