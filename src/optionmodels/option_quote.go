package optionmodels

import (
	"math"
	"time"
)

// Greeks holds vendor-supplied greeks for a chain row. A nil *Greeks
// on a quote means the venue did not publish them and they must be
// recovered from the observed price.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
	MidIV float64 `json:"mid_iv"`
}

// OptionQuote is a single raw option-chain row as supplied by the
// market-data collaborator. It is read-only input to the screener.
type OptionQuote struct {
	Symbol           string     `json:"symbol"`
	UnderlyingSymbol string     `json:"underlying_symbol"`
	Description      string     `json:"description"`
	Strike           float64    `json:"strike"`
	OptionType       OptionType `json:"option_type"`
	Expiration       time.Time  `json:"expiration"`
	Bid              float64    `json:"bid"`
	Ask              float64    `json:"ask"`
	Last             float64    `json:"last"`
	Volume           int        `json:"volume"`
	OpenInterest     int        `json:"open_interest"`
	ContractSize     int        `json:"contract_size"`
	Greeks           *Greeks    `json:"greeks,omitempty"`
}

// Tradable reports whether the quote has a two-sided market. A
// contract with a non-positive bid or ask cannot be sold and is
// excluded from ranking.
func (q OptionQuote) Tradable() bool {
	return q.Bid > 0 && q.Ask > 0 && q.Ask >= q.Bid
}

func (q OptionQuote) MidPrice() float64 {
	return (q.Bid + q.Ask) / 2
}

// DaysToExpiry counts whole days between now and expiration, never
// negative.
func (q OptionQuote) DaysToExpiry(now time.Time) int {
	days := int(math.Round(q.Expiration.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
