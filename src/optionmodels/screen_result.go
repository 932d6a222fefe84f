package optionmodels

import (
	"time"

	"github.com/google/uuid"
)

type ScreenStatus string

const (
	// StatusFound: a recommended contract exists.
	StatusFound ScreenStatus = "found"
	// StatusNoOptions: nothing in the eligibility window (type,
	// strike band, expiry window, open interest, tradability).
	StatusNoOptions ScreenStatus = "no_options"
	// StatusNoSuitable: contracts entered evaluation but all were
	// rejected there (delta band, capital, IV convergence).
	StatusNoSuitable ScreenStatus = "no_suitable"
	StatusError      ScreenStatus = "error"
)

// SkipCounts records why contracts fell out of a screening pass, so
// lost candidates stay observable instead of disappearing silently.
type SkipCounts struct {
	WrongType         int `json:"wrong_type"`
	NotTradable       int `json:"not_tradable"`
	LowOpenInterest   int `json:"low_open_interest"`
	OutOfStrikeBand   int `json:"out_of_strike_band"`
	OutOfExpiryWindow int `json:"out_of_expiry_window"`
	IVNotFound        int `json:"iv_not_found"`
	DeltaOutOfBand    int `json:"delta_out_of_band"`
	CapitalExceeded   int `json:"capital_exceeded"`
}

func (s SkipCounts) Total() int {
	return s.WrongType + s.NotTradable + s.LowOpenInterest + s.OutOfStrikeBand +
		s.OutOfExpiryWindow + s.IVNotFound + s.DeltaOutOfBand + s.CapitalExceeded
}

// ScreenResult is the outcome of one screening pass: a recommended
// contract plus up to four ranked alternatives.
type ScreenResult struct {
	RequestID       uuid.UUID          `json:"request_id"`
	Symbol          string             `json:"symbol"`
	OptionType      OptionType         `json:"option_type"`
	UnderlyingPrice float64            `json:"underlying_price"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Status          ScreenStatus       `json:"status"`
	Recommended     *CandidateContract `json:"recommended,omitempty"`
	Alternatives    []CandidateContract `json:"alternatives,omitempty"`

	// Set on covered-call screens.
	UpperVolatilityBand *VolatilityBand `json:"upper_volatility_band,omitempty"`

	Skipped SkipCounts `json:"skipped"`
}

// Candidates returns the recommendation and alternatives as one slice,
// ranked order preserved.
func (r ScreenResult) Candidates() []CandidateContract {
	if r.Recommended == nil {
		return nil
	}

	out := make([]CandidateContract, 0, 1+len(r.Alternatives))
	out = append(out, *r.Recommended)
	out = append(out, r.Alternatives...)
	return out
}
