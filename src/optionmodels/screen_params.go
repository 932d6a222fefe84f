package optionmodels

import "fmt"

const (
	// Canonical put-delta sweet spot used as the ranking tie-break,
	// independent of the requested delta band.
	PutDeltaTarget = -0.30

	DefaultPutStrikeBandPct = 0.05
	DefaultCallStrikeMinPct = 1.02
	DefaultCallStrikeMaxPct = 1.15

	DefaultOpenInterestMin = 100
	DefaultMaxDaysToExpiry = 45

	// Applied when the caller does not supply a rate; its use is
	// logged so data-quality gaps stay visible.
	DefaultRiskFreeRate = 0.048

	ContractMultiplier = 100
)

// PutScreenParams are the caller's constraints for a cash-secured-put
// screening pass. Both deltas are negative, DeltaMin being the more
// negative bound.
type PutScreenParams struct {
	BuyingPowerLimit float64 `json:"buying_power_limit" schema:"buying_power"`
	OpenInterestMin  int     `json:"open_interest_min" schema:"oi_min"`
	DeltaMin         float64 `json:"delta_min" schema:"delta_min"`
	DeltaMax         float64 `json:"delta_max" schema:"delta_max"`
	StrikeBandPct    float64 `json:"strike_band_pct" schema:"strike_band_pct"`
	MinDaysToExpiry  int     `json:"min_days_to_expiry" schema:"min_dte"`
	MaxDaysToExpiry  int     `json:"max_days_to_expiry" schema:"max_dte"`
	RiskFreeRate     float64 `json:"risk_free_rate" schema:"risk_free_rate"`
}

func DefaultPutScreenParams() PutScreenParams {
	return PutScreenParams{
		BuyingPowerLimit: 25000,
		OpenInterestMin:  DefaultOpenInterestMin,
		DeltaMin:         -0.30,
		DeltaMax:         -0.10,
		StrikeBandPct:    DefaultPutStrikeBandPct,
		MaxDaysToExpiry:  DefaultMaxDaysToExpiry,
	}
}

func (p PutScreenParams) Validate() error {
	if p.BuyingPowerLimit <= 0 {
		return fmt.Errorf("PutScreenParams: Validate: buying power limit must be positive, got %v", p.BuyingPowerLimit)
	}

	if p.DeltaMin > 0 || p.DeltaMax > 0 {
		return fmt.Errorf("PutScreenParams: Validate: put deltas must be negative, got [%v, %v]", p.DeltaMin, p.DeltaMax)
	}

	if p.DeltaMin > p.DeltaMax {
		return fmt.Errorf("PutScreenParams: Validate: delta_min %v must not exceed delta_max %v", p.DeltaMin, p.DeltaMax)
	}

	if p.StrikeBandPct <= 0 {
		return fmt.Errorf("PutScreenParams: Validate: strike band must be positive, got %v", p.StrikeBandPct)
	}

	return nil
}

// CallScreenParams are the caller's constraints for a covered-call
// screening pass. The strike window sits above spot and both deltas
// are positive.
type CallScreenParams struct {
	SharesHeld      int     `json:"shares_held" schema:"shares_held"`
	OpenInterestMin int     `json:"open_interest_min" schema:"oi_min"`
	DeltaMin        float64 `json:"delta_min" schema:"delta_min"`
	DeltaMax        float64 `json:"delta_max" schema:"delta_max"`
	StrikeMinPct    float64 `json:"strike_min_pct" schema:"strike_min_pct"`
	StrikeMaxPct    float64 `json:"strike_max_pct" schema:"strike_max_pct"`
	MinDaysToExpiry int     `json:"min_days_to_expiry" schema:"min_dte"`
	MaxDaysToExpiry int     `json:"max_days_to_expiry" schema:"max_dte"`
	RiskFreeRate    float64 `json:"risk_free_rate" schema:"risk_free_rate"`
}

func DefaultCallScreenParams() CallScreenParams {
	return CallScreenParams{
		SharesHeld:      ContractMultiplier,
		OpenInterestMin: DefaultOpenInterestMin,
		DeltaMin:        0.18,
		DeltaMax:        0.42,
		StrikeMinPct:    DefaultCallStrikeMinPct,
		StrikeMaxPct:    DefaultCallStrikeMaxPct,
		MaxDaysToExpiry: DefaultMaxDaysToExpiry,
	}
}

func (p CallScreenParams) Validate() error {
	if p.DeltaMin < 0 || p.DeltaMax < 0 {
		return fmt.Errorf("CallScreenParams: Validate: call deltas must be positive, got [%v, %v]", p.DeltaMin, p.DeltaMax)
	}

	if p.DeltaMin > p.DeltaMax {
		return fmt.Errorf("CallScreenParams: Validate: delta_min %v must not exceed delta_max %v", p.DeltaMin, p.DeltaMax)
	}

	if p.StrikeMinPct <= 1.0 || p.StrikeMaxPct <= p.StrikeMinPct {
		return fmt.Errorf("CallScreenParams: Validate: strike window [%v, %v] must sit above spot", p.StrikeMinPct, p.StrikeMaxPct)
	}

	return nil
}
