package optionmodels

// ProbabilityRequest is the input to an assignment-probability
// calculation.
type ProbabilityRequest struct {
	Underlying   float64    `json:"underlying"`
	Strike       float64    `json:"strike"`
	DaysToExpiry int        `json:"days_to_expiry"`
	Vol          float64    `json:"vol"`
	Rate         float64    `json:"rate"`
	OptionType   OptionType `json:"option_type"`
}

// ProbabilityResult holds the exact risk-neutral probability of
// finishing in the money, its complement, and the derived
// classification. AssignmentProbability and ExpireOTMProbability sum
// to 1.
type ProbabilityResult struct {
	AssignmentProbability float64         `json:"assignment_probability"`
	ExpireOTMProbability  float64         `json:"expire_otm_probability"`
	MoneynessRatio        float64         `json:"moneyness_ratio"`
	Moneyness             OptionMoneyness `json:"moneyness"`
	RiskBand              RiskBand        `json:"risk_band"`
}
