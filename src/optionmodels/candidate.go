package optionmodels

// DeltaSource records where a candidate's delta came from.
type DeltaSource string

const (
	DeltaSourceVendor   DeltaSource = "vendor"
	DeltaSourceComputed DeltaSource = "computed"
)

// CandidateContract is an eligible quote enriched with greeks, implied
// volatility, assignment probability and return metrics. It is built
// once per screening pass and never mutated afterwards.
type CandidateContract struct {
	Quote OptionQuote `json:"quote"`

	Greeks      GreeksResult `json:"greeks"`
	DeltaSource DeltaSource  `json:"delta_source"`
	ImpliedVol  float64      `json:"implied_vol"`

	// Exact risk-neutral probability of assignment, alongside the
	// cheaper |delta| proxy. Both are exposed because downstream
	// consumers compare them.
	AssignmentProbability float64         `json:"assignment_probability"`
	ExpireOTMProbability  float64         `json:"expire_otm_probability"`
	ProbabilityByDelta    float64         `json:"probability_by_delta"`
	Moneyness             OptionMoneyness `json:"moneyness"`
	RiskBand              RiskBand        `json:"risk_band"`

	DaysToExpiry        int     `json:"days_to_expiry"`
	MidPrice            float64 `json:"mid_price"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
	PremiumIncome       float64 `json:"premium_income"`
	RequiredCapital     float64 `json:"required_capital"`

	// Set for covered calls whose strike clears the upper volatility
	// band.
	AboveVolatilityBand bool `json:"above_volatility_band"`
}

// Delta returns the delta used for screening, whichever source it
// came from.
func (c CandidateContract) Delta() float64 {
	return c.Greeks.Delta
}

// CandidateRecord is the flat CSV projection of a candidate.
type CandidateRecord struct {
	Symbol                string  `csv:"symbol"`
	OptionType            string  `csv:"option_type"`
	Strike                float64 `csv:"strike"`
	Expiration            string  `csv:"expiration"`
	DaysToExpiry          int     `csv:"days_to_expiry"`
	Bid                   float64 `csv:"bid"`
	Ask                   float64 `csv:"ask"`
	MidPrice              float64 `csv:"mid_price"`
	OpenInterest          int     `csv:"open_interest"`
	Delta                 float64 `csv:"delta"`
	ImpliedVol            float64 `csv:"implied_vol"`
	AssignmentProbability float64 `csv:"assignment_probability"`
	RiskBand              string  `csv:"risk_band"`
	AnnualizedReturnPct   float64 `csv:"annualized_return_pct"`
	PremiumIncome         float64 `csv:"premium_income"`
	RequiredCapital       float64 `csv:"required_capital"`
	AboveVolatilityBand   bool    `csv:"above_volatility_band"`
}

func (c CandidateContract) ToRecord() CandidateRecord {
	return CandidateRecord{
		Symbol:                c.Quote.Symbol,
		OptionType:            string(c.Quote.OptionType),
		Strike:                c.Quote.Strike,
		Expiration:            c.Quote.Expiration.Format("2006-01-02"),
		DaysToExpiry:          c.DaysToExpiry,
		Bid:                   c.Quote.Bid,
		Ask:                   c.Quote.Ask,
		MidPrice:              c.MidPrice,
		OpenInterest:          c.Quote.OpenInterest,
		Delta:                 c.Greeks.Delta,
		ImpliedVol:            c.ImpliedVol,
		AssignmentProbability: c.AssignmentProbability,
		RiskBand:              string(c.RiskBand),
		AnnualizedReturnPct:   c.AnnualizedReturnPct,
		PremiumIncome:         c.PremiumIncome,
		RequiredCapital:       c.RequiredCapital,
		AboveVolatilityBand:   c.AboveVolatilityBand,
	}
}
