package optionmodels

type RiskBand string

const (
	RiskBandExtreme  RiskBand = "extreme"
	RiskBandHigh     RiskBand = "high"
	RiskBandModerate RiskBand = "moderate"
	RiskBandLow      RiskBand = "low"
	RiskBandMinimal  RiskBand = "minimal"
)

// RiskBandConfig holds the assignment-probability thresholds used to
// discretize contracts into risk bands. The thresholds are policy
// values, not derived quantities.
type RiskBandConfig struct {
	Extreme  float64 `yaml:"extreme"`
	High     float64 `yaml:"high"`
	Moderate float64 `yaml:"moderate"`
	Low      float64 `yaml:"low"`
}

func DefaultRiskBandConfig() RiskBandConfig {
	return RiskBandConfig{
		Extreme:  0.70,
		High:     0.50,
		Moderate: 0.30,
		Low:      0.15,
	}
}

func (c RiskBandConfig) Classify(assignmentProbability float64) RiskBand {
	switch {
	case assignmentProbability > c.Extreme:
		return RiskBandExtreme
	case assignmentProbability > c.High:
		return RiskBandHigh
	case assignmentProbability > c.Moderate:
		return RiskBandModerate
	case assignmentProbability > c.Low:
		return RiskBandLow
	default:
		return RiskBandMinimal
	}
}
