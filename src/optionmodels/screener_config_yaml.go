package optionmodels

import (
	"fmt"
	"strings"
)

// ScreenerConfigYAML is the per-symbol screening-target file.
type ScreenerConfigYAML struct {
	RiskBands *RiskBandConfig    `yaml:"riskBands,omitempty"`
	Symbols   []SymbolTargetYAML `yaml:"symbols"`
}

type SymbolTargetYAML struct {
	Symbol          string   `yaml:"symbol"`
	BuyingPower     float64  `yaml:"buyingPower"`
	OpenInterestMin int      `yaml:"openInterestMin"`
	PutDeltaMin     *float64 `yaml:"putDeltaMin,omitempty"`
	PutDeltaMax     *float64 `yaml:"putDeltaMax,omitempty"`
	CallDeltaMin    *float64 `yaml:"callDeltaMin,omitempty"`
	CallDeltaMax    *float64 `yaml:"callDeltaMax,omitempty"`
	MaxDaysToExpiry int      `yaml:"maxDaysToExpiry"`
}

func (c *ScreenerConfigYAML) GetSymbol(symbol string) (*SymbolTargetYAML, error) {
	sym1 := strings.ToLower(symbol)
	for i := range c.Symbols {
		sym2 := strings.ToLower(c.Symbols[i].Symbol)
		if sym1 == sym2 {
			return &c.Symbols[i], nil
		}
	}

	return nil, fmt.Errorf("ScreenerConfigYAML: symbol %s not found", symbol)
}

// PutParams materializes the target into screening params, starting
// from the defaults.
func (t *SymbolTargetYAML) PutParams() PutScreenParams {
	params := DefaultPutScreenParams()

	if t.BuyingPower > 0 {
		params.BuyingPowerLimit = t.BuyingPower
	}

	if t.OpenInterestMin > 0 {
		params.OpenInterestMin = t.OpenInterestMin
	}

	if t.PutDeltaMin != nil {
		params.DeltaMin = *t.PutDeltaMin
	}

	if t.PutDeltaMax != nil {
		params.DeltaMax = *t.PutDeltaMax
	}

	if t.MaxDaysToExpiry > 0 {
		params.MaxDaysToExpiry = t.MaxDaysToExpiry
	}

	return params
}

func (t *SymbolTargetYAML) CallParams() CallScreenParams {
	params := DefaultCallScreenParams()

	if t.OpenInterestMin > 0 {
		params.OpenInterestMin = t.OpenInterestMin
	}

	if t.CallDeltaMin != nil {
		params.DeltaMin = *t.CallDeltaMin
	}

	if t.CallDeltaMax != nil {
		params.DeltaMax = *t.CallDeltaMax
	}

	if t.MaxDaysToExpiry > 0 {
		params.MaxDaysToExpiry = t.MaxDaysToExpiry
	}

	return params
}
