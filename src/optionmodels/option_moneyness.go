package optionmodels

type OptionMoneyness string

const (
	OptionMoneynessInTheMoney    OptionMoneyness = "in_the_money"
	OptionMoneynessNearTheMoney  OptionMoneyness = "near_the_money"
	OptionMoneynessOutOfTheMoney OptionMoneyness = "out_of_the_money"
)

const nearTheMoneyWidth = 0.05

// ClassifyMoneyness buckets a moneyness ratio. The ratio is
// strike/underlying for puts and underlying/strike for calls, so a
// value above 1 always means the contract is on the in-the-money side.
func ClassifyMoneyness(ratio float64) OptionMoneyness {
	switch {
	case ratio >= 1.0+nearTheMoneyWidth:
		return OptionMoneynessInTheMoney
	case ratio >= 1.0-nearTheMoneyWidth:
		return OptionMoneynessNearTheMoney
	default:
		return OptionMoneynessOutOfTheMoney
	}
}
