package optionmodels

import (
	"encoding/json"
	"fmt"
	"time"
)

type TradierGreeksDTO struct {
	Delta     float64 `json:"delta"`
	Gamma     float64 `json:"gamma"`
	Theta     float64 `json:"theta"`
	Vega      float64 `json:"vega"`
	Rho       float64 `json:"rho"`
	Phi       float64 `json:"phi"`
	BidIv     float64 `json:"bid_iv"`
	MidIv     float64 `json:"mid_iv"`
	AskIv     float64 `json:"ask_iv"`
	SmvVol    float64 `json:"smv_vol"`
	UpdatedAt string  `json:"updated_at"`
}

type TradierChainRowDTO struct {
	Symbol           string            `json:"symbol"`
	Description      string            `json:"description"`
	Underlying       string            `json:"underlying"`
	Strike           float64           `json:"strike"`
	Bid              float64           `json:"bid"`
	Ask              float64           `json:"ask"`
	LastPrice        float64           `json:"last"`
	Volume           int               `json:"volume"`
	OpenInterest     int               `json:"open_interest"`
	ContractSize     int               `json:"contract_size"`
	ExpirationDate   string            `json:"expiration_date"`
	ExpirationType   string            `json:"expiration_type"`
	OptionType       string            `json:"option_type"`
	RootSymbol       string            `json:"root_symbol"`
	Greeks           *TradierGreeksDTO `json:"greeks,omitempty"`
	BidSize          int               `json:"bidsize"`
	AskSize          int               `json:"asksize"`
	ChangePercentage float64           `json:"change_percentage"`
}

func (d *TradierChainRowDTO) ToModel() (OptionQuote, error) {
	expiration, err := time.Parse("2006-01-02", d.ExpirationDate)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("TradierChainRowDTO: ToModel: failed to parse expiration date %q: %w", d.ExpirationDate, err)
	}

	quote := OptionQuote{
		Symbol:           d.Symbol,
		UnderlyingSymbol: d.Underlying,
		Description:      d.Description,
		Strike:           d.Strike,
		OptionType:       OptionType(d.OptionType),
		Expiration:       expiration,
		Bid:              d.Bid,
		Ask:              d.Ask,
		Last:             d.LastPrice,
		Volume:           d.Volume,
		OpenInterest:     d.OpenInterest,
		ContractSize:     d.ContractSize,
	}

	if err := quote.OptionType.Validate(); err != nil {
		return OptionQuote{}, fmt.Errorf("TradierChainRowDTO: ToModel: %w", err)
	}

	if d.Greeks != nil {
		quote.Greeks = &Greeks{
			Delta: d.Greeks.Delta,
			Gamma: d.Greeks.Gamma,
			Theta: d.Greeks.Theta,
			Vega:  d.Greeks.Vega,
			Rho:   d.Greeks.Rho,
			MidIV: d.Greeks.MidIv,
		}
	}

	return quote, nil
}

// TradierOptionChainDTO wraps Tradier's chain response. The option
// field is a list normally but a bare object when the chain has a
// single row.
type TradierOptionChainDTO struct {
	Options struct {
		Option *json.RawMessage `json:"option"`
	} `json:"options"`
}

func (dto *TradierOptionChainDTO) Parse() ([]TradierChainRowDTO, error) {
	if dto.Options.Option == nil {
		return nil, nil
	}

	var rows []TradierChainRowDTO
	if listErr := json.Unmarshal(*dto.Options.Option, &rows); listErr != nil {
		var row TradierChainRowDTO
		if singleErr := json.Unmarshal(*dto.Options.Option, &row); singleErr != nil {
			return nil, fmt.Errorf("TradierOptionChainDTO: Parse: error decoding JSON: %v", singleErr)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (dto *TradierOptionChainDTO) ToModel() ([]OptionQuote, error) {
	rows, err := dto.Parse()
	if err != nil {
		return nil, fmt.Errorf("TradierOptionChainDTO: ToModel: %w", err)
	}

	quotes := make([]OptionQuote, 0, len(rows))
	for i := range rows {
		quote, err := rows[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("TradierOptionChainDTO: ToModel: row %d: %w", i, err)
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

type TradierExpirationsDTO struct {
	Expirations struct {
		Date []string `json:"date"`
	} `json:"expirations"`
}

type TradierUnderlyingQuoteDTO struct {
	Quotes struct {
		Quote struct {
			Symbol    string  `json:"symbol"`
			LastPrice float64 `json:"last"`
			Bid       float64 `json:"bid"`
			Ask       float64 `json:"ask"`
		} `json:"quote"`
	} `json:"quotes"`
}
