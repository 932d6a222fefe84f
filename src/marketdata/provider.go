package marketdata

import (
	"context"
	"fmt"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

// Provider supplies the fully-materialized market data a screening
// pass consumes. The pricing core itself never performs I/O; these
// fetches happen before it is invoked.
type Provider interface {
	FetchUnderlyingPrice(ctx context.Context, symbol string) (float64, error)
	FetchOptionChains(ctx context.Context, symbol string, minDays, maxDays int) ([]optionmodels.OptionQuote, error)
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]float64, error)
}

// CompositeProvider serves quotes and chains from Tradier and
// historical bars from Polygon.
type CompositeProvider struct {
	Tradier *TradierClient
	Polygon *PolygonClient
}

func NewCompositeProvider(tradier *TradierClient, polygon *PolygonClient) *CompositeProvider {
	return &CompositeProvider{
		Tradier: tradier,
		Polygon: polygon,
	}
}

func (p *CompositeProvider) FetchUnderlyingPrice(ctx context.Context, symbol string) (float64, error) {
	return p.Tradier.FetchUnderlyingPrice(ctx, symbol)
}

func (p *CompositeProvider) FetchOptionChains(ctx context.Context, symbol string, minDays, maxDays int) ([]optionmodels.OptionQuote, error) {
	return p.Tradier.FetchOptionChains(ctx, symbol, minDays, maxDays)
}

func (p *CompositeProvider) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	if p.Polygon == nil {
		return nil, fmt.Errorf("CompositeProvider: FetchDailyCloses: no historical bar source configured")
	}

	return p.Polygon.FetchDailyCloses(ctx, symbol, days)
}
