package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/optionscout/wheelscreener/src/indicators"
	"github.com/optionscout/wheelscreener/src/marketdata"
	"github.com/optionscout/wheelscreener/src/optionmodels"
	"github.com/optionscout/wheelscreener/src/screener"
)

// WheelService composes the market-data collaborators with the pricing
// and screening core: fetch the chain, compute the band, screen, rank.
type WheelService struct {
	Provider marketdata.Provider
	Screener *screener.Screener
	Band     *indicators.VolatilityBandCalculator
	Config   *optionmodels.ScreenerConfigYAML
}

func NewWheelService(provider marketdata.Provider) *WheelService {
	return &WheelService{
		Provider: provider,
		Screener: screener.New(),
		Band:     indicators.NewVolatilityBandCalculator(),
	}
}

// LoadConfig reads the per-symbol screening targets file.
func (s *WheelService) LoadConfig(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("WheelService: LoadConfig: failed to read %s: %w", filepath, err)
	}

	var config optionmodels.ScreenerConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("WheelService: LoadConfig: failed to unmarshal %s: %w", filepath, err)
	}

	s.Config = &config

	if config.RiskBands != nil {
		s.Screener.RiskBands = *config.RiskBands
	}

	return nil
}

// PutParams resolves the screening params for a symbol: configured
// targets when present, defaults otherwise.
func (s *WheelService) PutParams(symbol string) optionmodels.PutScreenParams {
	if s.Config != nil {
		if target, err := s.Config.GetSymbol(symbol); err == nil {
			return target.PutParams()
		}
	}

	return optionmodels.DefaultPutScreenParams()
}

func (s *WheelService) CallParams(symbol string) optionmodels.CallScreenParams {
	if s.Config != nil {
		if target, err := s.Config.GetSymbol(symbol); err == nil {
			return target.CallParams()
		}
	}

	return optionmodels.DefaultCallScreenParams()
}

// resolveRate applies the named default when the caller supplied no
// risk-free rate. The fallback is logged so data-quality gaps stay
// visible.
func resolveRate(rate float64, symbol string) float64 {
	if rate > 0 {
		return rate
	}

	log.Warnf("WheelService: no risk-free rate supplied for %s, falling back to default %.3f", symbol, optionmodels.DefaultRiskFreeRate)

	return optionmodels.DefaultRiskFreeRate
}

// ScreenPuts fetches the chain and runs the cash-secured-put pipeline.
func (s *WheelService) ScreenPuts(ctx context.Context, symbol string, params optionmodels.PutScreenParams) (optionmodels.ScreenResult, error) {
	tracer := otel.Tracer("WheelService")
	ctx, span := tracer.Start(ctx, "ScreenPuts")
	defer span.End()

	params.RiskFreeRate = resolveRate(params.RiskFreeRate, symbol)

	underlyingPrice, err := s.Provider.FetchUnderlyingPrice(ctx, symbol)
	if err != nil {
		return optionmodels.ScreenResult{Symbol: symbol, Status: optionmodels.StatusError}, fmt.Errorf("WheelService: ScreenPuts: %w", err)
	}

	quotes, err := s.Provider.FetchOptionChains(ctx, symbol, params.MinDaysToExpiry, params.MaxDaysToExpiry)
	if err != nil {
		return optionmodels.ScreenResult{Symbol: symbol, Status: optionmodels.StatusError}, fmt.Errorf("WheelService: ScreenPuts: %w", err)
	}

	result := s.Screener.ScreenPuts(symbol, quotes, underlyingPrice, params, time.Now())
	result.RequestID = uuid.New()

	if skipped := result.Skipped.Total(); skipped > 0 {
		log.Infof("WheelService: ScreenPuts: %s: %d contracts skipped", symbol, skipped)
	}

	return result, nil
}

// ScreenCalls fetches the chain and recent closes, computes the upper
// volatility band, and runs the covered-call pipeline against it.
func (s *WheelService) ScreenCalls(ctx context.Context, symbol string, params optionmodels.CallScreenParams) (optionmodels.ScreenResult, error) {
	tracer := otel.Tracer("WheelService")
	ctx, span := tracer.Start(ctx, "ScreenCalls")
	defer span.End()

	params.RiskFreeRate = resolveRate(params.RiskFreeRate, symbol)

	underlyingPrice, err := s.Provider.FetchUnderlyingPrice(ctx, symbol)
	if err != nil {
		return optionmodels.ScreenResult{Symbol: symbol, Status: optionmodels.StatusError}, fmt.Errorf("WheelService: ScreenCalls: %w", err)
	}

	band, err := s.VolatilityBand(ctx, symbol, underlyingPrice)
	if err != nil {
		return optionmodels.ScreenResult{Symbol: symbol, Status: optionmodels.StatusError}, fmt.Errorf("WheelService: ScreenCalls: %w", err)
	}

	quotes, err := s.Provider.FetchOptionChains(ctx, symbol, params.MinDaysToExpiry, params.MaxDaysToExpiry)
	if err != nil {
		return optionmodels.ScreenResult{Symbol: symbol, Status: optionmodels.StatusError}, fmt.Errorf("WheelService: ScreenCalls: %w", err)
	}

	result := s.Screener.ScreenCalls(symbol, quotes, underlyingPrice, band, params, time.Now())
	result.RequestID = uuid.New()

	if skipped := result.Skipped.Total(); skipped > 0 {
		log.Infof("WheelService: ScreenCalls: %s: %d contracts skipped", symbol, skipped)
	}

	return result, nil
}

// VolatilityBand recomputes the band from a fresh historical fetch.
// Nothing is cached here: callers wanting caching own it.
func (s *WheelService) VolatilityBand(ctx context.Context, symbol string, spot float64) (optionmodels.VolatilityBand, error) {
	closes, err := s.Provider.FetchDailyCloses(ctx, symbol, s.Band.Period)
	if err != nil {
		return optionmodels.VolatilityBand{}, fmt.Errorf("WheelService: VolatilityBand: %w", err)
	}

	band, err := s.Band.Compute(symbol, closes, spot, time.Now())
	if err != nil {
		return optionmodels.VolatilityBand{}, fmt.Errorf("WheelService: VolatilityBand: %w", err)
	}

	return band, nil
}
