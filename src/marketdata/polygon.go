package marketdata

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"
)

// PolygonClient fetches historical daily bars used by the volatility
// band calculator.
type PolygonClient struct {
	Client *polygon.Client
}

func NewPolygonClient(apiKey string) *PolygonClient {
	return &PolygonClient{
		Client: polygon.New(apiKey),
	}
}

// FetchDailyCloses returns up to `days` most recent daily closes for
// the symbol, oldest first. The lookback window is doubled on the
// calendar to absorb weekends and holidays.
func (p *PolygonClient) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	if days <= 0 {
		return nil, fmt.Errorf("PolygonClient: FetchDailyCloses: days must be positive, got %d", days)
	}

	to := time.Now()
	from := to.AddDate(0, 0, -2*days)

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithOrder(models.Asc).WithAdjusted(true)

	iter := p.Client.ListAggs(ctx, params)

	var closes []float64
	for iter.Next() {
		closes = append(closes, iter.Item().Close)
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonClient: FetchDailyCloses: failed to list aggs for %s: %w", symbol, err)
	}

	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}

	log.Debugf("PolygonClient: FetchDailyCloses: %d closes for %s", len(closes), symbol)

	return closes, nil
}
