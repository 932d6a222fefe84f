package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/optionscout/wheelscreener/src/optionmodels"
)

// TradierClient fetches underlying quotes and option chains, greeks
// included, from the Tradier market-data API.
type TradierClient struct {
	BaseURL string
	Token   string
	client  http.Client
}

func NewTradierClient(baseURL, token string) *TradierClient {
	return &TradierClient{
		BaseURL: baseURL,
		Token:   token,
		client: http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TradierClient) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("TradierClient: get: failed to parse base URL: %w", err)
	}
	parsedURL.Path = path.Join(parsedURL.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return fmt.Errorf("TradierClient: get: failed to create request: %w", err)
	}

	req.URL.RawQuery = query.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("TradierClient: get: failed to fetch %s: %w", endpoint, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("TradierClient: get: failed to fetch %s, http code %v", endpoint, res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("TradierClient: get: failed to decode json: %w", err)
	}

	return nil
}

func (c *TradierClient) FetchUnderlyingPrice(ctx context.Context, symbol string) (float64, error) {
	query := url.Values{}
	query.Add("symbols", symbol)

	var dto optionmodels.TradierUnderlyingQuoteDTO
	if err := c.get(ctx, "markets/quotes", query, &dto); err != nil {
		return 0, fmt.Errorf("FetchUnderlyingPrice: %w", err)
	}

	quote := dto.Quotes.Quote
	if quote.Bid > 0 && quote.Ask > 0 {
		return (quote.Bid + quote.Ask) / 2, nil
	}

	if quote.LastPrice <= 0 {
		return 0, fmt.Errorf("FetchUnderlyingPrice: no usable price for %s", symbol)
	}

	return quote.LastPrice, nil
}

func (c *TradierClient) fetchExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	query := url.Values{}
	query.Add("symbol", symbol)
	query.Add("includeAllRoots", "true")

	var dto optionmodels.TradierExpirationsDTO
	if err := c.get(ctx, "markets/options/expirations", query, &dto); err != nil {
		return nil, fmt.Errorf("fetchExpirations: %w", err)
	}

	expirations := make([]time.Time, 0, len(dto.Expirations.Date))
	for _, date := range dto.Expirations.Date {
		expiration, err := time.Parse("2006-01-02", date)
		if err != nil {
			log.Errorf("fetchExpirations: failed to parse expiration date %s: %v", date, err)
			continue
		}

		expirations = append(expirations, expiration)
	}

	return expirations, nil
}

func (c *TradierClient) fetchChain(ctx context.Context, symbol string, expiration time.Time) ([]optionmodels.OptionQuote, error) {
	query := url.Values{}
	query.Add("symbol", symbol)
	query.Add("expiration", expiration.Format("2006-01-02"))
	query.Add("greeks", "true")

	var dto optionmodels.TradierOptionChainDTO
	if err := c.get(ctx, "markets/options/chains", query, &dto); err != nil {
		return nil, fmt.Errorf("fetchChain: %w", err)
	}

	quotes, err := dto.ToModel()
	if err != nil {
		return nil, fmt.Errorf("fetchChain: %w", err)
	}

	return quotes, nil
}

// FetchOptionChains concatenates the chains of every expiration inside
// the requested day window. A failed expiration is logged and skipped
// so one bad chain does not lose the rest.
func (c *TradierClient) FetchOptionChains(ctx context.Context, symbol string, minDays, maxDays int) ([]optionmodels.OptionQuote, error) {
	expirations, err := c.fetchExpirations(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChains: %w", err)
	}

	now := time.Now()

	var quotes []optionmodels.OptionQuote
	for _, expiration := range expirations {
		days := int(expiration.Sub(now).Hours() / 24)
		if days < minDays || (maxDays > 0 && days > maxDays) {
			continue
		}

		chain, err := c.fetchChain(ctx, symbol, expiration)
		if err != nil {
			log.Errorf("FetchOptionChains: %s %s: %v", symbol, expiration.Format("2006-01-02"), err)
			continue
		}

		quotes = append(quotes, chain...)
	}

	log.Infof("FetchOptionChains: fetched %d contracts for %s", len(quotes), symbol)

	return quotes, nil
}
