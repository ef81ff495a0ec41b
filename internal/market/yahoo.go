package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultYahooBaseURL = "https://query2.finance.yahoo.com"

// YahooProvider reads the Yahoo Finance v8 chart endpoint.
type YahooProvider struct {
	cli     *http.Client
	baseURL string
}

func NewYahooProvider(cli *http.Client, baseURL string) *YahooProvider {
	if cli == nil {
		cli = httpClient(0)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooProvider{cli: cli, baseURL: baseURL}
}

func (p *YahooProvider) Name() string { return "yahoo" }

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches adjusted daily closes and volumes. Rows with a null
// close are skipped.
func (p *YahooProvider) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("yahoo: empty symbol")
	}
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(day(start).Unix(), 10))
	q.Set("period2", strconv.FormatInt(day(end).AddDate(0, 0, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.baseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "tickerdeck/1.0")

	resp, err := p.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	var raw yahooChart
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo %s: http %d", symbol, resp.StatusCode)
		}
		return nil, fmt.Errorf("yahoo %s: decode: %w", symbol, err)
	}
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %s", symbol, raw.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo %s: http %d", symbol, resp.StatusCode)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	r := raw.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	quote := r.Indicators.Quote[0]
	closes := quote.Close
	if len(r.Indicators.AdjClose) > 0 && len(r.Indicators.AdjClose[0].AdjClose) == len(r.Timestamp) {
		closes = r.Indicators.AdjClose[0].AdjClose
	}

	out := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		d := day(time.Unix(ts+r.Meta.GMTOffset, 0).UTC())
		if !inRange(d, start, end) {
			continue
		}
		vol := math.NaN()
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		out = append(out, Bar{Date: d, Close: *closes[i], Volume: vol})
	}
	return out, nil
}
