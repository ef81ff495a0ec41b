package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// SheetProvider talks to the spreadsheet proxy web app. The proxy evaluates
// a finance formula for the ticker and returns the daily closes as JSON.
type SheetProvider struct {
	cli *http.Client
	url string
}

func NewSheetProvider(cli *http.Client, appURL string) *SheetProvider {
	if cli == nil {
		cli = httpClient(0)
	}
	return &SheetProvider{cli: cli, url: strings.TrimSpace(appURL)}
}

func (p *SheetProvider) Name() string { return "sheet" }

// PricePoint is one row of the proxy's fetch_stock payload.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// SheetResponse is the proxy's JSON envelope.
type SheetResponse struct {
	Status  string       `json:"status,omitempty"`
	Message string       `json:"message,omitempty"`
	Success bool         `json:"success,omitempty"`
	Ticker  string       `json:"ticker,omitempty"`
	Data    []PricePoint `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

var ErrSheetUnavailable = errors.New("sheet proxy did not answer ok")

// Ping runs the proxy's connection test.
func (p *SheetProvider) Ping(ctx context.Context) error {
	var resp SheetResponse
	if err := p.get(ctx, url.Values{"action": {"test"}}, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrSheetUnavailable
	}
	return nil
}

// History asks the proxy for closes. The proxy has no volume data.
func (p *SheetProvider) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	q := url.Values{}
	q.Set("action", "fetch_stock")
	q.Set("ticker", symbol)
	q.Set("start_date", start.Format(time.DateOnly))
	q.Set("end_date", end.Format(time.DateOnly))

	var resp SheetResponse
	if err := p.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("sheet %s: %s", symbol, resp.Error)
	}
	out := make([]Bar, 0, len(resp.Data))
	for _, pt := range resp.Data {
		d, err := time.Parse(time.DateOnly, pt.Date)
		if err != nil {
			continue
		}
		out = append(out, Bar{Date: d, Close: pt.Price, Volume: math.NaN()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (p *SheetProvider) get(ctx context.Context, q url.Values, into *SheetResponse) error {
	if p.url == "" {
		return fmt.Errorf("sheet: no proxy url configured")
	}
	sep := "?"
	if strings.Contains(p.url, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+sep+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := p.cli.Do(req)
	if err != nil {
		return fmt.Errorf("sheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheet: http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("sheet: decode: %w", err)
	}
	return nil
}
