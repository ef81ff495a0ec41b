package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jask/tickerdeck/internal/market"
)

// Quote returns the close series of a raw ticker, in the shape the
// spreadsheet proxy answers fetch_stock with. Like the proxy, it only checks
// the date format: a future end date is passed through and an inverted
// range yields no data.
func (c *Collector) Quote(ctx context.Context, ticker, start, end string) ([]market.PricePoint, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is empty", ErrInvalidRequest)
	}
	from, err := time.Parse(time.DateOnly, strings.TrimSpace(start))
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalidRequest, start)
	}
	to, err := time.Parse(time.DateOnly, strings.TrimSpace(end))
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalidRequest, end)
	}
	if from.After(to) {
		return nil, market.ErrNoData
	}
	bars, err := c.Provider.History(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, market.ErrNoData
	}
	out := make([]market.PricePoint, len(bars))
	for i, b := range bars {
		out[i] = market.PricePoint{Date: b.Date.Format(time.DateOnly), Price: b.Close}
	}
	return out, nil
}
