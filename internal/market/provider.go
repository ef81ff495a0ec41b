// Package market fetches daily price and volume history from the
// configured data source.
package market

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// Bar is one daily observation. Volume is NaN when the source does not
// report it.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// HasVolume reports whether the source supplied a volume for this bar.
func (b Bar) HasVolume() bool { return !math.IsNaN(b.Volume) }

// Provider returns daily bars for symbol between start and end, both
// inclusive, ordered by date.
type Provider interface {
	Name() string
	History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)
}

var (
	ErrNoData          = errors.New("no data")
	ErrUnknownProvider = errors.New("unknown market provider")
)

// Options selects and configures a provider.
type Options struct {
	Provider     string
	Timeout      time.Duration
	YahooBaseURL string
	SheetURL     string
	AlpacaKey    string
	AlpacaSecret string
}

// New builds the provider named in opts.
func New(opts Options) (Provider, error) {
	client := httpClient(opts.Timeout)
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "yahoo":
		return NewYahooProvider(client, opts.YahooBaseURL), nil
	case "sheet", "sheets":
		if strings.TrimSpace(opts.SheetURL) == "" {
			return nil, fmt.Errorf("sheet provider: market.sheet_url is empty")
		}
		return NewSheetProvider(client, opts.SheetURL), nil
	case "alpaca":
		return NewAlpacaProvider(opts.AlpacaKey, opts.AlpacaSecret), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

func httpClient(timeout time.Duration) *http.Client {
	c := cleanhttp.DefaultPooledClient()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c.Timeout = timeout
	return c
}

// day truncates t to a UTC calendar date.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inRange(d, start, end time.Time) bool {
	d = day(d)
	return !d.Before(day(start)) && !d.After(day(end))
}
