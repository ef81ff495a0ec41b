package market

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// barsGetter is the slice of the alpaca client we use.
type barsGetter interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaProvider reads daily bars from Alpaca market data on the IEX feed.
// It only covers US equities; futures and FX symbols return no data.
type AlpacaProvider struct {
	client barsGetter
}

func NewAlpacaProvider(key, secret string) *AlpacaProvider {
	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    key,
			APISecret: secret,
			Feed:      marketdata.IEX,
		}),
	}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

func (p *AlpacaProvider) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bars, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     day(start),
		End:       day(end).AddDate(0, 0, 1),
		Feed:      marketdata.IEX,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca %s: %w", symbol, err)
	}
	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		if !inRange(b.Timestamp, start, end) {
			continue
		}
		out = append(out, Bar{Date: day(b.Timestamp), Close: b.Close, Volume: float64(b.Volume)})
	}
	return out, nil
}
