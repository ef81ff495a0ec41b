package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tickerdeck/internal/market"
)

func d(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleSeries() []Series {
	return []Series{
		{Name: "Gold", Bars: []market.Bar{
			{Date: d("2024-01-02"), Close: 2064.4, Volume: 120},
			{Date: d("2024-01-03"), Close: 2034.2, Volume: 98},
		}},
		{Name: "KRW/USD", Bars: []market.Bar{
			{Date: d("2024-01-01"), Close: 1288.1, Volume: math.NaN()},
			{Date: d("2024-01-03"), Close: 1305.9, Volume: math.NaN()},
		}},
	}
}

func TestMergeUnionOfDates(t *testing.T) {
	f := Merge(sampleSeries(), Features{Price: true})
	require.Equal(t, []time.Time{d("2024-01-01"), d("2024-01-02"), d("2024-01-03")}, f.Dates)
	require.Equal(t, []string{"Gold (Price)", "KRW/USD (Price)"}, f.Labels())
	require.True(t, math.IsNaN(f.Columns[0].Values[0]))
	require.InDelta(t, 1305.9, f.Columns[1].Values[2], 1e-9)
	require.False(t, f.HasKind(Volume))
}

func TestMergeDropsAllEmptyRows(t *testing.T) {
	f := Merge(sampleSeries(), Features{Volume: true})
	// KRW/USD has no volume, so 2024-01-01 is empty everywhere
	require.Equal(t, []time.Time{d("2024-01-02"), d("2024-01-03")}, f.Dates)
	require.Equal(t, []string{"Gold (Volume)", "KRW/USD (Volume)"}, f.Labels())
	require.Equal(t, Volume, f.Columns[0].Kind)
	require.Len(t, f.Columns[1].Values, 2)
}

func TestMergeBothFeaturesOrdersColumnsPerSeries(t *testing.T) {
	f := Merge(sampleSeries(), Features{Price: true, Volume: true})
	require.Equal(t, []string{"Gold (Price)", "Gold (Volume)", "KRW/USD (Price)", "KRW/USD (Volume)"}, f.Labels())
	require.True(t, f.HasKind(Price))
	require.True(t, f.HasKind(Volume))
}

func TestTail(t *testing.T) {
	f := Merge(sampleSeries(), Features{Price: true})
	p := f.Tail(2)
	require.Equal(t, []string{"24-01-02", "24-01-03"}, p.Dates)
	require.Nil(t, p.Rows[0][1])
	require.InDelta(t, 2064.4, *p.Rows[0][0], 1e-9)

	all := f.Tail(50)
	require.Len(t, all.Rows, 3)
}

func TestSampleCapsPoints(t *testing.T) {
	var bars []market.Bar
	start := d("2020-01-01")
	for i := 0; i < 2500; i++ {
		bars = append(bars, market.Bar{Date: start.AddDate(0, 0, i), Close: float64(i), Volume: math.NaN()})
	}
	f := Merge([]Series{{Name: "X", Bars: bars}}, Features{Price: true, Volume: true})
	c := f.Sample(1000)
	// step = 2500/1000 = 2
	require.Len(t, c.Dates, 1250)
	require.Equal(t, "20-01-01", c.Dates[0])
	require.InDelta(t, 2, c.Series[0].Values[1], 1e-9)
	require.Equal(t, Volume, c.Series[1].Kind)
	require.Zero(t, c.Series[1].Values[0], "missing cells become zero")
}

func TestSampleSmallFrameUntouched(t *testing.T) {
	f := Merge(sampleSeries(), Features{Price: true})
	c := f.Sample(1000)
	require.Len(t, c.Dates, 3)
	require.Len(t, c.Times, 3)
}

func TestWriteCSV(t *testing.T) {
	f := Merge(sampleSeries(), Features{Price: true})
	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))
	out := strings.TrimPrefix(buf.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{
		"Date,Gold (Price),KRW/USD (Price)",
		"2024-01-01,,1288.1",
		"2024-01-02,2064.4,",
		"2024-01-03,2034.2,1305.9",
	}, lines)
}

func TestFilename(t *testing.T) {
	require.Equal(t, "financial_data_2024_01_01_2024_03_31.csv", Filename(d("2024-01-01"), d("2024-03-31")))
}

func TestParseFeatures(t *testing.T) {
	require.Equal(t, Features{Price: true}, ParseFeatures([]string{"Price"}))
	require.Equal(t, Features{Price: true, Volume: true}, ParseFeatures([]string{"가격", "거래량"}))
	require.False(t, ParseFeatures(nil).Any())
}
