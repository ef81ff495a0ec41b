package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/database"
	"github.com/jask/tickerdeck/internal/database/repository"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/market"
)

type fakeProvider struct {
	mu    sync.Mutex
	bars  map[string][]market.Bar
	fail  map[string]error
	calls []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) History(_ context.Context, symbol string, start, end time.Time) ([]market.Bar, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()
	if err := f.fail[symbol]; err != nil {
		return nil, err
	}
	var out []market.Bar
	for _, b := range f.bars[symbol] {
		if !b.Date.Before(start) && !b.Date.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func d(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[catalog.Category][]catalog.Entry{
		catalog.Commodities: {{Name: "Gold", Symbol: "GC=F"}, {Name: "Silver", Symbol: "SI=F"}},
		catalog.Stocks:      {{Name: "Apple", Symbol: "AAPL"}, {Name: "NVIDIA", Symbol: "NVDA"}},
		catalog.Exchange:    {{Name: "USD/KRW", Symbol: "KRW=X"}},
	})
}

func newCollector(t *testing.T, p market.Provider, withDB bool) *Collector {
	t.Helper()
	c := &Collector{
		Catalog:     testCatalog(),
		Provider:    p,
		DataDir:     filepath.Join(t.TempDir(), "data"),
		Concurrency: 2,
		Now:         func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	if withDB {
		db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		c.Records = repository.NewExportRepo(db)
	}
	return c
}

func goldAndApple() *fakeProvider {
	return &fakeProvider{bars: map[string][]market.Bar{
		"GC=F": {
			{Date: d("2024-01-02"), Close: 2060.5, Volume: 100},
			{Date: d("2024-01-03"), Close: 2041, Volume: 120},
			{Date: d("2024-01-04"), Close: 2049.25, Volume: 90},
		},
		"AAPL": {
			{Date: d("2024-01-03"), Close: 184.25, Volume: 5e7},
			{Date: d("2024-01-05"), Close: 181.18, Volume: math.NaN()},
		},
	}}
}

func TestDownloadWritesAndRecordsExport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newCollector(t, goldAndApple(), true)
	res, err := c.Download(ctx, Request{
		Start: "2024-01-01",
		End:   "2024-01-31",
		Selections: map[catalog.Category][]string{
			catalog.Stocks:      {"Apple"},
			catalog.Commodities: {"Gold"},
		},
		Features: dataset.Features{Price: true},
	})
	require.NoError(t, err)
	require.Equal(t, "financial_data_2024_01_01_2024_01_31.csv", res.Filename)
	require.Equal(t, 4, res.Rows)
	require.Equal(t, 2, res.Columns)
	require.Equal(t, []string{"Gold (Price)", "Apple (Price)"}, res.Preview.Columns)
	require.Equal(t, []ItemResult{
		{Name: "Gold", Code: "GC=F", Count: 3},
		{Name: "Apple", Code: "AAPL", Count: 2},
	}, res.Results)
	require.Empty(t, res.Errors)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\ufeffDate,Gold (Price),Apple (Price)"))

	rec, err := c.Records.ByFilename(ctx, res.Filename)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, []string{"Gold", "Apple"}, rec.Indicators)
	require.Equal(t, 4, rec.Rows)

	files, err := c.Exports(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, res.Filename, files[0].Name)
	require.Equal(t, 4, files[0].Rows)
}

func TestDownloadResolvesAliasesOnce(t *testing.T) {
	t.Parallel()

	p := goldAndApple()
	c := newCollector(t, p, false)
	c.Catalog = catalog.New(map[catalog.Category][]catalog.Entry{
		catalog.Commodities: {{Name: "Gold", Symbol: "GC=F", Aliases: []string{"금"}}},
	})
	res, err := c.Download(context.Background(), Request{
		Start:      "2024-01-01",
		End:        "2024-01-31",
		Selections: map[catalog.Category][]string{catalog.Commodities: {"금", "Gold"}},
		Features:   dataset.Features{Price: true},
	})
	require.NoError(t, err)
	require.Equal(t, []ItemResult{{Name: "Gold", Code: "GC=F", Count: 3}}, res.Results)
	require.Equal(t, []string{"Gold (Price)"}, res.Preview.Columns)
	require.Equal(t, []string{"GC=F"}, p.calls)
}

func TestDownloadValidation(t *testing.T) {
	t.Parallel()

	gold := map[catalog.Category][]string{catalog.Commodities: {"Gold"}}
	price := dataset.Features{Price: true}
	cases := []struct {
		name string
		req  Request
		msg  string
	}{
		{"bad start", Request{Start: "2024/01/01", End: "2024-01-31", Selections: gold, Features: price}, "start date"},
		{"bad end", Request{Start: "2024-01-01", End: "", Selections: gold, Features: price}, "end date"},
		{"reversed", Request{Start: "2024-02-01", End: "2024-01-31", Selections: gold, Features: price}, "after end"},
		{"future", Request{Start: "2024-01-01", End: "2024-03-02", Selections: gold, Features: price}, "future"},
		{"no features", Request{Start: "2024-01-01", End: "2024-01-31", Selections: gold}, "price or volume"},
		{"no indicators", Request{Start: "2024-01-01", End: "2024-01-31", Features: price}, "at least one indicator"},
		{"only unknown", Request{
			Start:      "2024-01-01",
			End:        "2024-01-31",
			Selections: map[catalog.Category][]string{catalog.Stocks: {"NVIDAI"}},
			Features:   price,
		}, `did you mean "NVIDIA"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{}
			c := newCollector(t, p, false)
			_, err := c.Download(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidRequest)
			require.Contains(t, err.Error(), tc.msg)
			require.Empty(t, p.calls)
		})
	}
}

func TestDownloadEndDateTodayIsAllowed(t *testing.T) {
	t.Parallel()

	c := newCollector(t, goldAndApple(), false)
	_, err := c.Download(context.Background(), Request{
		Start:      "2024-01-01",
		End:        "2024-03-01",
		Selections: map[catalog.Category][]string{catalog.Commodities: {"Gold"}},
		Features:   dataset.Features{Price: true},
	})
	require.NoError(t, err)
}

func TestDownloadReportsItemErrors(t *testing.T) {
	t.Parallel()

	p := goldAndApple()
	p.fail = map[string]error{"NVDA": errors.New("boom")}
	c := newCollector(t, p, false)
	res, err := c.Download(context.Background(), Request{
		Start: "2024-01-01",
		End:   "2024-01-31",
		Selections: map[catalog.Category][]string{
			catalog.Commodities: {"Gold", "Silver", "Gold", "Platinum"},
			catalog.Stocks:      {"NVIDIA"},
		},
		Features: dataset.Features{Price: true, Volume: true},
	})
	require.NoError(t, err)
	require.Equal(t, []ItemResult{{Name: "Gold", Code: "GC=F", Count: 3}}, res.Results)
	require.Equal(t, []ItemError{
		{Name: "Silver", Code: "SI=F", Message: "no data"},
		{Name: "NVIDIA", Code: "NVDA", Message: "boom"},
	}, res.Errors)
	require.Equal(t, []string{"Gold (Price)", "Gold (Volume)"}, res.Preview.Columns)
	require.ElementsMatch(t, []string{"GC=F", "SI=F", "NVDA"}, p.calls)
}

func TestDownloadNoData(t *testing.T) {
	t.Parallel()

	p := goldAndApple()
	c := newCollector(t, p, false)
	res, err := c.Download(context.Background(), Request{
		Start:      "2023-01-01",
		End:        "2023-01-31",
		Selections: map[catalog.Category][]string{catalog.Commodities: {"Gold"}},
		Features:   dataset.Features{Price: true},
	})
	require.ErrorIs(t, err, ErrNoData)
	require.Equal(t, []ItemError{{Name: "Gold", Code: "GC=F", Message: "no data"}}, res.Errors)
	_, statErr := os.Stat(c.DataDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestDownloadCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newCollector(t, goldAndApple(), false)
	_, err := c.Download(ctx, Request{
		Start:      "2024-01-01",
		End:        "2024-01-31",
		Selections: map[catalog.Category][]string{catalog.Commodities: {"Gold"}},
		Features:   dataset.Features{Price: true},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeleteAndOpenExports(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newCollector(t, goldAndApple(), true)
	res, err := c.Download(ctx, Request{
		Start:      "2024-01-01",
		End:        "2024-01-31",
		Selections: map[catalog.Category][]string{catalog.Commodities: {"Gold"}},
		Features:   dataset.Features{Price: true},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(c.DataDir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(c.DataDir, "manual.csv"), []byte("a,b\n"), 0o600))

	path, err := c.OpenExport(res.Filename)
	require.NoError(t, err)
	require.Equal(t, res.Path, path)

	for _, bad := range []string{"", "..", "../x.csv", "a/b.csv", `a\b.csv`} {
		_, err := c.OpenExport(bad)
		require.ErrorIs(t, err, ErrInvalidRequest, bad)
	}
	_, err = c.OpenExport("missing.csv")
	require.ErrorIs(t, err, ErrNotFound)

	del, err := c.DeleteExports(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, del.Deleted)
	require.Empty(t, del.Errors)

	files, err := c.Exports(ctx)
	require.NoError(t, err)
	require.Empty(t, files)
	for _, kept := range []string{"notes.txt", "manual.csv"} {
		_, err = os.Stat(filepath.Join(c.DataDir, kept))
		require.NoError(t, err)
	}

	rec, err := c.Records.ByFilename(ctx, res.Filename)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestQuote(t *testing.T) {
	t.Parallel()

	c := newCollector(t, goldAndApple(), false)
	pts, err := c.Quote(context.Background(), " AAPL ", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Equal(t, []market.PricePoint{
		{Date: "2024-01-03", Price: 184.25},
		{Date: "2024-01-05", Price: 181.18},
	}, pts)

	_, err = c.Quote(context.Background(), "", "2024-01-01", "2024-01-31")
	require.ErrorIs(t, err, ErrInvalidRequest)
	_, err = c.Quote(context.Background(), "TSLA", "2024-01-01", "2024-01-31")
	require.ErrorIs(t, err, market.ErrNoData)
	_, err = c.Quote(context.Background(), "AAPL", "01/01/2024", "2024-01-31")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestQuoteSkipsRangePolicy(t *testing.T) {
	t.Parallel()

	p := goldAndApple()
	c := newCollector(t, p, false)

	// end date after the collector's today
	pts, err := c.Quote(context.Background(), "AAPL", "2024-01-01", "2030-12-31")
	require.NoError(t, err)
	require.Len(t, pts, 2)

	_, err = c.Quote(context.Background(), "AAPL", "2024-02-01", "2024-01-01")
	require.ErrorIs(t, err, market.ErrNoData)
	require.Equal(t, []string{"AAPL"}, p.calls, "an inverted range never reaches the provider")
}
