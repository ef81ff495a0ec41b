package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/database/repository"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/market"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoData         = errors.New("no data collected")
)

// Request is one download run. Dates are YYYY-MM-DD.
type Request struct {
	Start      string                        `json:"start_date"`
	End        string                        `json:"end_date"`
	Selections map[catalog.Category][]string `json:"indicators"`
	Features   dataset.Features              `json:"features"`
}

// ItemResult reports one indicator that returned data.
type ItemResult struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ItemError reports one indicator that did not.
type ItemError struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Result is what a successful download produced.
type Result struct {
	Filename string            `json:"filename"`
	Path     string            `json:"-"`
	Rows     int               `json:"rows"`
	Columns  int               `json:"columns"`
	Preview  dataset.Preview   `json:"preview"`
	Chart    dataset.ChartData `json:"chart_data"`
	Results  []ItemResult      `json:"results"`
	Errors   []ItemError       `json:"errors"`

	Frame dataset.Frame `json:"-"`
}

// Collector fetches indicator histories and turns them into CSV exports.
type Collector struct {
	Catalog  *catalog.Catalog
	Provider market.Provider
	Records  *repository.ExportRepo // optional
	DataDir  string

	Concurrency int
	PreviewRows int
	ChartPoints int

	// Now is the clock used for the end date check.
	Now func() time.Time
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

type pick struct {
	cat   catalog.Category
	entry catalog.Entry
}

// Download validates req, fetches every known indicator and writes the
// merged frame to the data directory. On ErrNoData the returned Result still
// carries the per-item errors.
func (c *Collector) Download(ctx context.Context, req Request) (Result, error) {
	start, end, err := c.parseRange(req.Start, req.End)
	if err != nil {
		return Result{}, err
	}
	if !req.Features.Any() {
		return Result{}, fmt.Errorf("%w: select at least one of price or volume", ErrInvalidRequest)
	}
	picks, err := c.resolve(req.Selections)
	if err != nil {
		return Result{}, err
	}

	series, results, itemErrs, err := c.fetch(ctx, picks, start, end)
	if err != nil {
		return Result{}, err
	}
	if len(series) == 0 {
		return Result{Errors: itemErrs}, ErrNoData
	}

	frame := dataset.Merge(series, req.Features)
	if frame.Rows() == 0 {
		return Result{Results: results, Errors: itemErrs}, ErrNoData
	}

	name := dataset.Filename(start, end)
	path, err := c.writeCSV(name, frame)
	if err != nil {
		return Result{}, err
	}

	if c.Records != nil {
		names := make([]string, len(series))
		for i, s := range series {
			names[i] = s.Name
		}
		if _, err := c.Records.Record(ctx, repository.Export{
			Filename:   name,
			Path:       path,
			StartDate:  req.Start,
			EndDate:    req.End,
			Indicators: names,
			Rows:       frame.Rows(),
			Columns:    len(frame.Columns),
		}); err != nil {
			return Result{}, fmt.Errorf("record export: %w", err)
		}
	}

	return Result{
		Filename: name,
		Path:     path,
		Rows:     frame.Rows(),
		Columns:  len(frame.Columns),
		Preview:  frame.Tail(c.PreviewRows),
		Chart:    frame.Sample(c.ChartPoints),
		Results:  results,
		Errors:   itemErrs,
		Frame:    frame,
	}, nil
}

func (c *Collector) parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalidRequest, startStr)
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalidRequest, endStr)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date is after end date", ErrInvalidRequest)
	}
	today, _ := time.Parse(time.DateOnly, c.now().Format(time.DateOnly))
	if end.After(today) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date cannot be in the future", ErrInvalidRequest)
	}
	return start, end, nil
}

// resolve maps selections to catalog entries in category order. Unknown
// identifiers are skipped; if nothing is left the error names the closest
// known identifier.
func (c *Collector) resolve(sel map[catalog.Category][]string) ([]pick, error) {
	var picks []pick
	var unknown []string
	hint := ""
	total := 0
	for _, cat := range catalog.Categories {
		seen := make(map[string]bool)
		for _, name := range sel[cat] {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			total++
			e, ok := c.Catalog.Lookup(cat, name)
			if !ok {
				unknown = append(unknown, name)
				if s, ok := c.Catalog.Suggest(cat, name); ok && hint == "" {
					hint = fmt.Sprintf(" (did you mean %q?)", s)
				}
				continue
			}
			// an alias and its name resolve to one entry
			if e.Name != name {
				if seen[e.Name] {
					continue
				}
				seen[e.Name] = true
			}
			picks = append(picks, pick{cat: cat, entry: e})
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: select at least one indicator", ErrInvalidRequest)
	}
	if len(picks) == 0 {
		return nil, fmt.Errorf("%w: unknown indicators %s%s", ErrInvalidRequest, strings.Join(unknown, ", "), hint)
	}
	if len(unknown) > 0 {
		log.Printf("collector: skipping unknown indicators: %s", strings.Join(unknown, ", "))
	}
	return picks, nil
}

// fetch runs the provider for each pick with bounded concurrency. Per-item
// failures are reported, not returned; only cancellation aborts the run.
func (c *Collector) fetch(ctx context.Context, picks []pick, start, end time.Time) ([]dataset.Series, []ItemResult, []ItemError, error) {
	bars := make([][]market.Bar, len(picks))
	errs := make([]error, len(picks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.Concurrency))
	for i, p := range picks {
		g.Go(func() error {
			b, err := c.Provider.History(gctx, p.entry.Symbol, start, end)
			if err == nil && len(b) == 0 {
				err = market.ErrNoData
			}
			bars[i], errs[i] = b, err
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	var (
		series  []dataset.Series
		results []ItemResult
		items   []ItemError
		merr    *multierror.Error
	)
	for i, p := range picks {
		if errs[i] != nil {
			msg := errs[i].Error()
			if errors.Is(errs[i], market.ErrNoData) {
				msg = "no data"
			}
			items = append(items, ItemError{Name: p.entry.Name, Code: p.entry.Symbol, Message: msg})
			merr = multierror.Append(merr, fmt.Errorf("%s (%s): %w", p.entry.Name, p.entry.Symbol, errs[i]))
			continue
		}
		series = append(series, dataset.Series{Name: p.entry.Name, Bars: bars[i]})
		results = append(results, ItemResult{Name: p.entry.Name, Code: p.entry.Symbol, Count: len(bars[i])})
	}
	if err := merr.ErrorOrNil(); err != nil {
		log.Printf("collector: %v", err)
	}
	return series, results, items, nil
}

func (c *Collector) writeCSV(name string, frame dataset.Frame) (string, error) {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(c.DataDir, name)
	tmp, err := os.CreateTemp(c.DataDir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := frame.WriteCSV(tmp); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
