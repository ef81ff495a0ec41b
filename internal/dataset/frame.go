// Package dataset merges per-indicator series into one date-indexed table
// and renders it for previews, charts and CSV export.
package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jask/tickerdeck/internal/market"
)

// Kind tags what a column measures.
type Kind string

const (
	Price  Kind = "price"
	Volume Kind = "volume"
)

// Features selects which kinds of column to collect.
type Features struct {
	Price  bool `json:"price"`
	Volume bool `json:"volume"`
}

func (f Features) Any() bool { return f.Price || f.Volume }

// ParseFeatures accepts "price"/"volume" (any case) and the Korean
// labels used by older clients.
func ParseFeatures(names []string) Features {
	var f Features
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "price", "close", "가격":
			f.Price = true
		case "volume", "거래량":
			f.Volume = true
		}
	}
	return f
}

// Column is one series. Missing observations are NaN.
type Column struct {
	Name   string
	Label  string
	Kind   Kind
	Values []float64
}

// Label formats a column header, e.g. "Gold (Price)".
func Label(name string, kind Kind) string {
	if kind == Volume {
		return name + " (Volume)"
	}
	return name + " (Price)"
}

// Series is the fetched history of one indicator.
type Series struct {
	Name string
	Bars []market.Bar
}

// Frame is a table indexed by ascending date.
type Frame struct {
	Dates   []time.Time
	Columns []Column
}

// Merge joins series on the union of their dates. Each series contributes a
// price and/or volume column per features. Rows where every cell is missing
// are dropped.
func Merge(series []Series, features Features) Frame {
	dateSet := make(map[time.Time]struct{})
	for _, s := range series {
		for _, b := range s.Bars {
			dateSet[b.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	pos := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		pos[d] = i
	}

	var cols []Column
	for _, s := range series {
		if features.Price {
			c := newColumn(s.Name, Price, len(dates))
			for _, b := range s.Bars {
				c.Values[pos[b.Date]] = b.Close
			}
			cols = append(cols, c)
		}
		if features.Volume {
			c := newColumn(s.Name, Volume, len(dates))
			for _, b := range s.Bars {
				c.Values[pos[b.Date]] = b.Volume
			}
			cols = append(cols, c)
		}
	}
	return Frame{Dates: dates, Columns: cols}.dropEmptyRows()
}

func newColumn(name string, kind Kind, n int) Column {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return Column{Name: name, Label: Label(name, kind), Kind: kind, Values: vals}
}

func (f Frame) dropEmptyRows() Frame {
	keep := make([]int, 0, len(f.Dates))
	for i := range f.Dates {
		for _, c := range f.Columns {
			if !math.IsNaN(c.Values[i]) {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == len(f.Dates) {
		return f
	}
	out := Frame{Dates: make([]time.Time, len(keep)), Columns: make([]Column, len(f.Columns))}
	for j, i := range keep {
		out.Dates[j] = f.Dates[i]
	}
	for ci, c := range f.Columns {
		nc := c
		nc.Values = make([]float64, len(keep))
		for j, i := range keep {
			nc.Values[j] = c.Values[i]
		}
		out.Columns[ci] = nc
	}
	return out
}

func (f Frame) Rows() int { return len(f.Dates) }

func (f Frame) Labels() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Label
	}
	return out
}

// HasKind reports whether any column is of kind k.
func (f Frame) HasKind(k Kind) bool {
	for _, c := range f.Columns {
		if c.Kind == k {
			return true
		}
	}
	return false
}

// Filename is the export name for a date range.
func Filename(start, end time.Time) string {
	return fmt.Sprintf("financial_data_%s_%s.csv", start.Format("2006_01_02"), end.Format("2006_01_02"))
}
