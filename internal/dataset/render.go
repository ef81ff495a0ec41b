package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"
)

const (
	PreviewDateLayout = "06-01-02"
	CSVDateLayout     = "2006-01-02"

	DefaultPreviewRows = 5
	DefaultChartPoints = 1000
)

// Preview is the last rows of a frame. Missing cells are nil.
type Preview struct {
	Columns []string     `json:"columns"`
	Dates   []string     `json:"dates"`
	Rows    [][]*float64 `json:"rows"`
}

// Tail returns the last n rows.
func (f Frame) Tail(n int) Preview {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	from := max(0, len(f.Dates)-n)
	p := Preview{Columns: f.Labels()}
	for i := from; i < len(f.Dates); i++ {
		p.Dates = append(p.Dates, f.Dates[i].Format(PreviewDateLayout))
		row := make([]*float64, len(f.Columns))
		for ci, c := range f.Columns {
			if v := c.Values[i]; !math.IsNaN(v) {
				row[ci] = &v
			}
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

// ChartSeries is one line of the chart payload.
type ChartSeries struct {
	Label  string    `json:"label"`
	Kind   Kind      `json:"kind"`
	Values []float64 `json:"values"`
}

// ChartData is the chart payload: shared date axis plus one series per
// column.
type ChartData struct {
	Dates  []string      `json:"dates"`
	Times  []time.Time   `json:"-"`
	Series []ChartSeries `json:"series"`
}

// Sample thins the frame to roughly maxPoints rows by taking every
// len/maxPoints-th row. Missing cells become 0.
func (f Frame) Sample(maxPoints int) ChartData {
	if maxPoints <= 0 {
		maxPoints = DefaultChartPoints
	}
	step := 1
	if len(f.Dates) > maxPoints {
		step = max(1, len(f.Dates)/maxPoints)
	}
	var idx []int
	for i := 0; i < len(f.Dates); i += step {
		idx = append(idx, i)
	}
	out := ChartData{
		Dates:  make([]string, len(idx)),
		Times:  make([]time.Time, len(idx)),
		Series: make([]ChartSeries, len(f.Columns)),
	}
	for j, i := range idx {
		out.Dates[j] = f.Dates[i].Format(PreviewDateLayout)
		out.Times[j] = f.Dates[i]
	}
	for ci, c := range f.Columns {
		vals := make([]float64, len(idx))
		for j, i := range idx {
			if v := c.Values[i]; !math.IsNaN(v) {
				vals[j] = v
			}
		}
		out.Series[ci] = ChartSeries{Label: c.Label, Kind: c.Kind, Values: vals}
	}
	return out
}

// utf8BOM keeps spreadsheet apps from guessing a legacy encoding for
// non-ASCII indicator names.
const utf8BOM = "\ufeff"

// WriteCSV writes the frame with a Date column first. Missing cells are
// left empty.
func (f Frame) WriteCSV(w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Date"}, f.Labels()...)); err != nil {
		return err
	}
	rec := make([]string, len(f.Columns)+1)
	for i, d := range f.Dates {
		rec[0] = d.Format(CSVDateLayout)
		for ci, c := range f.Columns {
			v := c.Values[i]
			if math.IsNaN(v) {
				rec[ci+1] = ""
				continue
			}
			rec[ci+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
