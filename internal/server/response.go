package server

import (
	"bytes"
	"encoding/json"

	"github.com/jask/tickerdeck/internal/service"
)

// record is a JSON object whose keys keep column order, so browser clients
// iterating Object.keys see the CSV layout.
type record struct {
	keys   []string
	values []any
}

func (r record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// downloadResponse is the body of a successful POST /api/download, in the
// layout the browser front end reads.
type downloadResponse struct {
	Success      bool                 `json:"success"`
	Filename     string               `json:"filename"`
	Filepath     string               `json:"filepath"`
	TotalRows    int                  `json:"total_rows"`
	TotalColumns int                  `json:"total_columns"`
	PreviewDates []string             `json:"preview_dates"`
	Preview      []record             `json:"preview"`
	ChartDates   []string             `json:"chart_dates"`
	ChartData    record               `json:"chart_data"`
	Results      []service.ItemResult `json:"results"`
	Errors       []service.ItemError  `json:"errors"`
}

func newDownloadResponse(res service.Result) downloadResponse {
	out := downloadResponse{
		Success:      true,
		Filename:     res.Filename,
		Filepath:     res.Path,
		TotalRows:    res.Rows,
		TotalColumns: res.Columns,
		PreviewDates: nonNil(res.Preview.Dates),
		Preview:      make([]record, len(res.Preview.Rows)),
		ChartDates:   nonNil(res.Chart.Dates),
		Results:      res.Results,
		Errors:       res.Errors,
	}
	for i, row := range res.Preview.Rows {
		r := record{keys: res.Preview.Columns, values: make([]any, len(row))}
		for ci, v := range row {
			if v != nil {
				r.values[ci] = *v
			}
		}
		out.Preview[i] = r
	}
	for _, s := range res.Chart.Series {
		out.ChartData.keys = append(out.ChartData.keys, s.Label)
		out.ChartData.values = append(out.ChartData.values, s.Values)
	}
	if out.Results == nil {
		out.Results = []service.ItemResult{}
	}
	if out.Errors == nil {
		out.Errors = []service.ItemError{}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
