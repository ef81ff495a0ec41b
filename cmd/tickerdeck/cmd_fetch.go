package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/service"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download indicators and write a CSV export",
	Example: `  tickerdeck fetch --stocks Apple,NVIDIA --commodities Gold --start 2024-01-01
  tickerdeck fetch --exchange "KRW/USD" --features price,volume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		flags := cmd.Flags()
		start, _ := flags.GetString("start")
		end, _ := flags.GetString("end")
		commodities, _ := flags.GetStringSlice("commodities")
		stocks, _ := flags.GetStringSlice("stocks")
		exchange, _ := flags.GetStringSlice("exchange")
		features, _ := flags.GetStringSlice("features")

		now := time.Now()
		if end == "" {
			end = now.Format(time.DateOnly)
		}
		if start == "" {
			start = now.AddDate(0, -1, 0).Format(time.DateOnly)
		}

		res, err := a.collector.Download(cmd.Context(), service.Request{
			Start: start,
			End:   end,
			Selections: map[catalog.Category][]string{
				catalog.Commodities: commodities,
				catalog.Stocks:      stocks,
				catalog.Exchange:    exchange,
			},
			Features: dataset.ParseFeatures(features),
		})
		printItems(res)
		if err != nil {
			if errors.Is(err, service.ErrNoData) {
				return fmt.Errorf("%w for %s..%s", err, start, end)
			}
			return err
		}

		fmt.Printf("\nsaved %s (%d rows, %d columns)\n\n", res.Path, res.Rows, res.Columns)
		printPreview(res.Preview)
		return nil
	},
}

func init() {
	f := fetchCmd.Flags()
	f.String("start", "", "start date YYYY-MM-DD (default one month ago)")
	f.String("end", "", "end date YYYY-MM-DD (default today)")
	f.StringSlice("commodities", nil, "commodity names")
	f.StringSlice("stocks", nil, "stock and index names")
	f.StringSlice("exchange", nil, "exchange rate and rate names")
	f.StringSlice("features", []string{"price"}, "price and/or volume")
}

func printItems(res service.Result) {
	for _, r := range res.Results {
		fmt.Printf("  ✓ %s (%s): %d rows\n", r.Name, r.Code, r.Count)
	}
	for _, e := range res.Errors {
		fmt.Printf("  ✗ %s (%s): %s\n", e.Name, e.Code, e.Message)
	}
}

func printPreview(p dataset.Preview) {
	var data [][]string
	for i, row := range p.Rows {
		rec := []string{p.Dates[i]}
		for _, v := range row {
			if v == nil {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, fmt.Sprintf("%.2f", *v))
		}
		data = append(data, rec)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append([]string{"DATE"}, upper(p.Columns)...))
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
