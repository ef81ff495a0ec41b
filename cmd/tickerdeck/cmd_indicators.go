package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/config"
)

var indicatorsCmd = &cobra.Command{
	Use:     "indicators",
	Aliases: []string{"ls"},
	Short:   "List the selectable indicators",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}

		var data [][]string
		for _, c := range catalog.Categories {
			for _, e := range cat.Entries(c) {
				data = append(data, []string{c.Title(), e.Name, e.Symbol})
			}
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"CATEGORY", "NAME", "SYMBOL"})
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.SetNoWhiteSpace(true)
		table.SetTablePadding("    ")
		table.AppendBulk(data)
		table.Render()
		return nil
	},
}
