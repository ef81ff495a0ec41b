package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Manage CSV exports",
}

var exportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exports in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		files, err := a.collector.Exports(cmd.Context())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No exports.")
			return nil
		}
		var data [][]string
		for _, f := range files {
			rows := ""
			if f.Rows > 0 {
				rows = strconv.Itoa(f.Rows)
			}
			data = append(data, []string{f.Name, humanize.Bytes(uint64(f.Size)), rows, strings.Join(f.Indicators, ", "), humanize.Time(f.Modified)})
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"NAME", "SIZE", "ROWS", "INDICATORS", "MODIFIED"})
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

var exportsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every export",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.collector.DeleteExports(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d export(s)\n", res.Deleted)
		for _, e := range res.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("%d export(s) could not be deleted", len(res.Errors))
		}
		return nil
	},
}

func init() {
	exportsCmd.AddCommand(exportsListCmd)
	exportsCmd.AddCommand(exportsDeleteCmd)
}
