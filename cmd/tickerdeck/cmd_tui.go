package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/tickerdeck/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	// Log lines would tear the alt screen; keep them in a file when
	// debugging and drop them otherwise.
	if os.Getenv("TICKERDECK_DEBUG") != "" {
		f, err := tea.LogToFile("tickerdeck-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	theme := a.cfg.UI.Theme
	if a.prefs.Theme != "" {
		theme = a.prefs.Theme
	}
	m := tui.New(cmd.Context(), tui.Options{
		Collector:  a.collector,
		Prefs:      a.store,
		Theme:      theme,
		CatalogErr: a.catErr,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
