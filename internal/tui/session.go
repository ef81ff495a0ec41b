package tui

import (
	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/picker"
	"github.com/jask/tickerdeck/internal/service"
)

// Session is the state of one TUI run. It is created at startup and only
// touched from Update.
type Session struct {
	Pickers  map[catalog.Category]*picker.Autocomplete
	Start    string
	End      string
	Features dataset.Features
	Theme    string

	LastFile   string
	LastResult *service.Result
}

// Request builds a download request from the current selections.
func (s *Session) Request() service.Request {
	sel := make(map[catalog.Category][]string, len(s.Pickers))
	for cat, ac := range s.Pickers {
		sel[cat] = ac.Selection().Items()
	}
	return service.Request{
		Start:      s.Start,
		End:        s.End,
		Selections: sel,
		Features:   s.Features,
	}
}

// Selected counts committed identifiers across categories.
func (s *Session) Selected() int {
	n := 0
	for _, ac := range s.Pickers {
		n += ac.Selection().Len()
	}
	return n
}
