package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/picker"
)

const maxPanelRows = 6

// Content line offsets inside a pane box.
const (
	lineTitle = 0
	lineInput = 1
	lineRows  = 2
)

type pulseDoneMsg struct {
	cat catalog.Category
	seq int
}

// pane is one category picker. It is the picker's Surface: the
// autocomplete tells it what changed and it keeps the state View paints.
type pane struct {
	cat   catalog.Category
	input textinput.Model
	ac    *picker.Autocomplete

	rows   []picker.Row
	open   bool
	marked int
	offset int

	chips     []string
	showChips bool
	chipFocus int

	pulse    string
	pulseSeq int

	cmds []tea.Cmd
}

func newPane(cat catalog.Category, names []string) *pane {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "type to search"
	in.CharLimit = 64
	p := &pane{cat: cat, input: in, marked: picker.None, chipFocus: -1}
	p.ac = picker.NewAutocomplete(names, picker.NewSelection(), p)
	return p
}

func (p *pane) ShowPanel(rows []picker.Row) {
	p.rows = rows
	p.open = true
	p.marked = picker.None
	p.offset = 0
}

func (p *pane) HidePanel() {
	p.rows = nil
	p.open = false
	p.marked = picker.None
	p.offset = 0
}

func (p *pane) MarkRow(i int) { p.marked = i }

func (p *pane) UnmarkRow(i int) {
	if p.marked == i {
		p.marked = picker.None
	}
}

// ScrollTo moves the visible window so row i is inside it.
func (p *pane) ScrollTo(i int) {
	if i < p.offset {
		p.offset = i
	}
	if i >= p.offset+maxPanelRows {
		p.offset = i - maxPanelRows + 1
	}
}

func (p *pane) RenderChips(ids []string) {
	p.chips = ids
	if p.chipFocus >= len(ids) {
		p.chipFocus = -1
	}
}

func (p *pane) ShowChips() { p.showChips = true }
func (p *pane) HideChips() { p.showChips = false }

func (p *pane) ClearInput() { p.input.SetValue("") }

func (p *pane) FocusInput() { p.cmds = append(p.cmds, p.input.Focus()) }

func (p *pane) BlurInput() { p.input.Blur() }

func (p *pane) Pulse(id string) {
	p.pulse = id
	p.pulseSeq++
	msg := pulseDoneMsg{cat: p.cat, seq: p.pulseSeq}
	p.cmds = append(p.cmds, tea.Tick(picker.PulseDuration, func(time.Time) tea.Msg { return msg }))
}

func (p *pane) endPulse(seq int) {
	if seq == p.pulseSeq {
		p.pulse = ""
	}
}

// takeCmds drains commands queued by surface calls.
func (p *pane) takeCmds() tea.Cmd {
	if len(p.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(p.cmds...)
	p.cmds = nil
	return cmd
}

func (p *pane) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	if key.Matches(msg, keys.RemoveChip) {
		p.removeFocusedChip()
		return p.takeCmds()
	}
	switch msg.String() {
	case "down":
		p.ac.Key(picker.KeyDown)
	case "up":
		p.ac.Key(picker.KeyUp)
	case "enter":
		p.ac.Key(picker.KeyEnter)
	case "esc":
		p.ac.Key(picker.KeyEscape)
	case "left", "right":
		if p.input.Value() == "" && len(p.chips) > 0 {
			p.moveChipFocus(msg.String() == "right")
			break
		}
		return p.updateInput(msg)
	case "backspace":
		if p.input.Value() == "" {
			if n := len(p.chips); n > 0 {
				p.ac.RemoveChip(p.chips[n-1])
			}
			break
		}
		return p.updateInput(msg)
	default:
		return p.updateInput(msg)
	}
	return p.takeCmds()
}

func (p *pane) updateInput(msg tea.Msg) tea.Cmd {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if v := p.input.Value(); v != before {
		p.chipFocus = -1
		p.ac.Input(v)
	}
	return tea.Batch(cmd, p.takeCmds())
}

// removeFocusedChip drops the focused chip, or the last one when none is
// focused.
func (p *pane) removeFocusedChip() {
	if len(p.chips) == 0 {
		return
	}
	i := p.chipFocus
	if i < 0 {
		i = len(p.chips) - 1
	}
	p.ac.RemoveChip(p.chips[i])
	if p.chipFocus >= len(p.chips) {
		p.chipFocus = len(p.chips) - 1
	}
}

func (p *pane) moveChipFocus(right bool) {
	switch {
	case !right && p.chipFocus < 0:
		p.chipFocus = len(p.chips) - 1
	case !right:
		p.chipFocus = max(0, p.chipFocus-1)
	case p.chipFocus >= 0:
		p.chipFocus++
		if p.chipFocus >= len(p.chips) {
			p.chipFocus = -1
		}
	}
}

func (p *pane) visibleRows() int {
	if !p.open {
		return 0
	}
	return min(len(p.rows)-p.offset, maxPanelRows)
}

// rowAt maps a content line to a panel row index, or None.
func (p *pane) rowAt(line int) int {
	k := line - lineRows
	if k < 0 || k >= p.visibleRows() {
		return picker.None
	}
	return p.offset + k
}

// chipLine is the content line holding the chips.
func (p *pane) chipLine() int {
	line := lineRows + p.visibleRows()
	if p.open && len(p.rows)-p.offset-p.visibleRows() > 0 {
		line++
	}
	return line
}

func (p *pane) chipLabel(id string, s styles) string {
	if id == p.pulse {
		return id + " " + s.pulse.Render("✓")
	}
	return id
}

// chipAt maps a column of the chip line to a chip index, or -1. Chips are
// padded by one cell each side and joined by a space.
func (p *pane) chipAt(col int, s styles) int {
	if !p.showChips || col < 0 {
		return -1
	}
	x := 0
	for i, id := range p.chips {
		w := ansi.StringWidth(p.chipLabel(id, s)) + 2
		if col < x+w {
			if col < x {
				return -1
			}
			return i
		}
		x += w + 1
	}
	return -1
}

func (p *pane) resize(inner int) {
	p.input.Width = max(1, inner-len(p.input.Prompt)-1)
}

func (p *pane) view(width int, s styles, focused bool) string {
	inner := max(1, width-4)
	var b strings.Builder

	title := s.section.Render(p.cat.Title())
	if n := len(p.chips); n > 0 {
		title += s.label.Render(fmt.Sprintf(" (%d)", n))
	}
	b.WriteString(clip(title, inner))
	b.WriteString("\n")
	b.WriteString(clip(p.input.View(), inner))

	for k := 0; k < p.visibleRows(); k++ {
		i := p.offset + k
		row := p.rows[i]
		b.WriteString("\n")
		if i == p.marked {
			b.WriteString(s.rowOn.Render(padRight(clip(" "+row.ID, inner), inner)))
			continue
		}
		text := picker.Render(row.Segments, func(t string) string { return s.emph.Render(t) })
		b.WriteString(clip(s.row.Render(" ")+text, inner))
	}
	if p.open {
		if rest := len(p.rows) - p.offset - p.visibleRows(); rest > 0 {
			b.WriteString("\n" + s.scroll.Render(fmt.Sprintf(" ↓ %d more", rest)))
		}
	}

	b.WriteString("\n")
	if !p.showChips {
		b.WriteString(s.help.Render("nothing selected"))
	} else {
		chips := make([]string, len(p.chips))
		for i, id := range p.chips {
			st := s.chip
			if i == p.chipFocus {
				st = s.chipOn
			}
			chips[i] = st.Render(p.chipLabel(id, s))
		}
		b.WriteString(clip(strings.Join(chips, " "), inner))
	}

	box := s.pane
	if focused {
		box = s.paneOn
	}
	return box.Width(width - 2).Render(b.String())
}
