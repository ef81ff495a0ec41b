package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tickerdeck/internal/catalog"
	"github.com/jask/tickerdeck/internal/dataset"
	"github.com/jask/tickerdeck/internal/picker"
	"github.com/jask/tickerdeck/internal/prefs"
	"github.com/jask/tickerdeck/internal/service"
)

// Focus slots after the category panes.
const (
	focusStart = iota + 3
	focusEnd
	focusPrice
	focusVolume
	focusCount
)

// Rows above the pane boxes.
const headerHeight = 1

// App is the bubbletea model.
type App struct {
	ctx       context.Context
	collector *service.Collector
	prefs     *prefs.Store
	session   *Session
	keys      keyMap
	styles    styles

	panes []*pane
	start textinput.Model
	end   textinput.Model
	focus int

	table    table.Model
	hasTable bool
	charts   string

	width  int
	height int
	status string
	failed bool
	busy   bool
}

// Options configures New.
type Options struct {
	Collector *service.Collector
	Prefs     *prefs.Store // optional
	Theme     string
	// CatalogErr is shown as the initial status when the catalog failed to
	// load.
	CatalogErr error
	Now        func() time.Time
}

type (
	downloadDoneMsg struct {
		res service.Result
		err error
	}
	purgeDoneMsg struct {
		res service.DeleteResult
		err error
	}
	errMsg struct{ error }
)

func New(ctx context.Context, opts Options) *App {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	today := now()
	cat := opts.Collector.Catalog

	a := &App{
		ctx:       ctx,
		collector: opts.Collector,
		prefs:     opts.Prefs,
		keys:      defaultKeys(),
		styles:    newStyles(opts.Theme),
		start:     dateInput("start", today.AddDate(0, -1, 0)),
		end:       dateInput("end", today),
		width:     120,
	}
	a.session = &Session{
		Pickers:  make(map[catalog.Category]*picker.Autocomplete, len(catalog.Categories)),
		Features: dataset.Features{Price: true},
		Theme:    a.styles.name,
	}
	for _, c := range catalog.Categories {
		p := newPane(c, cat.Names(c))
		a.panes = append(a.panes, p)
		a.session.Pickers[c] = p.ac
	}
	a.panes[0].input.Focus()
	a.resize()

	if opts.CatalogErr != nil {
		a.setError(fmt.Errorf("catalog: %w", opts.CatalogErr))
	} else {
		a.status = fmt.Sprintf("%d indicators via %s", cat.Len(), opts.Collector.Provider.Name())
	}
	return a
}

func dateInput(label string, d time.Time) textinput.Model {
	in := textinput.New()
	in.Prompt = label + " "
	in.Placeholder = "YYYY-MM-DD"
	in.CharLimit = 10
	in.Width = 10
	in.SetValue(d.Format(time.DateOnly))
	return in
}

// Session exposes the run state.
func (a *App) Session() *Session { return a.session }

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		a.refreshResults()
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case pulseDoneMsg:
		for _, p := range a.panes {
			if p.cat == m.cat {
				p.endPulse(m.seq)
			}
		}
	case downloadDoneMsg:
		a.busy = false
		a.finishDownload(m.res, m.err)
	case purgeDoneMsg:
		a.busy = false
		if m.err != nil {
			a.setError(m.err)
			break
		}
		a.setStatus(fmt.Sprintf("deleted %d export(s)", m.res.Deleted))
		if len(m.res.Errors) > 0 {
			a.setError(fmt.Errorf("deleted %d, failed: %s", m.res.Deleted, strings.Join(m.res.Errors, "; ")))
		}
	case errMsg:
		a.setError(m.error)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Download):
		return a.download()
	case key.Matches(m, a.keys.Theme):
		return a.toggleTheme()
	case key.Matches(m, a.keys.Purge):
		return a.purge()
	case key.Matches(m, a.keys.Next):
		return a.setFocus(a.focus + 1)
	case key.Matches(m, a.keys.Prev):
		return a.setFocus(a.focus - 1)
	}

	switch a.focus {
	case focusStart:
		var cmd tea.Cmd
		a.start, cmd = a.start.Update(m)
		return cmd
	case focusEnd:
		var cmd tea.Cmd
		a.end, cmd = a.end.Update(m)
		return cmd
	case focusPrice, focusVolume:
		if key.Matches(m, a.keys.Toggle) {
			if a.focus == focusPrice {
				a.session.Features.Price = !a.session.Features.Price
			} else {
				a.session.Features.Volume = !a.session.Features.Volume
			}
		}
		return nil
	}
	return a.panes[a.focus].handleKey(m, a.keys)
}

// setFocus moves keyboard focus, wrapping at both ends. Leaving a pane
// closes its panel.
func (a *App) setFocus(i int) tea.Cmd {
	i = ((i % focusCount) + focusCount) % focusCount
	switch {
	case a.focus < len(a.panes):
		p := a.panes[a.focus]
		p.ac.OutsideClick()
		p.input.Blur()
		p.chipFocus = -1
	case a.focus == focusStart:
		a.start.Blur()
	case a.focus == focusEnd:
		a.end.Blur()
	}
	a.focus = i
	switch {
	case i < len(a.panes):
		return a.panes[i].input.Focus()
	case i == focusStart:
		return a.start.Focus()
	case i == focusEnd:
		return a.end.Focus()
	}
	return nil
}

func (a *App) paneWidth() int {
	return max(24, a.width/len(a.panes))
}

func (a *App) resize() {
	for _, p := range a.panes {
		p.resize(a.paneWidth() - 4)
	}
}

// handleMouse hit-tests against the pane grid drawn by View: panes sit side
// by side under the header, each with a one-cell border and padding.
// Clicking a chip removes it.
func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	if m.Action != tea.MouseActionPress && m.Action != tea.MouseActionMotion {
		return nil
	}
	pw := a.paneWidth()
	hit, line := -1, -1
	if m.Y > headerHeight && m.X >= 0 && m.X/pw < len(a.panes) {
		hit = m.X / pw
		line = m.Y - headerHeight - 1
	}

	if m.Action == tea.MouseActionMotion {
		if hit >= 0 {
			p := a.panes[hit]
			if row := p.rowAt(line); row != picker.None {
				p.ac.Hover(row)
			}
		}
		return nil
	}
	if m.Button != tea.MouseButtonLeft {
		return nil
	}

	chips := -1
	if hit >= 0 {
		chips = a.panes[hit].chipLine()
	}
	for i, p := range a.panes {
		if i == hit && (line == lineInput || p.rowAt(line) != picker.None) {
			continue
		}
		p.ac.OutsideClick()
	}
	if hit < 0 {
		return nil
	}
	p := a.panes[hit]
	if row := p.rowAt(line); row != picker.None {
		var cmd tea.Cmd
		if a.focus != hit {
			cmd = a.setFocus(hit)
		}
		p.ac.Click(row)
		return tea.Batch(cmd, p.takeCmds())
	}
	if line == chips {
		// border and padding sit left of the content
		if i := p.chipAt(m.X-hit*pw-2, a.styles); i >= 0 {
			p.ac.RemoveChip(p.chips[i])
			return p.takeCmds()
		}
	}
	if line == lineInput && a.focus != hit {
		return a.setFocus(hit)
	}
	return nil
}

func (a *App) download() tea.Cmd {
	if a.busy {
		return nil
	}
	a.session.Start = strings.TrimSpace(a.start.Value())
	a.session.End = strings.TrimSpace(a.end.Value())
	req := a.session.Request()
	a.busy = true
	a.setStatus(fmt.Sprintf("downloading %d indicator(s)…", a.session.Selected()))
	log.Printf("tui: download %s..%s", req.Start, req.End)
	ctx, collector := a.ctx, a.collector
	return func() tea.Msg {
		res, err := collector.Download(ctx, req)
		return downloadDoneMsg{res: res, err: err}
	}
}

func (a *App) finishDownload(res service.Result, err error) {
	if err != nil {
		if errors.Is(err, service.ErrNoData) && len(res.Errors) > 0 {
			names := make([]string, len(res.Errors))
			for i, e := range res.Errors {
				names[i] = e.Name + ": " + e.Message
			}
			err = fmt.Errorf("%w (%s)", err, strings.Join(names, ", "))
		}
		a.setError(err)
		return
	}
	a.session.LastResult = &res
	a.session.LastFile = res.Filename
	a.setStatus(fmt.Sprintf("saved %s (%d rows × %d columns)", res.Filename, res.Rows, res.Columns))
	a.refreshResults()
}

func (a *App) purge() tea.Cmd {
	if a.busy {
		return nil
	}
	a.busy = true
	a.setStatus("deleting exports…")
	ctx, collector := a.ctx, a.collector
	return func() tea.Msg {
		res, err := collector.DeleteExports(ctx)
		return purgeDoneMsg{res: res, err: err}
	}
}

func (a *App) toggleTheme() tea.Cmd {
	next := themeLight
	if a.styles.name == themeLight {
		next = themeDark
	}
	a.styles = newStyles(next)
	a.session.Theme = next
	a.refreshResults()
	if a.prefs == nil {
		return nil
	}
	store := a.prefs
	return func() tea.Msg {
		p, err := store.Load()
		if err != nil {
			return errMsg{err}
		}
		p.Theme = next
		if err := store.Save(p); err != nil {
			return errMsg{fmt.Errorf("save prefs: %w", err)}
		}
		return nil
	}
}

// refreshResults rebuilds the preview table and charts for the current
// result, width and theme.
func (a *App) refreshResults() {
	res := a.session.LastResult
	if res == nil {
		a.hasTable = false
		a.charts = ""
		return
	}
	kinds := make([]dataset.Kind, len(res.Frame.Columns))
	for i, c := range res.Frame.Columns {
		kinds[i] = c.Kind
	}
	a.table = previewTable(res.Preview, kinds, a.width, a.styles)
	a.hasTable = true
	a.charts = renderCharts(res.Chart, a.width-2, a.styles)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.failed = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.failed = true
	log.Printf("tui: %v", err)
}

func (a *App) View() string {
	s := a.styles
	var sections []string

	header := s.title.Render("tickerdeck") + s.label.Render(fmt.Sprintf("  %s theme · %d selected", s.name, a.session.Selected()))
	sections = append(sections, header)

	boxes := make([]string, len(a.panes))
	for i, p := range a.panes {
		boxes[i] = p.view(a.paneWidth(), s, a.focus == i)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	sections = append(sections, a.formView())

	status := s.status.Render(a.status)
	if a.failed {
		status = s.errText.Render(a.status)
	}
	sections = append(sections, status)

	if res := a.session.LastResult; res != nil {
		sections = append(sections, a.summaryView(res))
		if a.hasTable {
			sections = append(sections, a.table.View())
		}
		if a.charts != "" {
			sections = append(sections, a.charts)
		}
	}

	sections = append(sections, a.footerView())
	return fitLines(strings.Join(sections, "\n"), a.width)
}

func (a *App) formView() string {
	s := a.styles
	field := func(slot int, text string) string {
		if a.focus == slot {
			return s.fieldOn.Render(text)
		}
		return s.field.Render(text)
	}
	toggle := func(slot int, name string, on bool) string {
		mark := "[ ]"
		if on {
			mark = s.toggleOn.Render("[x]")
		}
		return mark + " " + field(slot, name)
	}
	return strings.Join([]string{
		field(focusStart, a.start.View()),
		field(focusEnd, a.end.View()),
		toggle(focusPrice, "Price", a.session.Features.Price),
		toggle(focusVolume, "Volume", a.session.Features.Volume),
	}, "   ")
}

func (a *App) summaryView(res *service.Result) string {
	s := a.styles
	lines := []string{s.section.Render(res.Filename) + s.label.Render(fmt.Sprintf("  %d rows · %d columns", res.Rows, res.Columns))}
	for _, r := range res.Results {
		lines = append(lines, s.okText.Render("✓ ")+fmt.Sprintf("%s (%s) %d", r.Name, r.Code, r.Count))
	}
	for _, e := range res.Errors {
		lines = append(lines, s.errText.Render("✗ ")+fmt.Sprintf("%s (%s) %s", e.Name, e.Code, e.Message))
	}
	return strings.Join(lines, "\n")
}

func (a *App) footerView() string {
	s := a.styles
	parts := make([]string, 0, len(a.keys.footer()))
	for _, b := range a.keys.footer() {
		h := b.Help()
		parts = append(parts, s.helpKey.Render(h.Key)+" "+s.help.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
