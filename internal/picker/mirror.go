package picker

import "time"

// PulseDuration is how long a freshly committed row keeps its "selected"
// marker. It is cosmetic only.
const PulseDuration = 300 * time.Millisecond

// Row is one rendered suggestion.
type Row struct {
	ID       string
	Segments []Segment
}

// Surface receives structural update instructions. It owns paint and
// layout; the picker only says what changed.
type Surface interface {
	ShowPanel(rows []Row)
	HidePanel()
	MarkRow(i int)
	UnmarkRow(i int)
	ScrollTo(i int)

	RenderChips(ids []string)
	ShowChips()
	HideChips()

	ClearInput()
	FocusInput()
	BlurInput()

	// Pulse marks id as just selected. The surface clears the marker
	// after PulseDuration.
	Pulse(id string)
}

// Mirror keeps a rendered chip list in step with a Selection.
type Mirror struct {
	sel     *Selection
	surface Surface
}

// NewMirror binds sel to surface. A nil selection starts empty.
func NewMirror(sel *Selection, surface Surface) *Mirror {
	if sel == nil {
		sel = NewSelection()
	}
	m := &Mirror{sel: sel, surface: surface}
	m.render()
	return m
}

// Commit adds id and refreshes the surface. Committing a member is a no-op.
// Identifiers outside the catalog are accepted.
func (m *Mirror) Commit(id string) bool {
	if !m.sel.Add(id) {
		return false
	}
	m.render()
	if m.surface != nil {
		m.surface.ClearInput()
		m.surface.FocusInput()
		m.surface.HidePanel()
		m.surface.Pulse(id)
	}
	return true
}

// Remove drops id and refreshes the chips. Removing a non-member is a no-op.
func (m *Mirror) Remove(id string) bool {
	if !m.sel.Remove(id) {
		return false
	}
	m.render()
	return true
}

// Selection exposes the selection for consumers such as the download
// request builder.
func (m *Mirror) Selection() *Selection { return m.sel }

func (m *Mirror) render() {
	if m.surface == nil {
		return
	}
	ids := m.sel.Items()
	m.surface.RenderChips(ids)
	if len(ids) == 0 {
		m.surface.HideChips()
		return
	}
	m.surface.ShowChips()
}
