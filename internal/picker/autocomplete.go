package picker

// Key is a navigation key understood by the autocomplete.
type Key int

const (
	KeyNone Key = iota
	KeyDown
	KeyUp
	KeyEnter
	KeyEscape
)

// Action reports what an event did.
type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionCommitted
	ActionCancelled
)

type Result struct {
	Action Action
	Item   string
}

// Autocomplete drives one category: a text query filtered against the
// catalog, a highlight cursor over the matches, and a selection mirror.
// Every handler runs to completion on the caller's goroutine.
type Autocomplete struct {
	catalog []string
	query   string
	matches []string
	cursor  Cursor
	open    bool
	mirror  *Mirror
	surface Surface
}

// NewAutocomplete builds an autocomplete over catalog. The catalog slice is
// copied and treated as read-only.
func NewAutocomplete(catalog []string, sel *Selection, surface Surface) *Autocomplete {
	return &Autocomplete{
		catalog: append([]string(nil), catalog...),
		cursor:  NewCursor(),
		mirror:  NewMirror(sel, surface),
		surface: surface,
	}
}

func (a *Autocomplete) Catalog() []string { return append([]string(nil), a.catalog...) }

func (a *Autocomplete) Query() string { return a.query }

// Matches returns the current match list.
func (a *Autocomplete) Matches() []string { return append([]string(nil), a.matches...) }

// Highlighted returns the cursor position or None.
func (a *Autocomplete) Highlighted() int { return a.cursor.Pos() }

// Open reports whether the suggestion panel is showing.
func (a *Autocomplete) Open() bool { return a.open }

func (a *Autocomplete) Selection() *Selection { return a.mirror.Selection() }

// Input recomputes the match list for text. The previous list and highlight
// are discarded.
func (a *Autocomplete) Input(text string) {
	a.query = text
	a.matches = Filter(a.catalog, text)
	a.cursor.Reset(len(a.matches))
	if len(a.matches) == 0 {
		a.closePanel()
		return
	}
	rows := make([]Row, len(a.matches))
	for i, m := range a.matches {
		rows[i] = Row{ID: m, Segments: Emphasize(m, text)}
	}
	a.open = true
	if a.surface != nil {
		a.surface.ShowPanel(rows)
	}
}

// Key handles a navigation key. Navigation and Enter are ignored while the
// panel is closed.
func (a *Autocomplete) Key(k Key) Result {
	switch k {
	case KeyDown:
		if !a.open {
			return Result{}
		}
		return a.move(a.cursor.Down)
	case KeyUp:
		if !a.open {
			return Result{}
		}
		return a.move(a.cursor.Up)
	case KeyEnter:
		if !a.open {
			return Result{}
		}
		i, ok := a.cursor.Target()
		if !ok {
			return Result{}
		}
		return a.commit(a.matches[i])
	case KeyEscape:
		a.closePanel()
		if a.surface != nil {
			a.surface.BlurInput()
		}
		return Result{Action: ActionCancelled}
	}
	return Result{}
}

// Hover highlights row i directly.
func (a *Autocomplete) Hover(i int) Result {
	if !a.open {
		return Result{}
	}
	return a.move(func() bool { return a.cursor.Hover(i) })
}

// Click commits row i.
func (a *Autocomplete) Click(i int) Result {
	if !a.open || i < 0 || i >= len(a.matches) {
		return Result{}
	}
	return a.commit(a.matches[i])
}

// OutsideClick closes an open panel. It is evaluated for every click that
// lands outside the input and the panel.
func (a *Autocomplete) OutsideClick() {
	if a.open {
		a.closePanel()
	}
}

// Commit adds id to the selection as if it had been picked from the panel.
func (a *Autocomplete) Commit(id string) Result {
	return a.commit(id)
}

// RemoveChip drops id from the selection.
func (a *Autocomplete) RemoveChip(id string) bool {
	return a.mirror.Remove(id)
}

func (a *Autocomplete) move(step func() bool) Result {
	before := a.cursor.Pos()
	if !step() {
		return Result{}
	}
	if a.surface != nil {
		if before != None {
			a.surface.UnmarkRow(before)
		}
		if after := a.cursor.Pos(); after != None {
			a.surface.MarkRow(after)
			a.surface.ScrollTo(after)
		}
	}
	return Result{Action: ActionMoved}
}

func (a *Autocomplete) commit(id string) Result {
	added := a.mirror.Commit(id)
	a.query = ""
	a.matches = nil
	a.cursor.Reset(0)
	a.open = false
	if !added && a.surface != nil {
		// The selection did not change, but the cycle still ends.
		a.surface.ClearInput()
		a.surface.HidePanel()
		a.surface.FocusInput()
	}
	return Result{Action: ActionCommitted, Item: id}
}

func (a *Autocomplete) closePanel() {
	a.cursor.Clear()
	a.open = false
	if a.surface != nil {
		a.surface.HidePanel()
	}
}
