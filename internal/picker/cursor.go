package picker

// None is the cursor position when no row is highlighted.
const None = -1

// Cursor tracks the highlighted row over the current match list. Its
// position is always None or a valid index into a list of length n.
type Cursor struct {
	pos int
	n   int
}

// NewCursor returns a cursor over an empty list.
func NewCursor() Cursor {
	return Cursor{pos: None}
}

// Pos returns the highlighted index or None.
func (c Cursor) Pos() int { return c.pos }

// Len returns the length of the list the cursor ranges over.
func (c Cursor) Len() int { return c.n }

// Active reports whether a row is highlighted.
func (c Cursor) Active() bool { return c.pos != None }

// Reset moves the cursor onto a freshly computed list of n rows and clears
// the highlight.
func (c *Cursor) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	c.pos = None
}

// Down moves one row down, stopping at the last row.
func (c *Cursor) Down() bool {
	if c.n == 0 {
		return false
	}
	before := c.pos
	if c.pos == None {
		c.pos = 0
	} else if c.pos < c.n-1 {
		c.pos++
	}
	return c.pos != before
}

// Up moves one row up. Moving up from the first row clears the highlight.
func (c *Cursor) Up() bool {
	if c.pos == None {
		return false
	}
	c.pos--
	if c.pos < 0 {
		c.pos = None
	}
	return true
}

// Hover jumps straight to row i. Out of range rows are ignored.
func (c *Cursor) Hover(i int) bool {
	if i < 0 || i >= c.n || i == c.pos {
		return false
	}
	c.pos = i
	return true
}

// Clear drops the highlight without changing the list length.
func (c *Cursor) Clear() bool {
	if c.pos == None {
		return false
	}
	c.pos = None
	return true
}

// Target returns the row Enter should commit: the highlighted row, or the
// only row when nothing is highlighted and exactly one row exists.
func (c Cursor) Target() (int, bool) {
	if c.pos != None {
		return c.pos, true
	}
	if c.n == 1 {
		return 0, true
	}
	return None, false
}
