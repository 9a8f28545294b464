package views

// Paginator pages the catalogue rows. The visible page is always the one
// holding the cursor, so the offset is derived rather than stored.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator showing size rows per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetPageSize resizes pages after a terminal resize; non-positive sizes are ignored
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

// SetTotal sets the row count and clamps the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

func (p *Paginator) Cursor() int { return p.cursor }

// SetCursor moves the cursor to row i, clamped to the rows available
func (p *Paginator) SetCursor(i int) {
	p.cursor = max(0, min(i, p.total-1))
}

// CursorUp moves up one row, reporting whether the cursor moved
func (p *Paginator) CursorUp() bool {
	before := p.cursor
	p.SetCursor(p.cursor - 1)
	return p.cursor != before
}

// CursorDown moves down one row, reporting whether the cursor moved
func (p *Paginator) CursorDown() bool {
	before := p.cursor
	p.SetCursor(p.cursor + 1)
	return p.cursor != before
}

func (p *Paginator) offset() int { return p.cursor / p.size * p.size }

// VisibleRange returns the half-open row range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.size, p.total)
}

func (p *Paginator) CursorInPage() int { return p.cursor - p.offset() }

// TotalPages is at least 1, even for an empty list
func (p *Paginator) TotalPages() int {
	return max(1, (p.total+p.size-1)/p.size)
}

func (p *Paginator) CurrentPage() int { return p.offset()/p.size + 1 }

// NextPage puts the cursor on the first row of the following page
func (p *Paginator) NextPage() bool {
	next := p.offset() + p.size
	if next >= p.total {
		return false
	}
	p.cursor = next
	return true
}

// PrevPage puts the cursor on the first row of the preceding page
func (p *Paginator) PrevPage() bool {
	off := p.offset()
	if off == 0 {
		return false
	}
	p.cursor = off - p.size
	return true
}

// Reset empties the paginator
func (p *Paginator) Reset() {
	p.cursor, p.total = 0, 0
}
