package terminal

import (
	"fmt"
)

// Size is a window size in character cells
type Size struct {
	Cols uint16
	Rows uint16
}

// NewSize builds a Size; values beyond 16 bits are truncated, not clamped
func NewSize(cols, rows int) Size {
	return Size{Cols: uint16(cols), Rows: uint16(rows)}
}

// CursorPos maps (row, col) to a linear offset assuming cols+1 cells per row,
// the extra cell being the right margin. No bounds checks are made.
func (s Size) CursorPos(row, col int) int {
	return row*(int(s.Cols)+1) + col
}

func (s Size) String() string {
	return fmt.Sprintf("Size[cols=%d, rows=%d]", s.Cols, s.Rows)
}

// Cursor is a 0-based cursor position
type Cursor struct {
	X int
	Y int
}

func (c Cursor) String() string {
	return fmt.Sprintf("Cursor[x=%d, y=%d]", c.X, c.Y)
}
