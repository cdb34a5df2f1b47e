package dataset

import (
	"fmt"
	"image"
	"strconv"
)

// CellKind identifies what a Cell holds.
type CellKind uint8

const (
	// CellNull is an absent value, e.g. an image that was not loaded.
	CellNull CellKind = iota
	// CellText holds a string.
	CellText
	// CellNumber holds a float64.
	CellNumber
	// CellImage holds a decoded raster.
	CellImage
)

// Cell is a single table value.
type Cell struct {
	kind CellKind
	text string
	num  float64
	img  image.Image
}

// NullCell returns an empty cell.
func NullCell() Cell { return Cell{} }

// TextCell returns a cell holding s.
func TextCell(s string) Cell { return Cell{kind: CellText, text: s} }

// NumberCell returns a cell holding f.
func NumberCell(f float64) Cell { return Cell{kind: CellNumber, num: f} }

// ImageCell returns a cell holding img, or a null cell when img is nil.
func ImageCell(img image.Image) Cell {
	if img == nil {
		return NullCell()
	}
	return Cell{kind: CellImage, img: img}
}

// Kind reports what the cell holds.
func (c Cell) Kind() CellKind { return c.kind }

// Number returns the numeric payload (0 for non-number cells).
func (c Cell) Number() float64 { return c.num }

// Image returns the raster payload (nil for non-image cells).
func (c Cell) Image() image.Image { return c.img }

// String renders the cell for display and categorical comparison.
func (c Cell) String() string {
	switch c.kind {
	case CellText:
		return c.text
	case CellNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case CellImage:
		b := c.img.Bounds()
		return fmt.Sprintf("<image %dx%d>", b.Dx(), b.Dy())
	default:
		return ""
	}
}

// Table is a row-oriented table with named columns. Every row has exactly
// one cell per column.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) (*Table, error) {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		t.columns[i] = name
		t.index[name] = i
	}
	return t, nil
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Width returns the number of columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[name]
	return i, ok
}

// AppendRow appends a copy of cells as a new row.
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: row %d has %d cells, table has %d columns",
			ErrAlignment, len(t.rows), len(cells), len(t.columns))
	}
	row := make([]Cell, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Cell {
	out := make([]Cell, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Cell returns the cell at row i in the named column.
func (t *Table) Cell(i int, column string) (Cell, error) {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}
	return t.rows[i][c], nil
}

// Column returns a copy of every cell in the named column.
func (t *Table) Column(name string) ([]Cell, error) {
	c, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	out := make([]Cell, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out, nil
}

// Drop returns a new table without the named columns. Every name must exist.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		c, ok := t.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		drop[c] = true
	}

	keep := make([]int, 0, len(t.columns)-len(drop))
	kept := make([]string, 0, len(t.columns)-len(drop))
	for i, name := range t.columns {
		if !drop[i] {
			keep = append(keep, i)
			kept = append(kept, name)
		}
	}

	out, err := NewTable(kept...)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]Cell, len(t.rows))
	for r, row := range t.rows {
		nr := make([]Cell, len(keep))
		for j, c := range keep {
			nr[j] = row[c]
		}
		out.rows[r] = nr
	}
	return out, nil
}
