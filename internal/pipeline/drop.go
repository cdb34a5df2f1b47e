package pipeline

import (
	"micrometa/internal/dataset"
)

// DropColumns removes named columns. It has no fitted state.
type DropColumns struct {
	columns []string
}

// NewDropColumns returns a stage dropping columns. With no names it is an
// identity stage.
func NewDropColumns(columns ...string) *DropColumns {
	return &DropColumns{columns: append([]string(nil), columns...)}
}

// Name implements Transformer.
func (d *DropColumns) Name() string { return "drop" }

// Fit implements Transformer.
func (d *DropColumns) Fit(*dataset.Table) error { return nil }

// Transform returns t without the configured columns. A missing column is
// dataset.ErrColumnNotFound.
func (d *DropColumns) Transform(t *dataset.Table) (*dataset.Table, error) {
	return t.Drop(d.columns...)
}
