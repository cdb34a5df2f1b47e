package dataset

import "errors"

var (
	// ErrAlignment reports a row or field column whose length does not match
	// the file list. It indicates a programming error and is always fatal.
	ErrAlignment = errors.New("alignment violation")

	// ErrColumnNotFound is returned when a named column is not in the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when a table would hold two columns with
	// the same name.
	ErrDuplicateColumn = errors.New("duplicate column")
)
