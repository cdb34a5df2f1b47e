// Package dataset defines the row-oriented data model shared by every
// pipeline stage: discovered files, decoded metadata values, records and the
// Table that the encoder consumes.
//
// A Record carries one Value per metadata field, so a file can never be
// missing a field or have a field belonging to another file. Table enforces
// the same property for its rows: AppendRow rejects rows whose width differs
// from the column count with ErrAlignment.
package dataset
