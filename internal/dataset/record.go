package dataset

import (
	"fmt"
	"image"
)

// Field identifies one of the metadata fields decoded from a filename.
type Field int

const (
	// FieldSlide is the slide index ("s03").
	FieldSlide Field = iota
	// FieldZStack is the Z-stack index ("z05").
	FieldZStack
	// FieldChannel is the imaging channel ("ch01" or "overlay").
	FieldChannel
	// FieldSpecies is the organism, matched against a vocabulary.
	FieldSpecies
	// FieldLabeling is the fluorescent label, matched against a vocabulary.
	FieldLabeling
	// FieldObjective is the objective magnification, matched case-insensitively.
	FieldObjective
)

// Fields lists every metadata field in column order.
var Fields = []Field{FieldSlide, FieldZStack, FieldChannel, FieldSpecies, FieldLabeling, FieldObjective}

// Column names used by the assembled table.
const (
	ColumnFilename  = "Filename"
	ColumnPath      = "Path"
	ColumnSlide     = "Slide"
	ColumnZStack    = "ZStack"
	ColumnChannel   = "Channel"
	ColumnSpecies   = "Species"
	ColumnLabeling  = "Labeling"
	ColumnObjective = "Objective"
	ColumnImage     = "Image"
)

// Column returns the table column name for the field.
func (f Field) Column() string {
	switch f {
	case FieldSlide:
		return ColumnSlide
	case FieldZStack:
		return ColumnZStack
	case FieldChannel:
		return ColumnChannel
	case FieldSpecies:
		return ColumnSpecies
	case FieldLabeling:
		return ColumnLabeling
	case FieldObjective:
		return ColumnObjective
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

func (f Field) String() string { return f.Column() }

// CategoricalColumns returns the metadata column names in encoding order.
func CategoricalColumns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Column()
	}
	return cols
}

// FileRef is a discovered file: its bare name and full path.
type FileRef struct {
	Name string
	Path string
}

// Metadata holds one decoded value per field.
type Metadata struct {
	Slide     Value
	ZStack    Value
	Channel   Value
	Species   Value
	Labeling  Value
	Objective Value
}

// Get returns the value for f.
func (m Metadata) Get(f Field) Value {
	switch f {
	case FieldSlide:
		return m.Slide
	case FieldZStack:
		return m.ZStack
	case FieldChannel:
		return m.Channel
	case FieldSpecies:
		return m.Species
	case FieldLabeling:
		return m.Labeling
	case FieldObjective:
		return m.Objective
	default:
		return Unknown()
	}
}

// Set stores v for f.
func (m *Metadata) Set(f Field, v Value) {
	switch f {
	case FieldSlide:
		m.Slide = v
	case FieldZStack:
		m.ZStack = v
	case FieldChannel:
		m.Channel = v
	case FieldSpecies:
		m.Species = v
	case FieldLabeling:
		m.Labeling = v
	case FieldObjective:
		m.Objective = v
	}
}

// Record is one row of the dataset: a file, its metadata and, when images
// were materialized, its decoded raster.
type Record struct {
	FileRef
	Metadata
	Image image.Image
}
