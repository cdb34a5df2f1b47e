package encoder

import "sort"

// Vocabulary maps each encoded column's categories to indicator positions.
// Columns keep their configured order; categories within a column are sorted
// lexically. It is immutable once built.
type Vocabulary struct {
	columns    []string
	categories map[string][]string
	positions  map[string]map[string]int
	offsets    map[string]int
	width      int
}

func newVocabulary(columns []string, seen map[string]map[string]struct{}) *Vocabulary {
	v := &Vocabulary{
		columns:    append([]string(nil), columns...),
		categories: make(map[string][]string, len(columns)),
		positions:  make(map[string]map[string]int, len(columns)),
		offsets:    make(map[string]int, len(columns)),
	}

	for _, col := range columns {
		cats := make([]string, 0, len(seen[col]))
		for value := range seen[col] {
			cats = append(cats, value)
		}
		sort.Strings(cats)

		pos := make(map[string]int, len(cats))
		for i, value := range cats {
			pos[value] = v.width + i
		}
		v.categories[col] = cats
		v.positions[col] = pos
		v.offsets[col] = v.width
		v.width += len(cats)
	}
	return v
}

// Columns returns the encoded columns in order.
func (v *Vocabulary) Columns() []string {
	return append([]string(nil), v.columns...)
}

// Categories returns the sorted categories learned for column.
func (v *Vocabulary) Categories(column string) []string {
	return append([]string(nil), v.categories[column]...)
}

// Position returns the global indicator index of value in column.
func (v *Vocabulary) Position(column, value string) (int, bool) {
	p, ok := v.positions[column][value]
	return p, ok
}

// Width is the total number of indicator columns.
func (v *Vocabulary) Width() int { return v.width }

// FeatureNames returns the indicator column names, "<column>_<value>", in
// position order.
func (v *Vocabulary) FeatureNames() []string {
	names := make([]string, 0, v.width)
	for _, col := range v.columns {
		for _, value := range v.categories[col] {
			names = append(names, FeatureName(col, value))
		}
	}
	return names
}

// FeatureName is the indicator column name for value in column.
func FeatureName(column, value string) string {
	return column + "_" + value
}
