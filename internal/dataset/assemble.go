package dataset

// Assemble builds the pre-encoding table from extracted records: one row per
// record in input order with Filename, Path and every metadata field as a
// text cell. Unmatched fields become the "unknown" category rather than a null
// cell. When withImages is set an Image column is appended; records without a
// decoded raster get a null cell there.
func Assemble(records []Record, withImages bool) (*Table, error) {
	columns := append([]string{ColumnFilename, ColumnPath}, CategoricalColumns()...)
	if withImages {
		columns = append(columns, ColumnImage)
	}

	t, err := NewTable(columns...)
	if err != nil {
		return nil, err
	}
	t.rows = make([][]Cell, 0, len(records))

	for _, rec := range records {
		row := make([]Cell, 0, len(columns))
		row = append(row, TextCell(rec.Name), TextCell(rec.Path))
		for _, f := range Fields {
			row = append(row, TextCell(rec.Get(f).String()))
		}
		if withImages {
			row = append(row, ImageCell(rec.Image))
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}
