package encoder

import (
	"errors"
	"testing"

	"micrometa/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, records ...dataset.Record) *dataset.Table {
	t.Helper()
	table, err := dataset.Assemble(records, false)
	require.NoError(t, err)
	dropped, err := table.Drop(dataset.ColumnFilename)
	require.NoError(t, err)
	return dropped
}

func record(path string, slide dataset.Value, objective string) dataset.Record {
	return dataset.Record{
		FileRef: dataset.FileRef{Name: path, Path: "/data/" + path},
		Metadata: dataset.Metadata{
			Slide:     slide,
			ZStack:    dataset.Int(0),
			Channel:   dataset.Int(1),
			Species:   dataset.Text("Msmeg"),
			Labeling:  dataset.Text("DMN"),
			Objective: dataset.Text(objective),
		},
	}
}

func sampleTable(t *testing.T) *dataset.Table {
	return buildTable(t,
		record("a.tif", dataset.Int(2), "60X"),
		record("b.tif", dataset.Int(10), "160X"),
		record("c.tif", dataset.Unknown(), "60X"),
	)
}

func TestFitBuildsSortedVocabulary(t *testing.T) {
	enc := New()
	require.NoError(t, enc.Fit(sampleTable(t)))

	v := enc.Vocabulary()
	require.NotNil(t, v)
	assert.Equal(t, []string{"10", "2", "unknown"}, v.Categories(dataset.ColumnSlide))
	assert.Equal(t, []string{"160X", "60X"}, v.Categories(dataset.ColumnObjective))
	assert.Equal(t, []string{"Msmeg"}, v.Categories(dataset.ColumnSpecies))
	assert.Equal(t, 3+1+1+1+1+2, v.Width())

	pos, ok := v.Position(dataset.ColumnSlide, "2")
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
	pos, ok = v.Position(dataset.ColumnZStack, "0")
	assert.True(t, ok)
	assert.Equal(t, 3, pos, "positions continue across columns")

	_, ok = v.Position(dataset.ColumnSlide, "3")
	assert.False(t, ok)
}

func TestFeatureNames(t *testing.T) {
	enc := New()
	require.NoError(t, enc.Fit(sampleTable(t)))

	assert.Equal(t, []string{
		"Slide_10", "Slide_2", "Slide_unknown",
		"ZStack_0",
		"Channel_1",
		"Species_Msmeg",
		"Labeling_DMN",
		"Objective_160X", "Objective_60X",
	}, enc.Vocabulary().FeatureNames())
}

func TestTransformLayout(t *testing.T) {
	enc := New()
	out, err := enc.FitTransform(sampleTable(t))
	require.NoError(t, err)

	cols := out.Columns()
	assert.Equal(t, dataset.ColumnPath, cols[0], "non-categorical columns come first")
	assert.Equal(t, 1+enc.Vocabulary().Width(), out.Width())
	for _, c := range dataset.CategoricalColumns() {
		_, ok := out.ColumnIndex(c)
		assert.False(t, ok, "original column %s must be removed", c)
	}

	assert.Equal(t, 3, out.Len())
	path, err := out.Cell(1, dataset.ColumnPath)
	require.NoError(t, err)
	assert.Equal(t, "/data/b.tif", path.String(), "row order is preserved")

	cell, err := out.Cell(1, "Slide_10")
	require.NoError(t, err)
	assert.Equal(t, dataset.CellNumber, cell.Kind())
	assert.Equal(t, 1.0, cell.Number())
	cell, err = out.Cell(1, "Slide_2")
	require.NoError(t, err)
	assert.Equal(t, 0.0, cell.Number())
}

func TestIndicatorBlocksSumToOne(t *testing.T) {
	enc := New()
	out, err := enc.FitTransform(sampleTable(t))
	require.NoError(t, err)

	v := enc.Vocabulary()
	for r := 0; r < out.Len(); r++ {
		for _, col := range v.Columns() {
			sum := 0.0
			for _, value := range v.Categories(col) {
				c, err := out.Cell(r, FeatureName(col, value))
				require.NoError(t, err)
				sum += c.Number()
			}
			assert.Equal(t, 1.0, sum, "row %d column %s", r, col)
		}
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	table := sampleTable(t)
	enc := New()
	require.NoError(t, enc.Fit(table))

	first, err := enc.Transform(table)
	require.NoError(t, err)
	second, err := enc.Transform(table)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransformBeforeFit(t *testing.T) {
	_, err := New().Transform(sampleTable(t))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestSecondFitRejected(t *testing.T) {
	enc := New()
	require.NoError(t, enc.Fit(sampleTable(t)))
	width := enc.Vocabulary().Width()

	other := buildTable(t, record("z.tif", dataset.Int(5), "40X"))
	assert.ErrorIs(t, enc.Fit(other), ErrAlreadyFitted)
	assert.Equal(t, width, enc.Vocabulary().Width(), "vocabulary stays frozen")
}

func TestFitMissingColumn(t *testing.T) {
	table, err := dataset.NewTable(dataset.ColumnPath, dataset.ColumnSlide)
	require.NoError(t, err)

	err = New().Fit(table)
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestTransformMissingColumn(t *testing.T) {
	enc := New(WithColumns(dataset.ColumnSlide))
	require.NoError(t, enc.Fit(sampleTable(t)))

	table, err := dataset.NewTable(dataset.ColumnPath)
	require.NoError(t, err)
	_, err = enc.Transform(table)
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestUnseenCategoryErrors(t *testing.T) {
	train := buildTable(t, record("a.tif", dataset.Int(1), "60X"))
	test := buildTable(t, record("b.tif", dataset.Int(1), "160X"))

	enc := New()
	require.NoError(t, enc.Fit(train))

	_, err := enc.Transform(test)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnseenCategory)

	var unseen *UnseenCategoryError
	require.True(t, errors.As(err, &unseen))
	assert.Equal(t, dataset.ColumnObjective, unseen.Column)
	assert.Equal(t, "160X", unseen.Value)
	assert.Equal(t, 0, unseen.Row)
}

func TestUnseenCategoryZeroPolicy(t *testing.T) {
	train := buildTable(t, record("a.tif", dataset.Int(1), "60X"))
	test := buildTable(t,
		record("b.tif", dataset.Int(1), "160X"),
		record("c.tif", dataset.Int(1), "60X"),
	)

	enc := New(WithPolicy(PolicyZero))
	require.NoError(t, enc.Fit(train))

	out, err := enc.Transform(test)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	c, err := out.Cell(0, "Objective_60X")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Number())
	c, err = out.Cell(0, "Slide_1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Number(), "other columns are still encoded")
	c, err = out.Cell(1, "Objective_60X")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Number())
}

func TestUnseenCategoryDropPolicy(t *testing.T) {
	train := buildTable(t, record("a.tif", dataset.Int(1), "60X"))
	test := buildTable(t,
		record("b.tif", dataset.Int(1), "160X"),
		record("c.tif", dataset.Int(1), "60X"),
	)

	enc := New(WithPolicy(PolicyDrop))
	require.NoError(t, enc.Fit(train))

	out, err := enc.Transform(test)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	path, err := out.Cell(0, dataset.ColumnPath)
	require.NoError(t, err)
	assert.Equal(t, "/data/c.tif", path.String())
}

func TestEmptyTable(t *testing.T) {
	empty := buildTable(t)
	enc := New()

	out, err := enc.FitTransform(empty)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 0, enc.Vocabulary().Width())
	assert.Equal(t, []string{dataset.ColumnPath}, out.Columns())
}

func TestParseUnseenPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UnseenPolicy
		wantErr bool
	}{
		{"", PolicyError, false},
		{"error", PolicyError, false},
		{"ZERO", PolicyZero, false},
		{" drop ", PolicyDrop, false},
		{"ignore", PolicyError, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnseenPolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, name string) UnseenPolicy {
	t.Helper()
	p, err := ParseUnseenPolicy(name)
	require.NoError(t, err)
	return p
}
