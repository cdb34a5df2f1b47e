// Package encoder turns categorical table columns into one-hot indicator
// columns with a fit/transform contract.
package encoder

import (
	"fmt"
	"sync"

	"micrometa/internal/dataset"
	"micrometa/internal/logging"
	"micrometa/internal/metrics"
)

// Encoder learns a Vocabulary from one table and applies it to others.
type Encoder struct {
	columns []string
	policy  UnseenPolicy

	mu    sync.RWMutex
	vocab *Vocabulary
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithColumns sets the columns to encode, in output order.
func WithColumns(columns ...string) Option {
	return func(e *Encoder) { e.columns = append([]string(nil), columns...) }
}

// WithPolicy sets the unseen-category policy.
func WithPolicy(p UnseenPolicy) Option {
	return func(e *Encoder) { e.policy = p }
}

// New creates an unfitted encoder over dataset.CategoricalColumns with
// PolicyError, unless options say otherwise.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		columns: dataset.CategoricalColumns(),
		policy:  PolicyError,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the encoder as a pipeline stage.
func (e *Encoder) Name() string { return "encode" }

// Policy returns the configured unseen-category policy.
func (e *Encoder) Policy() UnseenPolicy { return e.policy }

// Fitted reports whether Fit has completed.
func (e *Encoder) Fitted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab != nil
}

// Vocabulary returns the learned vocabulary, or nil before Fit.
func (e *Encoder) Vocabulary() *Vocabulary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vocab
}

// Fit collects the distinct values of every encoded column. It may be called
// once; later calls return ErrAlreadyFitted and leave the vocabulary as is.
func (e *Encoder) Fit(t *dataset.Table) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.vocab != nil {
		return ErrAlreadyFitted
	}

	seen := make(map[string]map[string]struct{}, len(e.columns))
	for _, col := range e.columns {
		cells, err := t.Column(col)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		values := make(map[string]struct{})
		for _, c := range cells {
			values[c.String()] = struct{}{}
		}
		seen[col] = values
	}

	e.vocab = newVocabulary(e.columns, seen)

	for _, col := range e.columns {
		metrics.EncoderVocabularySize.WithLabelValues(col).Set(float64(len(e.vocab.categories[col])))
	}
	metrics.EncoderFeatureWidth.Set(float64(e.vocab.width))
	logging.Debug("Encoder fitted: %d columns, %d indicator features", len(e.columns), e.vocab.width)
	return nil
}

// Transform replaces the encoded columns with their indicator columns. Other
// columns keep their relative order and come first; indicator columns follow
// in vocabulary order. Rows keep their order except those removed under
// PolicyDrop.
func (e *Encoder) Transform(t *dataset.Table) (*dataset.Table, error) {
	vocab := e.Vocabulary()
	if vocab == nil {
		return nil, ErrNotFitted
	}

	encodedIdx := make([]int, len(vocab.columns))
	isEncoded := make(map[int]bool, len(vocab.columns))
	for i, col := range vocab.columns {
		c, ok := t.ColumnIndex(col)
		if !ok {
			return nil, fmt.Errorf("transform: %w: %s", dataset.ErrColumnNotFound, col)
		}
		encodedIdx[i] = c
		isEncoded[c] = true
	}

	var passIdx []int
	var outColumns []string
	for i, col := range t.Columns() {
		if !isEncoded[i] {
			passIdx = append(passIdx, i)
			outColumns = append(outColumns, col)
		}
	}
	outColumns = append(outColumns, vocab.FeatureNames()...)

	out, err := dataset.NewTable(outColumns...)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	dropped := 0
rows:
	for r := 0; r < t.Len(); r++ {
		row := t.Row(r)
		cells := make([]dataset.Cell, 0, len(outColumns))
		for _, c := range passIdx {
			cells = append(cells, row[c])
		}

		indicators := make([]dataset.Cell, vocab.width)
		for i := range indicators {
			indicators[i] = dataset.NumberCell(0)
		}

		for i, col := range vocab.columns {
			value := row[encodedIdx[i]].String()
			pos, ok := vocab.Position(col, value)
			if ok {
				indicators[pos] = dataset.NumberCell(1)
				continue
			}

			metrics.EncoderUnseenTotal.WithLabelValues(col, e.policy.String()).Inc()
			switch e.policy {
			case PolicyZero:
				logging.Warn("Row %d: unseen %s value %q, writing an all-zero block", r, col, value)
			case PolicyDrop:
				logging.Warn("Row %d: unseen %s value %q, dropping row", r, col, value)
				dropped++
				continue rows
			default:
				return nil, &UnseenCategoryError{Column: col, Value: value, Row: r}
			}
		}

		if err := out.AppendRow(append(cells, indicators...)); err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
	}

	if dropped > 0 {
		logging.Warn("Dropped %d of %d rows with unseen categories", dropped, t.Len())
	}
	return out, nil
}

// FitTransform fits on t and transforms it.
func (e *Encoder) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}
