// Package pipeline composes the dataset stages into a single run:
// discovery, extraction and assembly produce a table, then each Transformer
// is fitted on and applied to the output of the previous one.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"micrometa/internal/dataset"
	"micrometa/internal/logging"
	"micrometa/internal/metrics"

	"github.com/google/uuid"
)

// ErrNoSource is returned by Run on a pipeline built without a Source.
var ErrNoSource = errors.New("pipeline has no source")

// ErrAlreadyRun is returned by a second Run. Fitted steps keep their state,
// so a new table goes through Apply instead.
var ErrAlreadyRun = errors.New("pipeline has already run")

// Source produces the initial table.
type Source interface {
	Name() string
	Load(ctx context.Context) (*dataset.Table, error)
}

// Transformer is a table-to-table stage with a fit/transform contract.
// Stateless stages implement Fit as a no-op.
type Transformer interface {
	Name() string
	Fit(t *dataset.Table) error
	Transform(t *dataset.Table) (*dataset.Table, error)
}

// Pipeline is a Source followed by ordered Transformers. It runs once.
type Pipeline struct {
	source Source
	steps  []Transformer
	runID  string
	ran    atomic.Bool
}

// New creates a pipeline with a fresh run ID.
func New(source Source, steps ...Transformer) *Pipeline {
	return &Pipeline{
		source: source,
		steps:  steps,
		runID:  uuid.NewString(),
	}
}

// RunID identifies this pipeline in log events.
func (p *Pipeline) RunID() string { return p.runID }

// Steps returns the transformers in order.
func (p *Pipeline) Steps() []Transformer {
	return append([]Transformer(nil), p.steps...)
}

// Run loads the source, then fits and transforms every step in order. Any
// stage error aborts the run; no partial table is returned.
func (p *Pipeline) Run(ctx context.Context) (*dataset.Table, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}
	start := time.Now()

	out, err := p.run(ctx)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("failure").Inc()
		logging.Event(logging.LevelError, "pipeline failed", logging.Fields{
			"run_id": p.runID, "error": err.Error(),
		})
		return nil, err
	}

	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	metrics.PipelineRowsOutput.Set(float64(out.Len()))
	logging.Event(logging.LevelInfo, "pipeline finished", logging.Fields{
		"run_id":   p.runID,
		"rows":     out.Len(),
		"columns":  out.Width(),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	})
	return out, nil
}

func (p *Pipeline) run(ctx context.Context) (*dataset.Table, error) {
	if p.source == nil {
		return nil, ErrNoSource
	}

	logging.Event(logging.LevelDebug, "stage started", logging.Fields{"run_id": p.runID, "stage": p.source.Name()})
	table, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.source.Name(), err)
	}

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err = p.fitTransform(step, table)
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (p *Pipeline) fitTransform(step Transformer, in *dataset.Table) (*dataset.Table, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues(step.Name()).Observe(time.Since(start).Seconds())
	}()

	if err := step.Fit(in); err != nil {
		return nil, fmt.Errorf("%s: fit: %w", step.Name(), err)
	}
	out, err := step.Transform(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", step.Name(), err)
	}

	logging.Event(logging.LevelDebug, "stage finished", logging.Fields{
		"run_id": p.runID, "stage": step.Name(), "rows": out.Len(), "columns": out.Width(),
	})
	return out, nil
}

// Apply runs Transform of every already-fitted step over t, without fitting.
func (p *Pipeline) Apply(t *dataset.Table) (*dataset.Table, error) {
	var err error
	for _, step := range p.steps {
		t, err = step.Transform(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return t, nil
}
