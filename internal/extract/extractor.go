package extract

import (
	"fmt"

	"micrometa/internal/config"
	"micrometa/internal/dataset"
	"micrometa/internal/logging"
)

// Prefixes of the numeric tokens in the acquisition naming convention.
const (
	SlidePrefix   = "s"
	ZStackPrefix  = "z"
	ChannelPrefix = "ch"
	// OverlayToken marks a merged-channel image when no channel token is present.
	OverlayToken = "overlay"
)

// Observer receives every rule decision.
type Observer interface {
	ObserveDecision(filename string, d Decision)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(filename string, d Decision)

// ObserveDecision implements Observer.
func (f ObserverFunc) ObserveDecision(filename string, d Decision) { f(filename, d) }

// LogObserver writes each decision as a DEBUG event.
type LogObserver struct{}

// ObserveDecision implements Observer.
func (LogObserver) ObserveDecision(filename string, d Decision) {
	if !logging.IsDebugEnabled() {
		return
	}
	msg := "field matched"
	if !d.Matched() {
		msg = "field not matched"
	}
	logging.Event(logging.LevelDebug, msg, logging.Fields{
		"field": d.Field.Column(),
		"file":  filename,
		"rule":  d.Kind,
		"token": d.Token,
		"value": d.Value.String(),
	})
}

type multiObserver []Observer

func (m multiObserver) ObserveDecision(filename string, d Decision) {
	for _, o := range m {
		o.ObserveDecision(filename, d)
	}
}

// MultiObserver fans decisions out to every non-nil observer.
func MultiObserver(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Extractor applies one Rule per metadata field. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	rules    []Rule
	observer Observer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithObserver replaces the default LogObserver.
func WithObserver(o Observer) Option {
	return func(e *Extractor) {
		if o != nil {
			e.observer = o
		}
	}
}

// New builds the six field rules from cfg: slide (s00..), Z-stack (z00..),
// channel (ch00.. with the overlay fallback), species and labeling
// (case-sensitive) and objective (case-insensitive).
func New(cfg config.ExtractionConfig, opts ...Option) *Extractor {
	rules := []Rule{
		NewNumericRule(dataset.FieldSlide, SlidePrefix, cfg.SlideMax, ""),
		NewNumericRule(dataset.FieldZStack, ZStackPrefix, cfg.ZStackMax, ""),
		NewNumericRule(dataset.FieldChannel, ChannelPrefix, cfg.ChannelMax, OverlayToken),
		NewVocabularyRule(dataset.FieldSpecies, cfg.Species, false),
		NewVocabularyRule(dataset.FieldLabeling, cfg.Labeling, false),
		NewVocabularyRule(dataset.FieldObjective, cfg.Objective, true),
	}
	return NewWithRules(rules, opts...)
}

// NewWithRules builds an extractor from explicit rules. Fields without a rule
// are left unknown.
func NewWithRules(rules []Rule, opts ...Option) *Extractor {
	e := &Extractor{
		rules:    append([]Rule(nil), rules...),
		observer: LogObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rules in application order.
func (e *Extractor) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Extract decodes every field of a single filename.
func (e *Extractor) Extract(filename string) dataset.Metadata {
	var m dataset.Metadata
	for _, r := range e.rules {
		d := r.Match(filename)
		e.observer.ObserveDecision(filename, d)
		m.Set(r.Field(), d.Value)
	}
	return m
}

// ExtractAll decodes every file. Each rule runs over the whole file list and
// must yield exactly one value per file; a length mismatch is reported as
// dataset.ErrAlignment. The returned records are in input order.
func (e *Extractor) ExtractAll(refs []dataset.FileRef) ([]dataset.Record, error) {
	records := make([]dataset.Record, len(refs))
	for i, ref := range refs {
		records[i].FileRef = ref
	}

	for _, r := range e.rules {
		column := e.apply(r, refs)
		if len(column) != len(refs) {
			return nil, fmt.Errorf("%w: %s rule produced %d values for %d files",
				dataset.ErrAlignment, r.Field(), len(column), len(refs))
		}
		for i, v := range column {
			records[i].Set(r.Field(), v)
		}
	}
	return records, nil
}

func (e *Extractor) apply(r Rule, refs []dataset.FileRef) []dataset.Value {
	column := make([]dataset.Value, 0, len(refs))
	for _, ref := range refs {
		d := r.Match(ref.Name)
		e.observer.ObserveDecision(ref.Name, d)
		column = append(column, d.Value)
	}
	return column
}
