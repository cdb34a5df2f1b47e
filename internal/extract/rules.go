package extract

import (
	"fmt"
	"strings"

	"micrometa/internal/dataset"
)

// Rule kinds reported in decisions.
const (
	KindNumeric    = "numeric"
	KindOverlay    = "overlay"
	KindVocabulary = "vocabulary"
	KindNone       = "none"
)

// Decision is the outcome of applying one rule to one filename.
type Decision struct {
	Field dataset.Field
	Value dataset.Value
	// Kind is the rule branch that produced Value, KindNone when nothing matched.
	Kind string
	// Token is the candidate substring that matched, empty when nothing did.
	Token string
}

// Matched reports whether a candidate matched.
func (d Decision) Matched() bool { return d.Kind != KindNone }

// Rule decodes a single field from a filename.
type Rule interface {
	Field() dataset.Field
	Match(filename string) Decision
}

// NumericRule matches prefix+%02d tokens for indices 0 through a limit inclusive,
// lowest index first. Indices of 100 and above are rendered unpadded.
type NumericRule struct {
	field    dataset.Field
	prefix   string
	tokens   []string
	fallback string
}

// NewNumericRule builds the candidate tokens once. A non-empty fallback is
// recorded as the overlay value when no numeric token matches but the
// fallback substring is present.
func NewNumericRule(field dataset.Field, prefix string, limit int, fallback string) *NumericRule {
	if limit < 0 {
		limit = -1
	}
	tokens := make([]string, limit+1)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("%s%02d", prefix, i)
	}
	return &NumericRule{field: field, prefix: prefix, tokens: tokens, fallback: fallback}
}

// Field implements Rule.
func (r *NumericRule) Field() dataset.Field { return r.field }

// Tokens returns the candidate tokens in search order.
func (r *NumericRule) Tokens() []string {
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Match implements Rule.
func (r *NumericRule) Match(filename string) Decision {
	for i, tok := range r.tokens {
		if strings.Contains(filename, tok) {
			return Decision{Field: r.field, Value: dataset.Int(i), Kind: KindNumeric, Token: tok}
		}
	}
	if r.fallback != "" && strings.Contains(filename, r.fallback) {
		return Decision{Field: r.field, Value: dataset.Overlay(), Kind: KindOverlay, Token: r.fallback}
	}
	return Decision{Field: r.field, Value: dataset.Unknown(), Kind: KindNone}
}

// VocabularyRule matches configured terms in list order. The first term that
// occurs in the filename wins even when a later, longer term also occurs.
type VocabularyRule struct {
	field    dataset.Field
	terms    []string
	folded   []string
	foldCase bool
}

// NewVocabularyRule copies terms. With foldCase the comparison ignores case
// but the recorded value keeps the configured spelling.
func NewVocabularyRule(field dataset.Field, terms []string, foldCase bool) *VocabularyRule {
	r := &VocabularyRule{
		field:    field,
		terms:    append([]string(nil), terms...),
		foldCase: foldCase,
	}
	if foldCase {
		r.folded = make([]string, len(terms))
		for i, t := range terms {
			r.folded[i] = strings.ToLower(t)
		}
	}
	return r
}

// Field implements Rule.
func (r *VocabularyRule) Field() dataset.Field { return r.field }

// Match implements Rule.
func (r *VocabularyRule) Match(filename string) Decision {
	candidates := r.terms
	if r.foldCase {
		filename = strings.ToLower(filename)
		candidates = r.folded
	}
	for i, c := range candidates {
		if strings.Contains(filename, c) {
			return Decision{Field: r.field, Value: dataset.Text(r.terms[i]), Kind: KindVocabulary, Token: r.terms[i]}
		}
	}
	return Decision{Field: r.field, Value: dataset.Unknown(), Kind: KindNone}
}
