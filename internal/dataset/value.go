package dataset

import "strconv"

const (
	// UnknownValue is the string form of a field no rule matched.
	UnknownValue = "unknown"
	// OverlayValue is the symbolic channel recorded for overlay images.
	OverlayValue = "overlay"
)

type valueKind uint8

const (
	kindUnknown valueKind = iota
	kindInt
	kindText
	kindOverlay
)

// Value is a single decoded metadata field. The zero Value is the unknown
// sentinel.
type Value struct {
	kind valueKind
	num  int
	text string
}

// Unknown returns the sentinel recorded when no candidate matched.
func Unknown() Value { return Value{} }

// Int returns a numeric value such as a slide or Z-stack index.
func Int(n int) Value { return Value{kind: kindInt, num: n} }

// Text returns a vocabulary value such as a species or objective.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Overlay returns the symbolic channel value for overlay images.
func Overlay() Value { return Value{kind: kindOverlay} }

// IsUnknown reports whether v is the unknown sentinel.
func (v Value) IsUnknown() bool { return v.kind == kindUnknown }

// IsOverlay reports whether v is the symbolic overlay channel.
func (v Value) IsOverlay() bool { return v.kind == kindOverlay }

// AsInt returns the numeric value and whether v holds one.
func (v Value) AsInt() (int, bool) {
	return v.num, v.kind == kindInt
}

// String returns the categorical form used by the table and the encoder.
func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.Itoa(v.num)
	case kindText:
		return v.text
	case kindOverlay:
		return OverlayValue
	default:
		return UnknownValue
	}
}
