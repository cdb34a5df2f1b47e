package encoder

import (
	"fmt"
	"strings"
)

// UnseenPolicy decides what Transform does with a category that Fit never saw.
type UnseenPolicy int

const (
	// PolicyError fails the transform with an UnseenCategoryError.
	PolicyError UnseenPolicy = iota
	// PolicyZero writes an all-zero indicator block for the column.
	PolicyZero
	// PolicyDrop removes the row from the output.
	PolicyDrop
)

// ParseUnseenPolicy accepts "error", "zero" or "drop" in any case. An empty
// name is the default, PolicyError.
func ParseUnseenPolicy(name string) (UnseenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return PolicyError, nil
	case "zero":
		return PolicyZero, nil
	case "drop":
		return PolicyDrop, nil
	default:
		return PolicyError, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

func (p UnseenPolicy) String() string {
	switch p {
	case PolicyZero:
		return "zero"
	case PolicyDrop:
		return "drop"
	default:
		return "error"
	}
}
