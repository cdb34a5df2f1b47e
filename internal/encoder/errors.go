package encoder

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned by Transform before Fit.
	ErrNotFitted = errors.New("encoder not fitted")
	// ErrAlreadyFitted is returned by a second Fit; the vocabulary is frozen.
	ErrAlreadyFitted = errors.New("encoder already fitted")
	// ErrUnseenCategory is matched by every UnseenCategoryError.
	ErrUnseenCategory = errors.New("unseen category")
	// ErrUnknownPolicy is returned when parsing an unrecognised policy name.
	ErrUnknownPolicy = errors.New("unknown unseen-category policy")
)

// UnseenCategoryError reports a value met at transform time that was not in
// the fitted vocabulary for its column.
type UnseenCategoryError struct {
	Column string
	Value  string
	Row    int
}

func (e *UnseenCategoryError) Error() string {
	return fmt.Sprintf("column %s row %d: value %q not seen during fit", e.Column, e.Row, e.Value)
}

// Is makes errors.Is(err, ErrUnseenCategory) true.
func (e *UnseenCategoryError) Is(target error) bool { return target == ErrUnseenCategory }
