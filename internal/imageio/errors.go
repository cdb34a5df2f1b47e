package imageio

import (
	"errors"
	"fmt"
)

// ErrResource is matched by every ResourceError.
var ErrResource = errors.New("image resource error")

// ResourceError reports an image that could not be opened or decoded.
type ResourceError struct {
	Path string
	Op   string // "open", "decode"
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Is makes errors.Is(err, ErrResource) true.
func (e *ResourceError) Is(target error) bool { return target == ErrResource }

func (e *ResourceError) Unwrap() error { return e.Err }
