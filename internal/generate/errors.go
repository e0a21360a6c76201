package generate

import (
	"errors"
	"fmt"
)

// ErrInput is matched by every InputError.
var ErrInput = errors.New("generate: invalid input")

// InputError reports text that cannot produce a document: empty, blank or
// larger than the configured limit.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("generate: %s", e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInput }
