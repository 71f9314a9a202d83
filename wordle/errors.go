package wordle

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is wrapped by every MalformedError
	ErrMalformed   = errors.New("wordle: malformed word")
	ErrUnknownWord = errors.New("wordle: word not in dictionary")
)

// MalformedError reports a probe and hypothesis that cannot be compared
type MalformedError struct {
	Probe      string
	Hypothesis string
	Reason     string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("wordle: cannot score %q against %q: %s", e.Probe, e.Hypothesis, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }
