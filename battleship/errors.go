package battleship

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every MalformedError
var ErrMalformed = errors.New("battleship: malformed input")

// MalformedError reports a cell, ship or grid that cannot be used
type MalformedError struct {
	Value  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("battleship: %s: %s", e.Value, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

func outOfBounds(grid Grid, c Cell) error {
	return &MalformedError{Value: "cell " + c.String(), Reason: fmt.Sprintf("outside %s grid", grid)}
}
