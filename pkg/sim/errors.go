package sim

import (
	"errors"
	"fmt"
)

var (
	ErrConfig = errors.New("invalid configuration")
	ErrInput  = errors.New("invalid input")
)

// ConfigError rejects a memory/page size combination before any run state exists.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%d: %s", ErrConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// InputError rejects one process (or one reference) of the input.
type InputError struct {
	ProcessID string
	Index     int // position in the input sequence
	Field     string
	Value     string
	Reason    string
}

func (e *InputError) Error() string {
	who := e.ProcessID
	if who == "" {
		who = fmt.Sprintf("#%d", e.Index+1)
	}
	return fmt.Sprintf("%v for process %s: %s=%q: %s", ErrInput, who, e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInput
}
