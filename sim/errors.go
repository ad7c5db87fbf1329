package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every ConfigError so callers can test with errors.Is.
var ErrInvalidConfig = errors.New("invalid building configuration")

// ConfigError reports a parameter outside its documented range, or a zero
// denominator (stair width, travel speed, receiving capacity).
// A run never starts when validation returns one.
type ConfigError struct {
	Field  string // dotted path, e.g. "stairs[A].width"
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s, got %v", e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func newConfigError(field string, value any, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
