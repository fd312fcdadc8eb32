package genetic

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigError
var ErrInvalidConfig = errors.New("invalid population configuration")

// ErrGeneLength reports an individual whose gene count differs from the population's
var ErrGeneLength = errors.New("gene length mismatch")

// ConfigError describes a rejected configuration field
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("genetic: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
