package footprint

import (
	"fmt"
)

// ValidationError reports a malformed footprint or element, such as a
// footprint without a name or a pad with an unknown shape.
type ValidationError struct {
	Kind   string // element being built, e.g. "Pad"
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s %q: %s", e.Kind, e.Field, fmt.Sprint(e.Value), e.Reason)
}

// ConfigurationError reports invalid generator parameters, for example a pad
// array with no pins or a non-positive line width in a KLC configuration.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s", e.Field, e.Value, e.Reason)
}

// SerializationError reports a node that could not be rendered. Path locates
// the node from the footprint root, e.g. "Translation[2]/PolygonLine[0]".
type SerializationError struct {
	Footprint string
	Path      string
	Err       error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("footprint %s: %s: %v", e.Footprint, e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
