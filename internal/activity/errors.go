package activity

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a catalog or context value outside its allowed set.
// It is a caller contract violation and is never recovered inside the engine.
type ConfigurationError struct {
	Field   string
	Value   string
	Allowed []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration error: %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s %q is not one of [%s]", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func invalidEnum(field, value string, allowed ...string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Allowed: allowed}
}
