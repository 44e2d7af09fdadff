package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field messages for rejected input. The
// HTTP boundary turns it into a structured validation response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
