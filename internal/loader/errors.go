package loader

import "fmt"

// MalformedInputError reports an input that could not be parsed as the
// declared format at all. It is the only fatal error class: everything
// else degrades to warnings on the graph.
type MalformedInputError struct {
	Path   string
	Format Format
	Err    error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s input %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap exposes the underlying parse error.
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
