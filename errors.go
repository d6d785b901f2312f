package mergetree

import (
	"errors"
	"fmt"
)

var (
	// ErrOutsideRoot is returned when an entry cannot be expressed relative to its module root
	ErrOutsideRoot = errors.New("path escapes module root")
	// ErrInvalidWhiteout is returned for a whiteout name that does not name anything
	ErrInvalidWhiteout = errors.New("whiteout does not name a path")
	// ErrMarker is returned by a Classifier for marker files that carry
	// policy for their directory and are not entries themselves
	ErrMarker = errors.New("marker entry")
	// ErrNotDirectory is recorded when a module root is not a directory
	ErrNotDirectory = errors.New("module root is not a directory")
)

// PathError records a failure that aborted a merge pass, with the module
// root and the offending path.
type PathError struct {
	Op   string // "resolve"
	Root string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" || e.Path == e.Root {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Root, e.Err)
	}
	return fmt.Sprintf("%s %s in %s: %v", e.Op, e.Path, e.Root, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

const opResolve = "resolve"
