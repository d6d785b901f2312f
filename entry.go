package mergetree

import "path/filepath"

// Entry is a module filesystem entry as seen by the merge: where it lives on
// disk, where it lands in the merged view, and what it means there.
type Entry struct {
	// RealPath is the on-disk location supplying the content
	RealPath string
	// RelativePath is the virtual path relative to the module root
	RelativePath string
	// FileType is the physical type; it is never Whiteout
	FileType FileType

	IsWhiteout bool
	IsReplace  bool
}

// Segments returns the ordered components of the entry's relative path
func (e Entry) Segments() []string {
	return splitPath(filepath.ToSlash(e.RelativePath))
}
