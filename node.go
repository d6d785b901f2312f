package mergetree

import (
	"io/fs"
	"strings"
)

// FileType is the kind of entry a Node stands for in the merged view
type FileType int

const (
	// Directory is a directory, real or materialized on demand
	Directory FileType = iota
	// RegularFile covers regular files and every non-directory, non-symlink type
	RegularFile
	// Symlink is a symbolic link
	Symlink
	// Whiteout marks a path deleted by a higher-priority module
	Whiteout
)

var fileTypeNames = map[FileType]string{
	Directory:   "dir",
	RegularFile: "file",
	Symlink:     "symlink",
	Whiteout:    "whiteout",
}

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// FileTypeOf maps a physical file mode to a FileType. Pipes, sockets and
// devices collapse to RegularFile; Whiteout is never derived from a mode.
func FileTypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsDir():
		return Directory
	case mode&fs.ModeSymlink != 0:
		return Symlink
	default:
		return RegularFile
	}
}

// Node is one entry of the merged tree. Each node owns its children, keyed
// by the child's Name.
type Node struct {
	Name     string
	FileType FileType
	// ModulePath is the on-disk file supplying content, empty when none
	ModulePath string
	Children   map[string]*Node
	// Replace is sticky: once set by any entry it stays set
	Replace bool
	// Skip belongs to the surrounding policy; merging never writes it
	Skip bool
}

// NewRoot returns the empty root directory of a merge session
func NewRoot(name string) *Node {
	return newNode(name, Directory)
}

func newNode(name string, fileType FileType) *Node {
	return &Node{
		Name:     name,
		FileType: fileType,
		Children: make(map[string]*Node),
	}
}

// child returns the child called name, creating it with fileType if absent
func (n *Node) child(name string, fileType FileType) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	c, ok := n.Children[name]
	if !ok {
		c = newNode(name, fileType)
		n.Children[name] = c
	}
	return c
}

// HasContent reports whether the node carries a module path
func (n *Node) HasContent() bool {
	return n.ModulePath != ""
}

// Apply folds one classified entry into the tree rooted at n.
//
// Intermediate segments are fetched or created as directories without
// looking at the type of an existing node. The terminal node takes the
// entry's type and content unless the entry is a whiteout, in which case
// only the type changes. Children are left alone whatever the new type is.
func (n *Node) Apply(e Entry) {
	segments := e.Segments()
	if len(segments) == 0 {
		return
	}

	current := n
	for _, name := range segments[:len(segments)-1] {
		current = current.child(name, Directory)
	}

	fileType := e.FileType
	if e.IsWhiteout {
		fileType = Whiteout
	}
	node := current.child(segments[len(segments)-1], fileType)

	if e.IsWhiteout {
		node.FileType = Whiteout
	} else {
		node.ModulePath = e.RealPath
		node.FileType = e.FileType
	}

	if e.IsReplace {
		node.Replace = true
	}
}

// splitPath splits a slash separated relative path, dropping empty and "."
// segments
func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
