package mergetree

import (
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// SkipChildren can be returned from a WalkFunc to skip the node's subtree
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node visited by Walk. p is the node's slash
// separated path relative to the walk start, "" for the start itself.
type WalkFunc func(p string, n *Node) error

// Lookup returns the node at the slash separated path p below n, or nil
func (n *Node) Lookup(p string) *Node {
	current := n
	for _, name := range splitPath(p) {
		next, ok := current.Children[name]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// SortedChildren returns the children ordered by name. Mounting in this
// order keeps the result independent of map iteration.
func (n *Node) SortedChildren() []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// Walk visits n and its descendants in pre-order, children sorted by name
func (n *Node) Walk(fn WalkFunc) error {
	return n.walk("", fn)
}

func (n *Node) walk(p string, fn WalkFunc) error {
	if err := fn(p, n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.SortedChildren() {
		if err := c.walk(path.Join(p, c.Name), fn); err != nil {
			return err
		}
	}
	return nil
}

// SetSkip marks the nodes at the given paths as skipped and returns how many
// of the paths exist in the tree. Merging never calls it; it is the hook for
// exclusion policies applied around a merge.
func (n *Node) SetSkip(paths ...string) int {
	found := 0
	for _, p := range paths {
		if node := n.Lookup(p); node != nil {
			node.Skip = true
			found++
		}
	}
	return found
}

// Fprint writes an indented listing of the tree to w
func Fprint(w io.Writer, tree *Node) error {
	return tree.Walk(func(p string, n *Node) error {
		depth := 0
		if p != "" {
			depth = strings.Count(p, "/") + 1
		}

		name := n.Name
		if name == "" {
			name = "/"
		}
		line := fmt.Sprintf("%s%s [%s]", strings.Repeat("  ", depth), name, n.FileType)
		if n.Replace {
			line += " replace"
		}
		if n.Skip {
			line += " skip"
		}
		if n.HasContent() {
			line += " <- " + n.ModulePath
		}

		_, err := fmt.Fprintln(w, line)
		return err
	})
}
