package mergetree

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// errSkipDir tells walkDir not to descend into the directory just visited
var errSkipDir = errors.New("skip directory")

// walkFunc is called for every entry below the walk root. A non-nil err
// reports a directory, or the root, that could not be read; info is nil in
// that case.
type walkFunc func(path string, info fs.FileInfo, err error) error

// walk visits everything below root, depth first, directory entries in
// lexical order. The root itself is not visited, and is followed when it is
// a symlink. A root that cannot be stat'ed or is not a directory is handed
// to fn as an unreadable entry.
func walk(source Source, root string, fn walkFunc) error {
	info, err := source.Stat(root)
	if err != nil {
		return fn(root, nil, err)
	}
	if !info.IsDir() {
		return fn(root, nil, ErrNotDirectory)
	}
	return walkDir(source, root, fn)
}

func walkDir(source Source, dir string, fn walkFunc) error {
	entries, err := source.ReadDir(dir)
	if err != nil {
		return fn(dir, nil, err)
	}

	for _, info := range entries {
		name := info.Name()
		if name == "." || name == ".." {
			continue
		}

		path := filepath.Join(dir, name)
		if err := fn(path, info, nil); err != nil {
			if errors.Is(err, errSkipDir) {
				continue
			}
			return err
		}

		if info.IsDir() {
			if err := walkDir(source, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
