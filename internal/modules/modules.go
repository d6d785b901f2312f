// Package modules finds the modules installed under a modules directory and
// merges their partition trees in priority order.
package modules

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/modoverlay/mergetree"
	"github.com/spf13/afero"
)

// Files that take a module out of the merge when present in its directory
const (
	DisableFile   = "disable"
	RemoveFile    = "remove"
	SkipMountFile = "skip_mount"
)

// Module is one installed module
type Module struct {
	ID string
	// Path is the module directory
	Path string
	// Root is the partition directory merged into the tree
	Root string
}

// List returns the enabled modules under dir that provide partition,
// lowest priority first. Modules are ordered by id, so a later id wins.
func List(fsys afero.Fs, dir, partition string) ([]Module, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules directory %s: %w", dir, err)
	}

	var modules []Module
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m := Module{
			ID:   entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		}
		m.Root = filepath.Join(m.Path, partition)

		enabled, err := isEnabled(fsys, m)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}

		ok, err := afero.IsDir(fsys, m.Root)
		if err != nil || !ok {
			continue
		}
		modules = append(modules, m)
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].ID < modules[j].ID
	})
	return modules, nil
}

func isEnabled(fsys afero.Fs, m Module) (bool, error) {
	for _, name := range []string{DisableFile, RemoveFile, SkipMountFile} {
		exists, err := afero.Exists(fsys, filepath.Join(m.Path, name))
		if err != nil {
			return false, fmt.Errorf("failed to check %s of module %s: %w", name, m.ID, err)
		}
		if exists {
			return false, nil
		}
	}
	return true, nil
}

// Result is the outcome of Build
type Result struct {
	Tree    *mergetree.Node
	Reports []*mergetree.Report
	// Excluded counts exclude paths found in the tree
	Excluded int
}

// Build merges the modules in order into a tree named after partition, then
// marks the exclude paths as skipped. A module failing to merge stops the
// build; the error names the module.
func Build(modules []Module, partition string, exclude []string, opts ...mergetree.Option) (*Result, error) {
	merger := mergetree.New(opts...)
	result := &Result{Tree: mergetree.NewRoot(partition)}

	for _, m := range modules {
		report, err := merger.Merge(result.Tree, m.Root)
		if report != nil {
			result.Reports = append(result.Reports, report)
		}
		if err != nil {
			return result, fmt.Errorf("module %s: %w", m.ID, err)
		}
	}

	result.Excluded = result.Tree.SetSkip(exclude...)
	return result, nil
}
