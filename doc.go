/*
Package mergetree builds the merged directory tree of a set of modules, each
module being a directory tree that overlays the same target.

# Overview

Modules are merged one root at a time, lowest priority first. Every entry
below a module root is classified into an Entry and folded into a single
tree of Nodes. The finished tree tells a mount layer, for every path, which
module file supplies it, whether it was deleted by a whiteout and whether a
directory replaces rather than merges with lower modules.

# Merge Rules

For each path, the last entry applied decides the node's type and content:

  - a regular entry sets the type and the module path, overriding any
    earlier whiteout
  - a whiteout sets the type to Whiteout and keeps the module path of the
    entry it hides
  - Replace, once set by any module, stays set
  - Skip is never written by a merge

Intermediate directories are created as needed. A node descended into is
not checked for being a directory, and children survive a change of type,
so a whiteout over a directory still lists the directory's earlier
children. Mount layers look at FileType first.

# Basic Usage

	tree := mergetree.NewRoot("system")
	for _, root := range []string{"/data/adb/modules/a/system", "/data/adb/modules/b/system"} {
	    if err := mergetree.MergeModuleRoot(tree, root); err != nil {
	        return err
	    }
	}
	mergetree.Fprint(os.Stdout, tree)

# Sources

Module roots are read through a Source. NewOsSource reads the host
filesystem through afero; NewAferoSource and NewAbsSource accept any afero
or absfs filesystem, which makes in-memory modules easy to stage:

	layer, _ := memfs.NewFS()
	m := mergetree.New(mergetree.WithSource(mergetree.NewAbsSource(layer)))
	report, err := m.Merge(tree, "/module")

# Markers

The default classifier understands both overlayfs and AUFS conventions. A
character device numbered 0/0 or a file named ".wh.<name>" is a whiteout
for <name>. A directory containing ".replace", ".wh.__dir_opaque" or
".wh..wh..opq", or carrying the trusted.overlay.opaque=y attribute,
replaces lower modules. The marker files themselves never appear in the
tree.

# Errors

Entries that cannot be read are skipped and listed in Report.Dropped; so is
a module root that is missing or not a directory. A symlinked root is
followed. A failure to resolve an entry against its root aborts the pass
with a *PathError, leaving the tree partially merged; callers decide
whether to discard it.
*/
package mergetree
