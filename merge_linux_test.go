//go:build linux

package mergetree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// TestMergeModuleRootHostFS tests merging real directories from the host
func TestMergeModuleRootHostFS(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	for _, p := range []string{"a/bin", "b/bin", "b/lib"} {
		if err := os.MkdirAll(filepath.Join(dir, p), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(a, "bin", "sh"), []byte("#!"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("busybox", filepath.Join(b, "bin", "sh")); err != nil {
		t.Fatal(err)
	}
	if err := unix.Mkfifo(filepath.Join(b, "lib", "pipe"), 0644); err != nil {
		t.Fatal(err)
	}

	tree := NewRoot("system")
	for _, root := range []string{a, b} {
		if err := MergeModuleRoot(tree, root); err != nil {
			t.Fatalf("merge of %s failed: %v", root, err)
		}
	}

	sh := tree.Lookup("bin/sh")
	if sh.FileType != Symlink {
		t.Errorf("expected Symlink, got %s", sh.FileType)
	}
	if sh.ModulePath != filepath.Join(b, "bin", "sh") {
		t.Errorf("unexpected module path '%s'", sh.ModulePath)
	}
	if pipe := tree.Lookup("lib/pipe"); pipe == nil || pipe.FileType != RegularFile {
		t.Error("expected the pipe to merge as a regular file")
	}
}

// TestMergeWhiteoutDevice tests overlayfs style whiteouts; mknod needs root
func TestMergeWhiteoutDevice(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("creating character devices requires root")
	}

	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	for _, p := range []string{a, b} {
		if err := os.MkdirAll(p, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(a, "hosts"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := unix.Mknod(filepath.Join(b, "hosts"), unix.S_IFCHR|0000, 0); err != nil {
		t.Skipf("mknod not permitted: %v", err)
	}

	tree := NewRoot("system")
	for _, root := range []string{a, b} {
		if err := MergeModuleRoot(tree, root); err != nil {
			t.Fatalf("merge of %s failed: %v", root, err)
		}
	}
	if hosts := tree.Lookup("hosts"); hosts.FileType != Whiteout {
		t.Errorf("expected Whiteout, got %s", hosts.FileType)
	}
}

// TestMergeOpaqueXattr tests the overlayfs opaque attribute; trusted.* needs root
func TestMergeOpaqueXattr(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("setting trusted xattrs requires root")
	}

	dir := t.TempDir()
	app := filepath.Join(dir, "app")
	if err := os.MkdirAll(app, 0755); err != nil {
		t.Fatal(err)
	}
	if err := unix.Lsetxattr(app, OpaqueXattr, []byte("y"), 0); err != nil {
		t.Skipf("xattrs not supported here: %v", err)
	}

	tree := NewRoot("system")
	if err := MergeModuleRoot(tree, dir); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !tree.Lookup("app").Replace {
		t.Error("expected app to be marked replace")
	}
}

// TestMergeSymlinkedRoot tests that a module root reached through a symlink is followed
func TestMergeSymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	if err := os.MkdirAll(filepath.Join(store, "etc"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(store, "etc", "hosts"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(dir, "system")
	if err := os.Symlink(store, root); err != nil {
		t.Fatal(err)
	}

	tree := NewRoot("system")
	report, err := New().Merge(tree, root)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(report.Dropped) != 0 {
		t.Errorf("expected no dropped entries, got %v", report.Dropped)
	}
	hosts := tree.Lookup("etc/hosts")
	if hosts == nil || hosts.FileType != RegularFile {
		t.Fatal("expected etc/hosts through the symlinked root")
	}
	if hosts.ModulePath != filepath.Join(root, "etc", "hosts") {
		t.Errorf("unexpected module path '%s'", hosts.ModulePath)
	}
}

// TestMergeMissingRootHostFS tests that a missing host root is dropped
func TestMergeMissingRootHostFS(t *testing.T) {
	root := filepath.Join(t.TempDir(), "gone")

	tree := NewRoot("system")
	if err := MergeModuleRoot(tree, root); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	report, err := New().Merge(tree, root)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Dropped) != 1 || report.Dropped[0].Path != root {
		t.Fatalf("expected the root to be dropped, got %v", report.Dropped)
	}
	if !errors.Is(report.Dropped[0].Err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", report.Dropped[0].Err)
	}
}
