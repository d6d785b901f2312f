package mergetree

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
)

// BenchmarkApply benchmarks folding entries into a tree without any I/O
func BenchmarkApply(b *testing.B) {
	entries := make([]Entry, 0, 1000)
	for i := 0; i < 1000; i++ {
		rel := fmt.Sprintf("dir%d/sub%d/file%d", i%10, i%100, i)
		entries = append(entries, Entry{RealPath: "/m/" + rel, RelativePath: rel, FileType: RegularFile})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root := NewRoot("system")
		for _, e := range entries {
			root.Apply(e)
		}
	}
}

// BenchmarkMergeModules benchmarks merging several in-memory module roots
func BenchmarkMergeModules(b *testing.B) {
	fsys := afero.NewMemMapFs()

	// Create overlapping files in each module
	roots := []string{"/modules/a", "/modules/b", "/modules/c"}
	for _, root := range roots {
		for i := 0; i < 100; i++ {
			afero.WriteFile(fsys, fmt.Sprintf("%s/dir%d/file%d.txt", root, i%10, i), []byte("content"), 0644)
		}
	}

	m := New(WithSource(NewAferoSource(fsys)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := NewRoot("system")
		for _, root := range roots {
			if _, err := m.Merge(tree, root); err != nil {
				b.Fatal(err)
			}
		}
	}
}
