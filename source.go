package mergetree

import (
	"io/fs"
	"sort"

	"github.com/absfs/absfs"
	"github.com/spf13/afero"
)

// Source gives the merge read access to the filesystem holding module roots.
// Lstat must not follow a trailing symlink when the filesystem has them.
type Source interface {
	// Stat follows symlinks; it is only used on module roots
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	// ReadDir returns the entries of a directory sorted by name
	ReadDir(name string) ([]fs.FileInfo, error)
}

// XattrReader is implemented by sources able to read extended attributes
// without following symlinks
type XattrReader interface {
	Getxattr(name, attr string) ([]byte, error)
}

// aferoSource reads module roots through an afero filesystem
type aferoSource struct {
	fs afero.Fs
}

// NewAferoSource returns a Source backed by any afero filesystem
func NewAferoSource(fsys afero.Fs) Source {
	return &aferoSource{fs: fsys}
}

func (s *aferoSource) Stat(name string) (fs.FileInfo, error) {
	return s.fs.Stat(name)
}

func (s *aferoSource) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := s.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return s.fs.Stat(name)
}

func (s *aferoSource) ReadDir(name string) ([]fs.FileInfo, error) {
	return afero.ReadDir(s.fs, name)
}

// osSource is the host filesystem. It also reads extended attributes where
// the platform allows it.
type osSource struct {
	aferoSource
}

// NewOsSource returns a Source over the host filesystem
func NewOsSource() Source {
	return &osSource{aferoSource{fs: afero.NewOsFs()}}
}

func (s *osSource) Getxattr(name, attr string) ([]byte, error) {
	return lgetxattr(name, attr)
}

// absSource reads module roots through an absfs filesystem
type absSource struct {
	fs absfs.FileSystem
}

// Ensure absSource implements Source at compile time
var _ Source = (*absSource)(nil)

// NewAbsSource returns a Source backed by an absfs filesystem such as memfs
func NewAbsSource(fsys absfs.FileSystem) Source {
	return &absSource{fs: fsys}
}

func (s *absSource) Stat(name string) (fs.FileInfo, error) {
	return s.fs.Stat(name)
}

func (s *absSource) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := s.fs.(interface {
		Lstat(string) (fs.FileInfo, error)
	}); ok {
		return lstater.Lstat(name)
	}
	return s.fs.Stat(name)
}

func (s *absSource) ReadDir(name string) ([]fs.FileInfo, error) {
	dir, err := s.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}
