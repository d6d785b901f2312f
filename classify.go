package mergetree

import (
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	// WhiteoutPrefix is the prefix for whiteout files (AUFS/Docker style)
	WhiteoutPrefix = ".wh."
	// OpaqueWhiteout marks its directory as replacing lower modules
	OpaqueWhiteout = ".wh.__dir_opaque"
	// AufsOpaqueWhiteout is the AUFS/OCI spelling of OpaqueWhiteout
	AufsOpaqueWhiteout = ".wh..wh..opq"
	// ReplaceMarker marks its directory as replacing lower modules
	ReplaceMarker = ".replace"
	// OpaqueXattr is the overlayfs attribute marking an opaque directory
	OpaqueXattr = "trusted.overlay.opaque"
)

// Classifier turns an entry found under a module root into an Entry.
// rel is the entry's path relative to root, info its Lstat result.
type Classifier interface {
	Classify(root, rel string, info fs.FileInfo) (Entry, error)
}

// ClassifierFunc adapts a function to the Classifier interface
type ClassifierFunc func(root, rel string, info fs.FileInfo) (Entry, error)

// Classify calls f
func (f ClassifierFunc) Classify(root, rel string, info fs.FileInfo) (Entry, error) {
	return f(root, rel, info)
}

// classifier understands overlayfs and AUFS markers:
//
//   - a character device numbered 0/0, or a name starting with ".wh.", is a
//     whiteout for the path it names
//   - a directory holding ".replace", ".wh.__dir_opaque" or ".wh..wh..opq", or carrying
//     trusted.overlay.opaque=y, replaces lower modules
type classifier struct {
	source Source
}

// NewClassifier returns the default classifier. The source is consulted to
// look for replace markers inside directories.
func NewClassifier(source Source) Classifier {
	return &classifier{source: source}
}

func (c *classifier) Classify(root, rel string, info fs.FileInfo) (Entry, error) {
	realPath := filepath.Join(root, rel)
	entry := Entry{
		RealPath:     realPath,
		RelativePath: filepath.ToSlash(rel),
		FileType:     FileTypeOf(info.Mode()),
	}

	name := info.Name()
	switch {
	case name == ReplaceMarker || isOpaqueWhiteout(name):
		return Entry{}, ErrMarker
	case isWhiteout(name):
		original, ok := originalPath(entry.RelativePath)
		if !ok {
			return Entry{}, ErrInvalidWhiteout
		}
		entry.RelativePath = original
		entry.IsWhiteout = true
	case isWhiteoutDevice(info):
		entry.IsWhiteout = true
	}

	if entry.FileType == Directory && !entry.IsWhiteout {
		entry.IsReplace = c.isReplaceDir(realPath)
	}
	return entry, nil
}

func (c *classifier) isReplaceDir(dir string) bool {
	for _, marker := range []string{ReplaceMarker, OpaqueWhiteout, AufsOpaqueWhiteout} {
		if _, err := c.source.Lstat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	if xr, ok := c.source.(XattrReader); ok {
		value, err := xr.Getxattr(dir, OpaqueXattr)
		if err == nil && string(value) == "y" {
			return true
		}
	}
	return false
}

// isWhiteout checks if a filename is a whiteout marker
func isWhiteout(name string) bool {
	return strings.HasPrefix(name, WhiteoutPrefix)
}

// isOpaqueWhiteout checks if a filename is an opaque directory marker
func isOpaqueWhiteout(name string) bool {
	return name == OpaqueWhiteout || name == AufsOpaqueWhiteout
}

// originalPath returns the path a slash separated whiteout path stands for
func originalPath(whiteoutPath string) (string, bool) {
	dir, base := "", whiteoutPath
	if i := strings.LastIndex(whiteoutPath, "/"); i >= 0 {
		dir, base = whiteoutPath[:i+1], whiteoutPath[i+1:]
	}
	original := strings.TrimPrefix(base, WhiteoutPrefix)
	if original == "" || original == "." || original == ".." {
		return "", false
	}
	return dir + original, true
}

// isWhiteoutDevice reports an overlayfs whiteout: a character device with
// device number 0. When the source exposes no device number, any character
// device counts.
func isWhiteoutDevice(info fs.FileInfo) bool {
	mode := info.Mode()
	if mode&fs.ModeDevice == 0 || mode&fs.ModeCharDevice == 0 {
		return false
	}
	rdev, ok := deviceNumber(info.Sys())
	return !ok || rdev == 0
}
