package mergetree

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Merger folds module roots into a tree
type Merger struct {
	source     Source
	classifier Classifier
	logger     *log.Logger
}

// Option is a functional option for configuring a Merger
type Option func(*Merger)

// WithSource sets the filesystem module roots are read from
func WithSource(source Source) Option {
	return func(m *Merger) {
		m.source = source
	}
}

// WithClassifier replaces the default classifier
func WithClassifier(c Classifier) Option {
	return func(m *Merger) {
		m.classifier = c
	}
}

// WithLogger sets the logger merge progress and dropped entries go to
func WithLogger(logger *log.Logger) Option {
	return func(m *Merger) {
		m.logger = logger
	}
}

// New creates a Merger. Without options it reads the host filesystem,
// classifies with NewClassifier and logs nothing.
func New(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = NewOsSource()
	}
	if m.classifier == nil {
		m.classifier = NewClassifier(m.source)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Dropped is an entry skipped because it could not be read
type Dropped struct {
	Path string
	Err  error
}

// Report summarizes one merge pass
type Report struct {
	Root    string
	Merged  int
	Markers int
	Dropped []Dropped
}

// Merge walks root and applies every entry below it to tree.
//
// Entries that cannot be read, including a missing root, are left out of the
// tree and listed in the report. An entry that cannot be resolved relative
// to root aborts the pass with a *PathError; the tree then holds whatever
// was applied before it.
func (m *Merger) Merge(tree *Node, root string) (*Report, error) {
	logger := m.logger.With("root", root)
	report := &Report{Root: root}

	err := walk(m.source, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			logger.Debug("dropping unreadable entry", "path", path, "err", err)
			report.Dropped = append(report.Dropped, Dropped{Path: path, Err: err})
			return nil
		}

		rel, err := relativePath(root, path)
		if err != nil {
			return &PathError{Op: opResolve, Root: root, Path: path, Err: err}
		}

		entry, err := m.classifier.Classify(root, rel, info)
		switch {
		case errors.Is(err, ErrMarker):
			report.Markers++
			if info.IsDir() {
				return errSkipDir
			}
			return nil
		case err != nil:
			return &PathError{Op: opResolve, Root: root, Path: path, Err: err}
		}

		if len(entry.Segments()) == 0 {
			return nil
		}
		tree.Apply(entry)
		report.Merged++
		logger.Debug("merged entry",
			"path", entry.RelativePath,
			"type", entry.FileType,
			"whiteout", entry.IsWhiteout,
			"replace", entry.IsReplace)

		// the contents of a whiteout directory are not module entries
		if entry.IsWhiteout && info.IsDir() {
			return errSkipDir
		}
		return nil
	})
	if err != nil {
		logger.Error("merge aborted", "err", err)
		return report, err
	}

	logger.Info("merged module root", "entries", report.Merged, "dropped", len(report.Dropped))
	return report, nil
}

// MergeModuleRoot merges root from the host filesystem into tree with the
// default classifier
func MergeModuleRoot(tree *Node, root string) error {
	_, err := New().Merge(tree, root)
	return err
}

func relativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return rel, nil
}
