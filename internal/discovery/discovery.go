package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"smartsort/internal/logging"
	"smartsort/internal/services"
)

// Walker finds candidate files beneath a source root.
type Walker struct {
	exclude map[string]struct{}
	skip    map[string]struct{}
	logger  *slog.Logger
}

// Option customizes a Walker.
type Option func(*Walker)

// WithExcludedNames prunes every directory whose base name equals one of names.
func WithExcludedNames(names ...string) Option {
	return func(w *Walker) {
		for _, name := range names {
			if name != "" {
				w.exclude[name] = struct{}{}
			}
		}
	}
}

// WithSkippedRoots prunes the given directory trees. Paths are compared after
// conversion to absolute, cleaned form.
func WithSkippedRoots(paths ...string) Option {
	return func(w *Walker) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				w.skip[filepath.Clean(abs)] = struct{}{}
			}
		}
	}
}

// WithLogger sets the logger used for skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker constructs a Walker.
func NewWalker(opts ...Option) *Walker {
	w := &Walker{
		exclude: make(map[string]struct{}),
		skip:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.NewComponentLogger(w.logger, "discovery")
	return w
}

// Walk returns the regular files under root in lexical order. Symbolic links
// are not followed. Unreadable subdirectories are logged and skipped; an
// unreadable or missing root is an error.
func (w *Walker) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "collect", "resolve source", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "collect", "stat source", absRoot, err)
		}
		return nil, services.Wrap(services.ErrValidation, "collect", "stat source", absRoot, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "collect", "stat source", fmt.Sprintf("%s is not a directory", absRoot), nil)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			w.logger.Warn("skipping unreadable path",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldEventType, "discovery_skip"),
				logging.String(logging.FieldImpact, "files below this path are not organized"),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, ok := w.exclude[d.Name()]; ok {
				return filepath.SkipDir
			}
			if _, ok := w.skip[path]; ok {
				w.logger.Debug("skipping nested target directory", logging.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			w.logger.Debug("skipping non-regular file", logging.String("path", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "collect", "walk source", absRoot, err)
	}
	sort.Strings(files)
	return files, nil
}
