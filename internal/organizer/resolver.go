package organizer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"smartsort/internal/textutil"
)

const maxCollisionAttempts = 10000

// Resolver assigns collision-free destination paths beneath a target root.
// Paths handed out earlier in the same run count as taken even if nothing has
// been written there yet, so dry runs and real runs resolve identically.
type Resolver struct {
	root    string
	claimed map[string]struct{}
	stat    func(string) (os.FileInfo, error)
}

// NewResolver returns a Resolver for root.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root:    root,
		claimed: make(map[string]struct{}),
		stat:    os.Lstat,
	}
}

// Resolve returns root/group/name, or root/group/stem_N.ext with the smallest
// N >= 1 that is neither on disk nor already handed out.
func (r *Resolver) Resolve(group, name string) (string, error) {
	dir := filepath.Join(r.root, group)
	candidate := filepath.Join(dir, name)
	taken, err := r.taken(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		r.claimed[candidate] = struct{}{}
		return candidate, nil
	}

	stem, ext := textutil.SplitExt(name)
	for n := 1; n <= maxCollisionAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		taken, err := r.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			r.claimed[candidate] = struct{}{}
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d collision suffixes for %s in %s", maxCollisionAttempts, name, dir)
}

func (r *Resolver) taken(path string) (bool, error) {
	if _, ok := r.claimed[path]; ok {
		return true, nil
	}
	if _, err := r.stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check destination %s: %w", path, err)
	}
	return true, nil
}
