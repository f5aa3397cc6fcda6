// Package git reports the revision of the application checkout under test,
// so a run log and report can be tied to the code that produced the screenshots.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const shortHashLen = 7

// Revision identifies the checked out commit.
type Revision struct {
	Hash   string
	Branch string // empty for detached HEAD
	Tag    string // nearest tag from git describe, empty when unknown
	Dirty  bool
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Hash) > shortHashLen {
		return r.Hash[:shortHashLen]
	}
	return r.Hash
}

// String formats the revision as "abc1234 (master, v1.2.0, dirty)".
func (r Revision) String() string {
	if r.Hash == "" {
		return ""
	}
	var extra []string
	if r.Branch != "" {
		extra = append(extra, r.Branch)
	}
	if r.Tag != "" {
		extra = append(extra, r.Tag)
	}
	if r.Dirty {
		extra = append(extra, "dirty")
	}
	if len(extra) == 0 {
		return r.Short()
	}
	return fmt.Sprintf("%s (%s)", r.Short(), strings.Join(extra, ", "))
}

// Repo is an opened repository.
type Repo struct {
	repo *git.Repository
	root string
	ext  *externalBackend // nil when the git cli is not available
}

// Open opens the repository containing path, searching parent directories for .git.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", abs, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	res := &Repo{repo: r, root: root}
	if ext, err := newExternalBackend(root); err == nil {
		res.ext = ext
	}
	return res, nil
}

// Root returns the worktree root.
func (r *Repo) Root() string {
	return r.root
}

// Revision returns HEAD, its branch and the worktree state.
func (r *Repo) Revision() (Revision, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, errors.New("repository has no commits")
		}
		return Revision{}, fmt.Errorf("get HEAD: %w", err)
	}

	res := Revision{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		res.Branch = head.Name().Short()
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return Revision{}, fmt.Errorf("get worktree: %w", err)
	}
	st, err := wt.Status()
	if err != nil {
		return Revision{}, fmt.Errorf("get status: %w", err)
	}
	for _, fs := range st {
		// untracked files do not change what was built
		if fs.Worktree == git.Untracked && fs.Staging == git.Untracked {
			continue
		}
		res.Dirty = true
		break
	}

	if r.ext != nil {
		res.Tag = r.ext.nearestTag()
	}
	return res, nil
}

// Describe returns the revision string of the repository at path, empty when path is not a repository.
func Describe(path string) string {
	if path == "" {
		return ""
	}
	repo, err := Open(path)
	if err != nil {
		return ""
	}
	rev, err := repo.Revision()
	if err != nil {
		return ""
	}
	return rev.String()
}
