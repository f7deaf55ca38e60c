package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrBareRepo is returned when the repository has no working directory.
var ErrBareRepo = errors.New("repository has no working directory")

// Open validates that path lives inside a non-bare repository and returns
// an engine rooted at its work tree.
func Open(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	switch {
	case errors.Is(err, gogit.ErrRepositoryNotExists):
		// DetectDotGit only looks for a .git entry, so a bare repository
		// is reported as missing. Try the path itself as a git dir.
		if _, bareErr := gogit.PlainOpen(abs); bareErr == nil {
			return nil, ErrBareRepo
		}
		return nil, ErrNotARepo
	case err != nil:
		// go-git rejects some layouts git itself accepts (unknown
		// extensions); the CLI is the authority there.
		repo = nil
	default:
		if _, wtErr := repo.Worktree(); errors.Is(wtErr, gogit.ErrIsBareRepository) {
			return nil, ErrBareRepo
		}
	}

	svc, err := NewCLIService(abs)
	if err != nil {
		return nil, err
	}
	svc.repo = repo
	return svc, nil
}

// headInfo resolves HEAD through go-git. An unborn branch reports the name
// HEAD points at.
func headInfo(repo *gogit.Repository) (BranchInfo, error) {
	head, err := repo.Head()
	if err == nil {
		if head.Name().IsBranch() {
			return BranchInfo{Name: head.Name().Short()}, nil
		}
		return BranchInfo{Detached: true, Hash: shortHash(head.Hash().String())}, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		ref, refErr := repo.Reference(plumbing.HEAD, false)
		if refErr == nil && ref.Type() == plumbing.SymbolicReference {
			return BranchInfo{Name: ref.Target().Short()}, nil
		}
	}
	return BranchInfo{}, err
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
