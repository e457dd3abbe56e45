// Package remote provides basic functions to work with Git remotes.
package remote

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

type Remote struct {
	name string
	auth *http.BasicAuth
	path string
}

func New(name string, token string) *Remote {
	r := &Remote{name: name}

	if token != "" {
		r.auth = &http.BasicAuth{
			Username: "go-commitlint",
			Password: token,
		}
	}

	return r
}

// Clone clones a given remote repository to a temporary directory. When branch is not empty, only that branch is
// fetched.
func (r *Remote) Clone(ctx context.Context, url string, branch string) (*git.Repository, error) {
	tempDir, err := os.MkdirTemp("", "go-commitlint-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}

	r.path = tempDir

	options := &git.CloneOptions{
		RemoteName: r.name,
		URL:        url,
		Progress:   io.Discard,
	}

	// A nil pointer stored in the AuthMethod interface would not compare equal to nil.
	if r.auth != nil {
		options.Auth = r.auth
	}

	if branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(branch)
		options.SingleBranch = true
	}

	repository, err := git.PlainCloneContext(ctx, tempDir, false, options)
	if err != nil {
		_ = r.Remove()
		return nil, fmt.Errorf("cloning repository: %w", err)
	}

	return repository, nil
}

// Remove deletes the local copy of the last cloned repository.
func (r *Remote) Remove() error {
	if r.path == "" {
		return nil
	}

	if err := os.RemoveAll(r.path); err != nil {
		return fmt.Errorf("removing cloned repository: %w", err)
	}

	r.path = ""

	return nil
}
