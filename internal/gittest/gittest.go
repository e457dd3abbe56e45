// Package gittest provides basic types and functions for testing operations related to Git repositories.
package gittest

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	sampleFile   = "sample.txt"
	FirstMessage = "First commit"
)

var referenceTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type TestRepository struct {
	*git.Repository
	Path    string
	Counter int
}

// NewRepository creates a new TestRepository holding a single commit whose message is FirstMessage.
func NewRepository() (testRepository *TestRepository, err error) {
	testRepository = &TestRepository{}

	path, err := os.MkdirTemp("", "gittest-*")
	if err != nil {
		return testRepository, fmt.Errorf("creating temporary directory: %w", err)
	}

	testRepository.Path = path

	repository, err := git.PlainInit(path, false)
	if err != nil {
		return testRepository, fmt.Errorf("initializing repository: %w", err)
	}

	testRepository.Repository = repository

	err = os.WriteFile(filepath.Join(path, sampleFile), []byte("..."), 0o644)
	if err != nil {
		return testRepository, fmt.Errorf("creating first commit file: %w", err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return testRepository, fmt.Errorf("fetching worktree: %w", err)
	}

	_, err = worktree.Add(sampleFile)
	if err != nil {
		return testRepository, fmt.Errorf("adding commit file to worktree: %w", err)
	}

	_, err = worktree.Commit(FirstMessage, &git.CommitOptions{
		Author: signature(referenceTime),
	})
	if err != nil {
		return testRepository, fmt.Errorf("creating commit: %w", err)
	}

	return testRepository, nil
}

// AddCommit adds a new commit with the given message to the current branch of the underlying Git repository.
func (r *TestRepository) AddCommit(message string) (plumbing.Hash, error) {
	return r.commit(message)
}

// AddMergeCommit adds a commit whose parents are the current HEAD and the tip of the given branch.
func (r *TestRepository) AddMergeCommit(message string, source string) (plumbing.Hash, error) {
	head, err := r.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("fetching head: %w", err)
	}

	ref, err := r.Reference(plumbing.NewBranchReferenceName(source), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("fetching %s branch: %w", source, err)
	}

	return r.commit(message, head.Hash(), ref.Hash())
}

func (r *TestRepository) commit(message string, parents ...plumbing.Hash) (plumbing.Hash, error) {
	var commitHash plumbing.Hash

	worktree, err := r.Worktree()
	if err != nil {
		return commitHash, fmt.Errorf("fetching worktree: %w", err)
	}

	commitFilePath := filepath.Join(r.Path, sampleFile)

	err = os.WriteFile(commitFilePath, []byte(strconv.Itoa(rand.Intn(10000))), 0o644)
	if err != nil {
		return commitHash, fmt.Errorf("writing commit file: %w", err)
	}

	_, err = worktree.Add(sampleFile)
	if err != nil {
		return commitHash, fmt.Errorf("adding commit file to worktree: %w", err)
	}

	when := r.When()

	commitOpts := &git.CommitOptions{
		Committer:         signature(when),
		Author:            signature(when),
		Parents:           parents,
		AllowEmptyCommits: true,
	}

	commitHash, err = worktree.Commit(message, commitOpts)
	if err != nil {
		return commitHash, fmt.Errorf("creating commit: %w", err)
	}

	return commitHash, nil
}

// Remove removes the underlying Git repository.
func (r *TestRepository) Remove() error {
	return os.RemoveAll(r.Path)
}

// CheckoutBranch checkouts the branch with the given name, creating it from HEAD when create is true.
func (r *TestRepository) CheckoutBranch(name string, create bool) error {
	worktree, err := r.Worktree()
	if err != nil {
		return fmt.Errorf("fetching worktree: %w", err)
	}

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: create,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("checking out %s: %w", name, err)
	}

	return nil
}

// CheckoutOrCreateBranch checkouts the given branch, creating it from HEAD if it does not exist yet.
func (r *TestRepository) CheckoutOrCreateBranch(name string) error {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	switch {
	case err == nil:
		return r.CheckoutBranch(name, false)
	case err == plumbing.ErrReferenceNotFound:
		return r.CheckoutBranch(name, true)
	default:
		return fmt.Errorf("fetching %s branch: %w", name, err)
	}
}

// When returns a time.Time starting at 2000/01/01 00:00:00 and increasing of 10 second every new call.
func (r *TestRepository) When() time.Time {
	r.Counter++
	return referenceTime.Add(time.Duration(r.Counter*10) * time.Second)
}

func signature(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  "Go Commitlint",
		Email: "go-commitlint@lint.ci",
		When:  when,
	}
}
