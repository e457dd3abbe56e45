package gittest

import (
	"fmt"
)

type Step interface {
	// Execution method that will be called by ExecuteSteps
	exec(r *TestRepository) error
}

type branchStep struct {
	// Which branch to checkout before running the step.
	// If branch is "" the step is executed on the current branch.
	branch string
}

type CommitStep struct {
	branchStep

	// Full commit message, header first.
	message string
}

type CheckoutStep struct {
	branchStep

	// Name of the (new) branch
	name string

	// Whenever just checking out branch or create a new one with given name from HEAD
	create bool
}

type MergeStep struct {
	branchStep

	// Source branch to merge into current HEAD.
	source string

	// Message of the merge commit.
	message string
}

// NewCommitStep creates a new commit step.
// This step creates a new commit with the given message on the current or provided branch.
func NewCommitStep(branch string, message string) *CommitStep {
	return &CommitStep{
		branchStep: branchStep{branch: branch},
		message:    message,
	}
}

// NewCheckoutStep creates a new checkout step.
// This step checkouts a branch or optionally forces creation of a new branch on the current HEAD.
func NewCheckoutStep(branch string, name string, create bool) *CheckoutStep {
	return &CheckoutStep{
		branchStep: branchStep{branch: branch},
		name:       name,
		create:     create,
	}
}

// NewMergeStep creates a new merge step.
// This step records a merge commit of source into another branch or into the current HEAD if no branch is
// provided.
func NewMergeStep(branch string, source string, message string) *MergeStep {
	return &MergeStep{
		branchStep: branchStep{branch: branch},
		source:     source,
		message:    message,
	}
}

func (s *branchStep) exec(r *TestRepository) error {
	if s.branch != "" {
		err := r.CheckoutOrCreateBranch(s.branch)
		if err != nil {
			return fmt.Errorf("checking out %s branch: %w", s.branch, err)
		}
	}
	return nil
}

func (s *CommitStep) exec(r *TestRepository) error {
	if err := s.branchStep.exec(r); err != nil {
		return err
	}

	_, err := r.AddCommit(s.message)
	return err
}

func (s *CheckoutStep) exec(r *TestRepository) error {
	if err := s.branchStep.exec(r); err != nil {
		return err
	}

	err := r.CheckoutBranch(s.name, s.create)
	if err != nil {
		return fmt.Errorf("checkout branch: %w", err)
	}
	return nil
}

func (s *MergeStep) exec(r *TestRepository) error {
	if err := s.branchStep.exec(r); err != nil {
		return err
	}

	_, err := r.AddMergeCommit(s.message, s.source)
	if err != nil {
		return fmt.Errorf("merging %s: %w", s.source, err)
	}
	return nil
}

// ExecuteSteps executes steps on test repository.
func ExecuteSteps(r *TestRepository, steps []Step) error {
	for _, step := range steps {
		err := step.exec(r)
		if err != nil {
			return fmt.Errorf("executing step: %w", err)
		}
	}
	return nil
}
