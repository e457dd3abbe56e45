package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/spf13/cobra"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/remote"
	"github.com/s0ders/go-commitlint/internal/rule"
)

const shortHashLength = 7

func NewCheckCmd(ctx *appcontext.AppContext) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <REPOSITORY_PATH_OR_URL>",
		Short: "Lint the commit history of a Git repository",
		Long:  "Lint the header of every commit reachable from a branch or HEAD of a local or remote Git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			l, err := configureLinter(ctx)
			if err != nil {
				return err
			}

			var repository *git.Repository

			if ctx.Remote {
				origin := remote.New(ctx.RemoteName, ctx.AccessToken)
				repository, err = origin.Clone(cmd.Context(), args[0], ctx.Branch)
				if err != nil {
					return fmt.Errorf("cloning Git repository: %w", err)
				}

				defer func() {
					if removeErr := origin.Remove(); removeErr != nil && err == nil {
						err = removeErr
					}
				}()
			} else {
				repository, err = git.PlainOpenWithOptions(args[0], &git.PlainOpenOptions{DetectDotGit: true})
				if err != nil {
					return fmt.Errorf("opening local Git repository: %w", err)
				}
			}

			commits, err := collectCommits(cmd.Context(), ctx, repository)
			if err != nil {
				return fmt.Errorf("walking commit history: %w", err)
			}

			reports := make([]rule.Report, 0, len(commits))
			hashes := make([]string, 0, len(commits))

			for _, commit := range commits {
				reports = append(reports, l.LintMessage(commit.Message))
				hashes = append(hashes, commit.Hash.String()[:shortHashLength])
			}

			return writeReports(cmd, ctx, reports, hashes)
		},
	}

	checkCmd.Flags().BoolVar(&ctx.Remote, "remote", false, "Clone the repository from the given URL instead of opening a local path")
	checkCmd.Flags().StringVar(&ctx.RemoteName, "remote-name", "origin", "Name of the Git remote used when cloning")
	checkCmd.Flags().StringVar(&ctx.AccessToken, "access-token", "", "Access token used to clone a private remote repository")
	checkCmd.Flags().StringVarP(&ctx.Branch, "branch", "b", "", "Branch to walk the history from (default HEAD)")
	checkCmd.Flags().StringVar(&ctx.From, "from", "", "Revision whose history is excluded from the check, e.g. the target branch of a pull request")
	checkCmd.Flags().IntVarP(&ctx.MaxCount, "max-count", "n", 0, "Maximum number of commits to check (0 means no limit)")
	checkCmd.Flags().BoolVar(&ctx.IncludeMerges, "include-merges", false, "Also check merge commits")

	return checkCmd
}

// collectCommits returns the commits to lint, newest first. Commits reachable from the --from revision are
// excluded, like "git log FROM..BRANCH" would.
func collectCommits(c context.Context, ctx *appcontext.AppContext, repository *git.Repository) ([]*object.Commit, error) {
	start, err := startHash(ctx, repository)
	if err != nil {
		return nil, err
	}

	excluded, err := excludedCommits(ctx, repository)
	if err != nil {
		return nil, err
	}

	commitIter, err := repository.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("fetching commit log: %w", err)
	}
	defer commitIter.Close()

	var commits []*object.Commit

	err = commitIter.ForEach(func(commit *object.Commit) error {
		if err := c.Err(); err != nil {
			return err
		}

		if ctx.MaxCount > 0 && len(commits) >= ctx.MaxCount {
			return storer.ErrStop
		}

		if _, ok := excluded[commit.Hash]; ok {
			return nil
		}

		if commit.NumParents() > 1 && !ctx.IncludeMerges {
			ctx.Logger.Debug().Str("commit", commit.Hash.String()).Msg("skipping merge commit")
			return nil
		}

		commits = append(commits, commit)
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}

	return commits, nil
}

func excludedCommits(ctx *appcontext.AppContext, repository *git.Repository) (map[plumbing.Hash]struct{}, error) {
	excluded := make(map[plumbing.Hash]struct{})

	if ctx.From == "" {
		return excluded, nil
	}

	hash, err := repository.ResolveRevision(plumbing.Revision(ctx.From))
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ctx.From, err)
	}

	commitIter, err := repository.Log(&git.LogOptions{From: *hash})
	if err != nil {
		return nil, fmt.Errorf("fetching commit log of %q: %w", ctx.From, err)
	}
	defer commitIter.Close()

	err = commitIter.ForEach(func(commit *object.Commit) error {
		excluded[commit.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commit log of %q: %w", ctx.From, err)
	}

	return excluded, nil
}

func startHash(ctx *appcontext.AppContext, repository *git.Repository) (plumbing.Hash, error) {
	if ctx.Branch == "" {
		head, err := repository.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("fetching head: %w", err)
		}
		return head.Hash(), nil
	}

	ref, err := repository.Reference(plumbing.NewBranchReferenceName(ctx.Branch), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("fetching branch %q: %w", ctx.Branch, err)
	}

	return ref.Hash(), nil
}
