package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/rule"
)

var ErrNoInput = errors.New("no commit header to lint")

func NewLintCmd(ctx *appcontext.AppContext) *cobra.Command {
	lintCmd := &cobra.Command{
		Use:   "lint [HEADER...]",
		Short: "Lint commit headers",
		Long:  "Lint the headers given as arguments, the message file given with --edit (e.g. from a commit-msg hook) or the message piped on the standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := configureLinter(ctx)
			if err != nil {
				return err
			}

			messages, edited, err := collectMessages(cmd, ctx, args)
			if err != nil {
				return err
			}

			lint := l.LintMessage
			if edited {
				lint = l.LintEditMessage
			}

			reports := make([]rule.Report, 0, len(messages))
			for _, message := range messages {
				reports = append(reports, lint(message))
			}

			return writeReports(cmd, ctx, reports, nil)
		},
	}

	lintCmd.Flags().StringVarP(&ctx.EditFile, "edit", "e", "", "Path to a commit message file, such as .git/COMMIT_EDITMSG")

	return lintCmd
}

// collectMessages also reports whether the messages come from an edit buffer, whose "#" lines are git comments.
func collectMessages(cmd *cobra.Command, ctx *appcontext.AppContext, args []string) ([]string, bool, error) {
	if len(args) > 0 {
		return args, false, nil
	}

	if ctx.EditFile != "" {
		content, err := os.ReadFile(ctx.EditFile)
		if err != nil {
			return nil, false, fmt.Errorf("reading commit message file: %w", err)
		}

		return []string{string(content)}, true, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, false, ErrNoInput
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, false, fmt.Errorf("reading standard input: %w", err)
	}

	if strings.TrimSpace(string(content)) == "" {
		return nil, false, ErrNoInput
	}

	return []string{string(content)}, true, nil
}
