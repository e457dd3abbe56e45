package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/ci"
	"github.com/s0ders/go-commitlint/internal/rule"
)

// writeReports prints the reports, exports the summary to the CI and returns ErrLintFailed if any header is
// invalid. commits, when not nil, holds the abbreviated hash of the commit each report belongs to.
func writeReports(cmd *cobra.Command, ctx *appcontext.AppContext, reports []rule.Report, commits []string) error {
	output := ci.NewJSONOutput()

	for i, report := range reports {
		commit := ""
		if i < len(commits) {
			commit = commits[i]
		}

		output.AddReport(report, commit)
	}

	output.Finalize()

	if ctx.JSON {
		if err := output.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		printReports(cmd.OutOrStdout(), output)
	}

	if err := ci.GenerateGitHubOutput(output.Summary); err != nil {
		return fmt.Errorf("generating github output: %w", err)
	}

	ctx.Logger.Debug().
		Int("total", output.Summary.TotalCount).
		Int("failed", output.Summary.FailedCount).
		Int("warnings", output.Summary.WarningCount).
		Msg("lint completed")

	if !output.Summary.Valid {
		return ErrLintFailed
	}

	return nil
}

func printReports(w io.Writer, output *ci.JSONOutput) {
	for _, report := range output.Reports {
		mark := "✓"
		if !report.Valid {
			mark = "✗"
		}

		if report.Commit != "" {
			_, _ = fmt.Fprintf(w, "%s %s %s\n", mark, report.Commit, report.Header)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s\n", mark, report.Header)
		}

		for _, result := range report.Results {
			if result.Valid {
				continue
			}

			symbol := "✗"
			if result.Severity == rule.Warning.String() {
				symbol = "⚠"
			}

			_, _ = fmt.Fprintf(w, "    %s %s [%s]\n", symbol, result.Message, result.Rule)
		}
	}

	summary := output.Summary
	_, _ = fmt.Fprintf(w, "\n%d header(s), %d failed, %d warning(s)\n", summary.TotalCount, summary.FailedCount, summary.WarningCount)
}
