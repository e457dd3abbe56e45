// Package ci provides function to generate output for CI/CD pipelines.
package ci

import (
	"fmt"
	"os"
	"strings"
)

type OutputOption func(o *output)

type output struct {
	prefix string
}

// WithPrefix overrides the prefix of the generated variable names.
func WithPrefix(prefix string) OutputOption {
	return func(o *output) {
		o.prefix = strings.ToUpper(prefix)
	}
}

// GenerateGitHubOutput appends the verdict of a lint run to the file referenced by GITHUB_OUTPUT, if any.
func GenerateGitHubOutput(summary Summary, options ...OutputOption) (err error) {
	path, exists := os.LookupEnv("GITHUB_OUTPUT")
	if !exists || path == "" {
		return nil
	}

	o := &output{prefix: "COMMITLINT"}
	for _, option := range options {
		option(o)
	}

	content := fmt.Sprintf("\n%[1]s_VALID=%[2]t\n%[1]s_COUNT=%[3]d\n%[1]s_FAILED=%[4]d\n%[1]s_WARNINGS=%[5]d\n",
		o.prefix, summary.Valid, summary.TotalCount, summary.FailedCount, summary.WarningCount)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ci file: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing ci file: %w", closeErr)
		}
	}()

	if _, err = f.WriteString(content); err != nil {
		return fmt.Errorf("writing to ci file: %w", err)
	}

	return nil
}
