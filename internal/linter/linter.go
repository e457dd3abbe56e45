// Package linter validates commit headers by chaining the header grammar with the rule engine.
package linter

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0ders/go-commitlint/internal/header"
	"github.com/s0ders/go-commitlint/internal/rule"
)

type Linter struct {
	logger  zerolog.Logger
	pattern *header.Pattern
	engine  *rule.Engine
}

// New builds a Linter. Every configuration error surfaces here, never while linting.
func New(logger zerolog.Logger, pattern *header.Pattern, rules []rule.Config) (*Linter, error) {
	if pattern == nil {
		return nil, errors.New("no header grammar configured")
	}

	engine, err := rule.New(pattern, rules, rule.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	return &Linter{logger: logger, pattern: pattern, engine: engine}, nil
}

// Lint validates a single header line. A header that does not match the grammar yields a report holding a single
// fatal header-format result.
func (l *Linter) Lint(raw string) rule.Report {
	parsed, err := l.pattern.Parse(raw)
	if err != nil {
		var formatErr *header.FormatError
		if !errors.As(err, &formatErr) {
			formatErr = &header.FormatError{Header: raw, Message: err.Error()}
		}

		l.logger.Debug().Str("header", raw).Str("grammar", l.pattern.Name()).Msg("header does not match grammar")

		return rule.NewFormatReport(raw, formatErr.Message)
	}

	return l.engine.Evaluate(parsed)
}

// LintMessage validates the header of a full commit message, as stored by git.
func (l *Linter) LintMessage(message string) rule.Report {
	return l.Lint(header.FromMessage(message))
}

// LintEditMessage validates the header of a message being edited, ignoring git comment lines.
func (l *Linter) LintEditMessage(message string) rule.Report {
	return l.Lint(header.FromEditMessage(message))
}

// LintAll validates every header independently, preserving their order.
func (l *Linter) LintAll(headers []string) []rule.Report {
	reports := make([]rule.Report, 0, len(headers))
	for _, h := range headers {
		reports = append(reports, l.Lint(h))
	}
	return reports
}

func (l *Linter) Pattern() *header.Pattern {
	return l.pattern
}
