package rule

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/s0ders/go-commitlint/internal/header"
)

// Config is a single rule activation as produced by a configuration loader.
type Config struct {
	Name      string    `json:"name" yaml:"name"`
	Severity  Severity  `json:"severity" yaml:"severity"`
	When      Condition `json:"when,omitempty" yaml:"when,omitempty"`
	Value     any       `json:"value,omitempty" yaml:"value,omitempty"`
	Lowercase bool      `json:"lowercase,omitempty" yaml:"lowercase,omitempty"`
}

type activation struct {
	index      int
	name       string
	severity   Severity
	when       Condition
	field      string
	params     Params
	definition *Definition
}

// Engine evaluates an ordered, immutable set of rule activations against parsed headers.
type Engine struct {
	logger      zerolog.Logger
	activations []activation
}

type EngineOption func(e *Engine)

func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New resolves configs against the built-in rules and the fields captured by pattern. Any configuration mistake is
// reported here rather than when evaluating a header.
func New(pattern *header.Pattern, configs []Config, options ...EngineOption) (*Engine, error) {
	engine := &Engine{
		logger: zerolog.New(io.Discard),
	}

	for _, option := range options {
		option(engine)
	}

	seen := make(map[string]struct{}, len(configs))

	for i, cfg := range configs {
		definition, ok := Lookup(cfg.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, cfg.Name)
		}

		if _, duplicate := seen[definition.Name]; duplicate {
			return nil, fmt.Errorf("rule %q: %w", definition.Name, ErrDuplicateRule)
		}
		seen[definition.Name] = struct{}{}

		if _, ok := severityNames[cfg.Severity]; !ok {
			return nil, fmt.Errorf("rule %q: %w: %d", definition.Name, ErrInvalidSeverity, int(cfg.Severity))
		}

		// A header the grammar cannot decompose always fails the validation.
		if definition.Name == HeaderFormat && cfg.Severity == Warning {
			return nil, fmt.Errorf("rule %q: %w: a format error cannot be downgraded to a warning", definition.Name, ErrInvalidSeverity)
		}

		when, err := ParseCondition(string(cfg.When))
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", definition.Name, err)
		}

		params, err := normalizeParams(definition.Param, cfg.Value)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", definition.Name, err)
		}

		if cfg.Lowercase && !definition.Lowercase {
			return nil, fmt.Errorf("rule %q: %w: lowercase is not supported", definition.Name, ErrInvalidParams)
		}
		params.Lowercase = cfg.Lowercase

		var field string
		if definition.Role != "" {
			field, ok = pattern.Field(definition.Role)
			if !ok && cfg.Severity != Off {
				return nil, fmt.Errorf("rule %q: %w: grammar %q has no %s field", definition.Name, ErrMissingField, pattern.Name(), definition.Role)
			}
		}

		engine.activations = append(engine.activations, activation{
			index:      i,
			name:       definition.Name,
			severity:   cfg.Severity,
			when:       when,
			field:      field,
			params:     params,
			definition: definition,
		})
	}

	return engine, nil
}

// Evaluate runs every enabled activation against h.
//
// Fatal rules run first. The first fatal failure of an Error activation stops the evaluation and the report only
// holds the fatal rules evaluated so far. Soft rules then all run, and every violation is collected. Results are
// listed in declaration order whatever the phase they ran in.
func (e *Engine) Evaluate(h *header.Parsed) Report {
	results := make([]indexedResult, 0, len(e.activations))

	for _, a := range e.activations {
		if a.severity == Off || !a.definition.Fatal {
			continue
		}

		result := e.run(a, h)
		results = append(results, indexedResult{index: a.index, Result: result})

		if result.Fatal && a.severity == Error {
			e.logger.Debug().Str("rule", a.name).Msg("fatal violation, skipping remaining rules")
			return newReport(h.Raw, results)
		}
	}

	for _, a := range e.activations {
		if a.severity == Off || a.definition.Fatal {
			continue
		}

		results = append(results, indexedResult{index: a.index, Result: e.run(a, h)})
	}

	return newReport(h.Raw, results)
}

func (e *Engine) run(a activation, h *header.Parsed) Result {
	outcome := a.definition.Check(a.field, h.Get(a.field), a.params)

	e.logger.Debug().
		Str("rule", a.name).
		Str("severity", a.severity.String()).
		Bool("valid", outcome.Valid).
		Bool("fatal", outcome.Fatal).
		Msg("rule evaluated")

	return Result{
		Rule:     a.name,
		Severity: a.severity,
		When:     a.when,
		Outcome:  outcome,
	}
}

// Rules returns the canonical names of the configured activations, in declaration order.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.activations))
	for _, a := range e.activations {
		names = append(names, a.name)
	}
	return names
}
