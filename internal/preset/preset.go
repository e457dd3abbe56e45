// Package preset provides the built-in commit header conventions.
//
// Each preset is a plain data record pairing a grammar with an ordered rule table. The conventions only differ by
// their data, so adding one never requires new rule code.
package preset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/s0ders/go-commitlint/internal/header"
	"github.com/s0ders/go-commitlint/internal/rule"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Default is the preset used when the configuration does not name one.
const Default = "hyphen"

type Preset struct {
	Name        string
	Description string
	Example     string
	Grammar     *header.Pattern
	Rules       []rule.Config
}

var defaultTypes = []any{"feat", "fix", "chore", "docs", "style", "refactor", "perf", "test", "build", "ci", "revert"}

var ticketFields = []string{"type", "ticketKey", "ticketNumber", "moduleName", "description"}

var presets = map[string]Preset{
	"hyphen": {
		Name:        "hyphen",
		Description: "type-ticketKey-ticketNumber(moduleName): description, module name is case-insensitive",
		Example:     "feat-LOAN-42(payment): add retry logic",
		Grammar: header.MustPattern("hyphen", `^(\S+)?-(\S+)-(\S+)\((\S+)\): (.+)$`, ticketFields,
			header.WithTemplate("{{.type}}-{{.ticketKey}}-{{.ticketNumber}}({{.moduleName}}): {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format (check for any extra whitespace character). Expected format: "type-ticketKey-ticketNumber(moduleName): description"`)),
		Rules: []rule.Config{
			{Name: rule.HeaderFormat, Severity: rule.Error, When: rule.Always},
			{Name: "type-required", Severity: rule.Error, When: rule.Never},
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-key-format", Severity: rule.Error, When: rule.Always},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "module-name-format", Severity: rule.Error, When: rule.Always},
			{Name: "description-no-leading-space", Severity: rule.Error, When: rule.Always},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: 10},
			{Name: "description-max-length", Severity: rule.Error, When: rule.Always, Value: 30},
		},
	},
	"hyphen-lower": {
		Name:        "hyphen-lower",
		Description: "type-ticketKey-ticketNumber(moduleName): description, lowercase module name, no edge whitespace",
		Example:     "fix-LOAN-7(loan): handle rounding of rates",
		Grammar: header.MustPattern("hyphen-lower", `^(\w*)-(\w+)-(\w+)\(([^()\s]+)\):\s?(.*)$`, ticketFields,
			header.WithTemplate("{{.type}}-{{.ticketKey}}-{{.ticketNumber}}({{.moduleName}}): {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format. Expected format: "type-ticketKey-ticketNumber(moduleName): description"`)),
		Rules: []rule.Config{
			{Name: "type-required", Severity: rule.Error, When: rule.Never},
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-key-format", Severity: rule.Error, When: rule.Always},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "module-name-format", Severity: rule.Error, When: rule.Always, Lowercase: true},
			{Name: "description-no-edge-space", Severity: rule.Error, When: rule.Always},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: []any{10}},
			{Name: "description-max-length", Severity: rule.Error, When: rule.Always, Value: []any{50}},
		},
	},
	"bracket": {
		Name:        "bracket",
		Description: "[type-ticketNumber](moduleName): description",
		Example:     "[feat-123](core): add retry logic",
		Grammar: header.MustPattern("bracket", `^\[(\w+)-(\d+)\]\((\w+)\): (.+)$`,
			[]string{"type", "ticketNumber", "moduleName", "description"},
			header.WithTemplate("[{{.type}}-{{.ticketNumber}}]({{.moduleName}}): {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format. Expected format: "[type-ticketNumber](moduleName): description"`)),
		Rules: []rule.Config{
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "module-name-format", Severity: rule.Error, When: rule.Always},
			{Name: "description-no-leading-space", Severity: rule.Error, When: rule.Always},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: 10},
			{Name: "description-max-length", Severity: rule.Warning, When: rule.Always, Value: 72},
		},
	},
	"bracket-key": {
		Name:        "bracket-key",
		Description: "[type-ticketKey-ticketNumber](moduleName): description",
		Example:     "[fix-CORE-981](auth): refresh expired tokens",
		Grammar: header.MustPattern("bracket-key", `^\[([^\]\s-]*)-([^\]\s-]+)-([^\]\s-]+)\]\((\S+)\): (.+)$`, ticketFields,
			header.WithTemplate("[{{.type}}-{{.ticketKey}}-{{.ticketNumber}}]({{.moduleName}}): {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format. Expected format: "[type-ticketKey-ticketNumber](moduleName): description"`)),
		Rules: []rule.Config{
			{Name: "type-required", Severity: rule.Error, When: rule.Never},
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-key-format", Severity: rule.Error, When: rule.Always},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "module-name-format", Severity: rule.Error, When: rule.Always},
			{Name: "description-no-edge-space", Severity: rule.Error, When: rule.Always},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: 10},
			{Name: "description-max-length", Severity: rule.Error, When: rule.Always, Value: 50},
		},
	},
	"colon": {
		Name:        "colon",
		Description: "type-ticketKey-ticketNumber: moduleName: description, description trimmed by the grammar",
		Example:     "chore-OPS-12: deploy: bump base image",
		Grammar: header.MustPattern("colon", `^(\w+)-(\w+)-(\w+): ([^:\s]+): (\S(?:.*\S)?)$`, ticketFields,
			header.WithTemplate("{{.type}}-{{.ticketKey}}-{{.ticketNumber}}: {{.moduleName}}: {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format (the description must not start or end with whitespace). Expected format: "type-ticketKey-ticketNumber: moduleName: description"`)),
		Rules: []rule.Config{
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-key-format", Severity: rule.Error, When: rule.Always},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "module-name-format", Severity: rule.Error, When: rule.Always, Lowercase: true},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: 10},
			{Name: "description-max-length", Severity: rule.Error, When: rule.Always, Value: 50},
		},
	},
	"scope": {
		Name:        "scope",
		Description: "type-ticketKey-ticketNumber(scope): description, scope restricted to [A-Za-z0-9_-]",
		Example:     "feat-API-5(user_v2): expose profile endpoint",
		Grammar: header.MustPattern("scope", `^(\w+)-(\w+)-(\w+)\(([^()\s]*)\): (.+)$`,
			[]string{"type", "ticketKey", "ticketNumber", "scope", "description"},
			header.WithTemplate("{{.type}}-{{.ticketKey}}-{{.ticketNumber}}({{.scope}}): {{.description}}"),
			header.WithFormatMessage(`Invalid commit message format. Expected format: "type-ticketKey-ticketNumber(scope): description"`)),
		Rules: []rule.Config{
			{Name: "type-enum", Severity: rule.Error, When: rule.Always, Value: defaultTypes},
			{Name: "ticket-key-format", Severity: rule.Error, When: rule.Always},
			{Name: "ticket-number-format", Severity: rule.Error, When: rule.Always},
			{Name: "scope-charset", Severity: rule.Error, When: rule.Always},
			{Name: "description-no-edge-space", Severity: rule.Error, When: rule.Always},
			{Name: "description-min-length", Severity: rule.Error, When: rule.Always, Value: 10},
			{Name: "description-max-length", Severity: rule.Error, When: rule.Always, Value: 72},
		},
	},
}

// Get returns the preset registered under name.
func Get(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, Names())
	}

	p.Rules = append([]rule.Config(nil), p.Rules...)
	return p, nil
}

// Names returns the names of every built-in preset, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
