package preset

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0ders/go-commitlint/internal/rule"
)

func TestPreset_Names(t *testing.T) {
	assertion.Equal(t, []string{"bracket", "bracket-key", "colon", "hyphen", "hyphen-lower", "scope"}, Names())
}

func TestPreset_Get(t *testing.T) {
	assert := assertion.New(t)

	p, err := Get(Default)
	require.NoError(t, err)
	assert.Equal("hyphen", p.Name)
	assert.Equal("hyphen", p.Grammar.Name())

	_, err = Get("angular")
	assert.ErrorIs(err, ErrUnknownPreset)
}

func TestPreset_GetReturnsCopy(t *testing.T) {
	p, err := Get("bracket")
	require.NoError(t, err)

	p.Rules[0].Severity = rule.Off

	again, err := Get("bracket")
	require.NoError(t, err)
	assertion.Equal(t, rule.Error, again.Rules[0].Severity)
}

func TestPreset_ExamplesAreValid(t *testing.T) {
	assert := assertion.New(t)

	for _, name := range Names() {
		p, err := Get(name)
		require.NoError(t, err)

		engine, err := rule.New(p.Grammar, p.Rules)
		require.NoError(t, err, "preset %q rules should load", name)

		parsed, err := p.Grammar.Parse(p.Example)
		require.NoError(t, err, "preset %q example should match its grammar", name)

		report := engine.Evaluate(parsed)
		assert.True(report.Valid(), "preset %q example should be valid: %+v", name, report.Errors())
		assert.Empty(report.Warnings(), "preset %q example should not warn", name)
	}
}

func TestPreset_TemplatesRoundTrip(t *testing.T) {
	assert := assertion.New(t)

	for _, name := range Names() {
		p, err := Get(name)
		require.NoError(t, err)

		parsed, err := p.Grammar.Parse(p.Example)
		require.NoError(t, err)

		assert.Equal(len(p.Grammar.Fields()), parsed.Len())

		joined, err := p.Grammar.Format(parsed)
		require.NoError(t, err, "preset %q should have a template", name)

		reparsed, err := p.Grammar.Parse(joined)
		if assert.NoError(err, "preset %q re-joined header %q should match", name, joined) {
			assert.Equal(parsed.Fields(), reparsed.Fields())
		}
	}
}

func TestPreset_Hyphen(t *testing.T) {
	assert := assertion.New(t)

	p, err := Get("hyphen")
	require.NoError(t, err)

	engine, err := rule.New(p.Grammar, p.Rules)
	require.NoError(t, err)

	type test struct {
		header string
		valid  bool
		rules  []string
	}

	tests := []test{
		{header: "feat-LOAN-42(Payment): add retry logic", valid: true},
		{header: "feat-loan-42(payment): add retry logic", rules: []string{"ticket-key-format"}},
		{header: "feat-LOANTOOLONG-42(payment): add retry logic", rules: []string{"ticket-key-format"}},
		{header: "wip-LOAN-4a(pay2): tiny", rules: []string{"type-enum", "ticket-number-format", "module-name-format", "description-min-length"}},
		{header: "feat-LOAN-42(payment): this description is far too long for the rule", rules: []string{"description-max-length"}},
		{header: "feat-LOAN-42(payment):  leading space here", rules: []string{"description-no-leading-space"}},
	}

	for _, tc := range tests {
		parsed, err := p.Grammar.Parse(tc.header)
		require.NoError(t, err, "header %q should match", tc.header)

		report := engine.Evaluate(parsed)
		assert.Equal(tc.valid, report.Valid(), "header %q", tc.header)

		var failed []string
		for _, result := range report.Errors() {
			failed = append(failed, result.Rule)
		}
		assert.Equal(tc.rules, failed, "header %q", tc.header)
	}
}

func TestPreset_HyphenLowerScenario(t *testing.T) {
	assert := assertion.New(t)

	p, err := Get("hyphen-lower")
	require.NoError(t, err)

	engine, err := rule.New(p.Grammar, p.Rules)
	require.NoError(t, err)

	parsed, err := p.Grammar.Parse("fix-ABC-12(loan):short")
	require.NoError(t, err)

	report := engine.Evaluate(parsed)
	assert.False(report.Valid())

	var invalid []rule.Result
	for _, result := range report.Results {
		if result.Failed() {
			invalid = append(invalid, result)
		}
	}

	require.Len(t, invalid, 1)
	assert.Equal("description-min-length", invalid[0].Rule)
	assert.Contains(invalid[0].Message, "current length is 5")
}

func TestPreset_Scope(t *testing.T) {
	assert := assertion.New(t)

	p, err := Get("scope")
	require.NoError(t, err)

	engine, err := rule.New(p.Grammar, p.Rules)
	require.NoError(t, err)

	parsed, err := p.Grammar.Parse("feat-API-5(user.v2): expose profile endpoint")
	require.NoError(t, err)

	report := engine.Evaluate(parsed)
	assert.False(report.Valid())

	fatal, ok := report.Fatal()
	assert.True(ok)
	assert.Equal("scope-charset", fatal.Rule)
	assert.Len(report.Results, 1)
}
