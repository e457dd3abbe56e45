package header

import (
	"errors"
	"testing"

	assertion "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hyphenFields = []string{"type", "ticketKey", "ticketNumber", "moduleName", "description"}
	hyphenExpr   = `^(\S+)?-(\S+)-(\S+)\((\S+)\): (.+)$`
)

func TestNewPattern_FieldCount(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		expr   string
		fields []string
		want   error
	}

	tests := []test{
		{expr: hyphenExpr, fields: hyphenFields, want: nil},
		{expr: hyphenExpr, fields: hyphenFields[:4], want: ErrFieldCount},
		{expr: `^(\w+): (.+)$`, fields: []string{"type", "description", "extra"}, want: ErrFieldCount},
		{expr: "", fields: hyphenFields, want: ErrEmptyPattern},
		{expr: `^(\w+)$`, fields: nil, want: ErrNoFields},
		{expr: `^(\w+): (\w+)$`, fields: []string{"type", "type"}, want: ErrDuplicate},
	}

	for _, tc := range tests {
		_, err := NewPattern("test", tc.expr, tc.fields)
		if tc.want == nil {
			assert.NoError(err, "pattern %q should have compiled", tc.expr)
			continue
		}
		assert.ErrorIs(err, tc.want, "pattern %q", tc.expr)
	}
}

func TestNewPattern_InvalidRegex(t *testing.T) {
	_, err := NewPattern("broken", `^(\w+`, []string{"type"})
	assertion.Error(t, err)
}

func TestPattern_Parse(t *testing.T) {
	assert := assertion.New(t)

	pattern := MustPattern("hyphen", hyphenExpr, hyphenFields)

	parsed, err := pattern.Parse("fix-ABC-12(loan): handle rounding")
	require.NoError(t, err)

	assert.Equal(len(hyphenFields), parsed.Len())
	assert.Equal("fix", parsed.Get("type"))
	assert.Equal("ABC", parsed.Get("ticketKey"))
	assert.Equal("12", parsed.Get("ticketNumber"))
	assert.Equal("loan", parsed.Get("moduleName"))
	assert.Equal("handle rounding", parsed.Get("description"))
	assert.Equal("fix-ABC-12(loan): handle rounding", parsed.Raw)
}

func TestPattern_ParseOptionalGroupBindsEmpty(t *testing.T) {
	assert := assertion.New(t)

	pattern := MustPattern("hyphen", hyphenExpr, hyphenFields)

	parsed, err := pattern.Parse("-ABC-12(loan): handle rounding")
	require.NoError(t, err)

	value, ok := parsed.Role(RoleType)
	assert.True(ok, "type role should be captured by the grammar")
	assert.Equal("", value)
	assert.Equal(len(hyphenFields), parsed.Len())
}

func TestPattern_ParseAnchored(t *testing.T) {
	assert := assertion.New(t)

	// Without explicit anchors a partial match would succeed.
	pattern := MustPattern("loose", `(\w+): (\w+)`, []string{"type", "description"})

	_, err := pattern.Parse("feat: add")
	assert.NoError(err)

	_, err = pattern.Parse("feat: add retry logic")
	assert.Error(err, "partial match should be rejected")

	_, err = pattern.Parse("xx feat: add")
	assert.Error(err, "partial match should be rejected")
}

func TestPattern_ParseFormatError(t *testing.T) {
	assert := assertion.New(t)

	message := `Expected format: "type-ticketKey-ticketNumber(moduleName): description"`
	pattern := MustPattern("hyphen", hyphenExpr, hyphenFields, WithFormatMessage(message))

	_, err := pattern.Parse("fix-ABC-12(loan):short")
	require.Error(t, err)

	var formatErr *FormatError
	assert.True(errors.As(err, &formatErr))
	assert.Equal(message, formatErr.Error())
	assert.Equal("fix-ABC-12(loan):short", formatErr.Header)
	assert.Equal(hyphenExpr, formatErr.Pattern)
}

func TestPattern_DefaultFormatMessage(t *testing.T) {
	pattern := MustPattern("hyphen", hyphenExpr, hyphenFields)

	_, err := pattern.Parse("nope")
	assertion.EqualError(t, err, DefaultFormatMessage)
}

func TestPattern_FormatRoundTrip(t *testing.T) {
	assert := assertion.New(t)

	pattern := MustPattern("bracket", `^\[(\w+)-(\d+)\]\((\w+)\): (.+)$`,
		[]string{"type", "ticketNumber", "moduleName", "description"},
		WithTemplate("[{{.type}}-{{.ticketNumber}}]({{.moduleName}}): {{.description}}"))

	headers := []string{
		"[feat-123](core): add retry logic",
		"[fix-1](api): handle   spaces  ",
	}

	for _, h := range headers {
		parsed, err := pattern.Parse(h)
		require.NoError(t, err)

		joined, err := pattern.Format(parsed)
		require.NoError(t, err)

		reparsed, err := pattern.Parse(joined)
		assert.NoError(err, "re-joined header %q should match", joined)
		assert.Equal(parsed.Fields(), reparsed.Fields())
	}
}

func TestPattern_FormatWithoutTemplate(t *testing.T) {
	pattern := MustPattern("hyphen", hyphenExpr, hyphenFields)

	parsed, err := pattern.Parse("fix-ABC-12(loan): handle rounding")
	require.NoError(t, err)

	_, err = pattern.Format(parsed)
	assertion.Error(t, err)
}

func TestPattern_Field(t *testing.T) {
	assert := assertion.New(t)

	scoped := MustPattern("scope", `^(\w+)\(([\w-]*)\): (.+)$`, []string{"type", "scope", "description"})

	field, ok := scoped.Field(RoleModule)
	assert.True(ok)
	assert.Equal("scope", field)

	_, ok = scoped.Field(RoleTicketKey)
	assert.False(ok)

	mapped := MustPattern("mapped", `^(\w+)/(\w+): (.+)$`, []string{"kind", "area", "text"},
		WithRole(RoleType, "kind"), WithRole(RoleModule, "area"), WithRole(RoleDescription, "text"))

	field, ok = mapped.Field(RoleModule)
	assert.True(ok)
	assert.Equal("area", field)

	_, err := NewPattern("bad", `^(\w+)$`, []string{"type"}, WithRole(RoleModule, "nope"))
	assert.ErrorIs(err, ErrUnknownField)
}

func TestFromMessage(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		message string
		want    string
	}

	tests := []test{
		{message: "feat: a\n\nbody", want: "feat: a"},
		{message: "\n\n  \nchore: c", want: "chore: c"},
		{message: "fix: trailing space \nbody", want: "fix: trailing space "},
		{message: "fix: b\r\n", want: "fix: b"},
		{message: "#42 fix the rounding\n\nbody line here", want: "#42 fix the rounding"},
		// Decomposed "é" is normalized to its composed form.
		{message: "fix: cafe\u0301", want: "fix: caf\u00e9"},
	}

	for _, tc := range tests {
		assert.Equal(tc.want, FromMessage(tc.message))
	}
}

func TestFromEditMessage(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		message string
		want    string
	}

	tests := []test{
		{message: "feat: a\n\nbody", want: "feat: a"},
		{message: "# Please enter the commit message\n\nfix: b\r\n", want: "fix: b"},
		{message: "# only comments\n", want: ""},
		{message: "#42 fix the rounding\nfix: c", want: "fix: c"},
	}

	for _, tc := range tests {
		assert.Equal(tc.want, FromEditMessage(tc.message))
	}
}

func TestUnmarshall(t *testing.T) {
	assert := assertion.New(t)

	input := map[string]any{
		"name":           "colon",
		"pattern":        `^(\w+): (\w+): (.+)$`,
		"fields":         []any{"type", "area", "description"},
		"template":       "{{.type}}: {{.area}}: {{.description}}",
		"format-message": "expected type: area: description",
		"roles":          map[string]any{"module": "area"},
	}

	pattern, err := Unmarshall(input)
	require.NoError(t, err)

	assert.Equal("colon", pattern.Name())
	assert.Equal([]string{"type", "area", "description"}, pattern.Fields())
	assert.Equal("expected type: area: description", pattern.FormatMessage())

	field, ok := pattern.Field(RoleModule)
	assert.True(ok)
	assert.Equal("area", field)
}

func TestUnmarshall_Errors(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		input map[string]any
		want  error
	}

	tests := []test{
		{input: map[string]any{"pattern": `^(\w+)$`}, want: ErrNoFields},
		{input: map[string]any{"pattern": `^(\w+)$`, "fields": "type"}, want: ErrWrongType},
		{input: map[string]any{"pattern": `^(\w+)$`, "fields": []any{1}}, want: ErrWrongType},
		{input: map[string]any{"pattern": 42, "fields": []any{"type"}}, want: ErrWrongType},
		{input: map[string]any{"fields": []any{"type"}}, want: ErrEmptyPattern},
		{input: map[string]any{"pattern": `^(\w+)$`, "fields": []any{"type"}, "roles": []any{"x"}}, want: ErrWrongType},
		{input: map[string]any{"pattern": `^(\w+)$`, "fields": []any{"type"}, "roles": map[string]any{"module": "area"}}, want: ErrUnknownField},
	}

	for _, tc := range tests {
		_, err := Unmarshall(tc.input)
		assert.ErrorIs(err, tc.want, "input %v", tc.input)
	}
}
