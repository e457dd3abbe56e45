package rule

import (
	"math"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestRule_ParseSeverity(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		have any
		want Severity
		err  error
	}

	tests := []test{
		{have: "off", want: Off},
		{have: "warning", want: Warning},
		{have: "warn", want: Warning},
		{have: "ERROR", want: Error},
		{have: "2", want: Error},
		{have: 0, want: Off},
		{have: 1, want: Warning},
		{have: float64(2), want: Error},
		{have: int64(2), want: Error},
		{have: Warning, want: Warning},
		{have: 3, err: ErrInvalidSeverity},
		{have: 1.5, err: ErrInvalidSeverity},
		{have: "fatal", err: ErrInvalidSeverity},
		{have: nil, err: ErrInvalidSeverity},
		{have: Severity(7), err: ErrInvalidSeverity},
	}

	for _, tc := range tests {
		got, err := ParseSeverity(tc.have)
		if tc.err != nil {
			assert.ErrorIs(err, tc.err, "severity %v", tc.have)
			continue
		}
		assert.NoError(err, "severity %v", tc.have)
		assert.Equal(tc.want, got, "severity %v", tc.have)
	}
}

func TestRule_SeverityText(t *testing.T) {
	assert := assertion.New(t)

	text, err := Error.MarshalText()
	assert.NoError(err)
	assert.Equal("error", string(text))

	var s Severity
	assert.NoError(s.UnmarshalText([]byte("warning")))
	assert.Equal(Warning, s)

	assert.Error(s.UnmarshalText([]byte("loud")))

	_, err = Severity(9).MarshalText()
	assert.ErrorIs(err, ErrInvalidSeverity)
	assert.Equal("severity(9)", Severity(9).String())
}

func TestRule_ParseCondition(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		have any
		want Condition
		err  error
	}

	tests := []test{
		{have: nil, want: Always},
		{have: "", want: Always},
		{have: "always", want: Always},
		{have: "Never", want: Never},
		{have: "sometimes", err: ErrInvalidCondition},
		{have: 2, err: ErrInvalidCondition},
	}

	for _, tc := range tests {
		got, err := ParseCondition(tc.have)
		if tc.err != nil {
			assert.ErrorIs(err, tc.err, "condition %v", tc.have)
			continue
		}
		assert.NoError(err)
		assert.Equal(tc.want, got)
	}
}

func TestRule_NormalizeParams(t *testing.T) {
	assert := assertion.New(t)

	type test struct {
		kind  ParamKind
		value any
		want  Params
		err   bool
	}

	tests := []test{
		{kind: ParamNone, value: nil, want: Params{}},
		{kind: ParamNone, value: 10, err: true},
		{kind: ParamInt, value: 10, want: Params{Int: 10}},
		{kind: ParamInt, value: float64(10), want: Params{Int: 10}},
		{kind: ParamInt, value: []any{10}, want: Params{Int: 10}},
		{kind: ParamInt, value: []any{float64(30)}, want: Params{Int: 30}},
		{kind: ParamInt, value: []int{30}, want: Params{Int: 30}},
		{kind: ParamInt, value: []any{10, 20}, err: true},
		{kind: ParamInt, value: []any{}, err: true},
		{kind: ParamInt, value: "10", err: true},
		{kind: ParamInt, value: -1, err: true},
		{kind: ParamInt, value: 0, want: Params{}},
		{kind: ParamInt, value: int64(math.MaxInt32) + 1, want: Params{Int: math.MaxInt32 + 1}},
		{kind: ParamInt, value: uint64(math.MaxInt32) + 1, want: Params{Int: math.MaxInt32 + 1}},
		{kind: ParamInt, value: uint64(math.MaxUint64), err: true},
		{kind: ParamInt, value: 10.5, err: true},
		{kind: ParamInt, value: nil, err: true},
		{kind: ParamList, value: []any{"feat", "fix"}, want: Params{List: []string{"feat", "fix"}}},
		{kind: ParamList, value: []string{"feat"}, want: Params{List: []string{"feat"}}},
		{kind: ParamList, value: []any{}, err: true},
		{kind: ParamList, value: []any{"feat", 1}, err: true},
		{kind: ParamList, value: "feat", err: true},
		{kind: ParamOptionalList, value: nil, want: Params{}},
		{kind: ParamOptionalList, value: []any{"core"}, want: Params{List: []string{"core"}}},
		{kind: ParamOptionalList, value: 3, err: true},
	}

	for _, tc := range tests {
		got, err := normalizeParams(tc.kind, tc.value)
		if tc.err {
			assert.ErrorIs(err, ErrInvalidParams, "%s param %v", tc.kind, tc.value)
			continue
		}
		assert.NoError(err, "%s param %v", tc.kind, tc.value)
		assert.Equal(tc.want, got, "%s param %v", tc.kind, tc.value)
	}
}

func TestRule_NormalizeParamsNegativeMessage(t *testing.T) {
	_, err := normalizeParams(ParamInt, -3)
	assertion.ErrorContains(t, err, "expected a non-negative integer, got -3")
}
