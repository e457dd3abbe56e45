package ci

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0ders/go-commitlint/internal/rule"
)

func validReport() rule.Report {
	return rule.Report{
		Header: "[FOO-123](api): add endpoint",
		Results: []rule.Result{
			{Rule: "ticket-key-format", Severity: rule.Error, Outcome: rule.Valid()},
			{Rule: "description-max-length", Severity: rule.Warning, Outcome: rule.Valid()},
		},
	}
}

func warningReport() rule.Report {
	return rule.Report{
		Header: "[FOO-124](api): add a much longer description than allowed",
		Results: []rule.Result{
			{Rule: "ticket-key-format", Severity: rule.Error, Outcome: rule.Valid()},
			{Rule: "description-max-length", Severity: rule.Warning, Outcome: rule.Invalid("description must be at most %d characters, current length is %d", 10, 44)},
		},
	}
}

func failedReport() rule.Report {
	return rule.NewFormatReport("wip", "invalid commit message format")
}

func TestNewJSONOutput(t *testing.T) {
	output := NewJSONOutput()
	assert.NotNil(t, output)
	assert.Empty(t, output.Reports)
	assert.Equal(t, 0, output.Summary.TotalCount)
	assert.Equal(t, 0, output.Summary.FailedCount)
	assert.False(t, output.Summary.Valid)
}

func TestJSONOutput_AddReport(t *testing.T) {
	output := NewJSONOutput()

	output.AddReport(validReport(), "")
	require.Len(t, output.Reports, 1)
	assert.Equal(t, "[FOO-123](api): add endpoint", output.Reports[0].Header)
	assert.Empty(t, output.Reports[0].Commit)
	assert.True(t, output.Reports[0].Valid)
	assert.Len(t, output.Reports[0].Results, 2)

	output.AddReport(failedReport(), "3f2a1b0")
	require.Len(t, output.Reports, 2)
	assert.Equal(t, "3f2a1b0", output.Reports[1].Commit)
	assert.False(t, output.Reports[1].Valid)
	require.Len(t, output.Reports[1].Results, 1)

	result := output.Reports[1].Results[0]
	assert.Equal(t, rule.HeaderFormat, result.Rule)
	assert.Equal(t, "error", result.Severity)
	assert.True(t, result.Fatal)
	assert.Equal(t, "invalid commit message format", result.Message)
}

func TestJSONOutput_Finalize(t *testing.T) {
	tests := []struct {
		name         string
		reports      []rule.Report
		wantTotal    int
		wantFailed   int
		wantWarnings int
		wantValid    bool
	}{
		{
			name:      "no reports",
			wantValid: true,
		},
		{
			name:      "all valid",
			reports:   []rule.Report{validReport(), validReport()},
			wantTotal: 2,
			wantValid: true,
		},
		{
			name:         "warnings only",
			reports:      []rule.Report{validReport(), warningReport()},
			wantTotal:    2,
			wantWarnings: 1,
			wantValid:    true,
		},
		{
			name:         "mixed",
			reports:      []rule.Report{failedReport(), warningReport(), validReport()},
			wantTotal:    3,
			wantFailed:   1,
			wantWarnings: 1,
			wantValid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := NewJSONOutput()
			for _, r := range tt.reports {
				output.AddReport(r, "")
			}

			output.Finalize()

			assert.Equal(t, tt.wantTotal, output.Summary.TotalCount)
			assert.Equal(t, tt.wantFailed, output.Summary.FailedCount)
			assert.Equal(t, tt.wantWarnings, output.Summary.WarningCount)
			assert.Equal(t, tt.wantValid, output.Summary.Valid)
		})
	}
}

func TestJSONOutput_Write(t *testing.T) {
	output := NewJSONOutput()
	output.AddReport(warningReport(), "abc1234")
	output.AddReport(failedReport(), "def5678")

	var buf bytes.Buffer
	err := output.Write(&buf)
	require.NoError(t, err)

	var decoded JSONOutput
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)

	assert.Equal(t, 2, decoded.Summary.TotalCount)
	assert.Equal(t, 1, decoded.Summary.FailedCount)
	assert.Equal(t, 1, decoded.Summary.WarningCount)
	assert.False(t, decoded.Summary.Valid)
	require.Len(t, decoded.Reports, 2)
	assert.Equal(t, "abc1234", decoded.Reports[0].Commit)
	assert.Equal(t, "description must be at most 10 characters, current length is 44", decoded.Reports[0].Results[1].Message)
}

func TestJSONOutput_WriteFormat(t *testing.T) {
	output := NewJSONOutput()
	output.AddReport(validReport(), "")

	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf))

	got := buf.String()
	assert.Contains(t, got, "  \"summary\": {")
	assert.Contains(t, got, "\"total_count\": 1")
	assert.Contains(t, got, "\"rule\": \"ticket-key-format\"")
	assert.NotContains(t, got, "\"fatal\"")
	assert.NotContains(t, got, "\"commit\"")
}
