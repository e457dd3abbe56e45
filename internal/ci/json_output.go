package ci

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/s0ders/go-commitlint/internal/rule"
)

// ResultOutput represents a single rule result in the JSON output.
type ResultOutput struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Valid    bool   `json:"valid"`
	Fatal    bool   `json:"fatal,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ReportOutput represents the validation of a single header in the JSON output.
type ReportOutput struct {
	Header  string         `json:"header"`
	Commit  string         `json:"commit,omitempty"`
	Valid   bool           `json:"valid"`
	Results []ResultOutput `json:"results"`
}

// Summary contains aggregate information about all validated headers.
type Summary struct {
	TotalCount   int  `json:"total_count"`
	FailedCount  int  `json:"failed_count"`
	WarningCount int  `json:"warning_count"`
	Valid        bool `json:"valid"`
}

// JSONOutput represents the structured JSON output containing all reports and a summary.
type JSONOutput struct {
	Summary Summary        `json:"summary"`
	Reports []ReportOutput `json:"reports"`
}

// NewJSONOutput creates a new JSONOutput instance.
func NewJSONOutput() *JSONOutput {
	return &JSONOutput{
		Reports: make([]ReportOutput, 0),
	}
}

// AddReport adds a header report to the output. commit may be empty when the header does not come from a repository.
func (j *JSONOutput) AddReport(report rule.Report, commit string) {
	output := ReportOutput{
		Header:  report.Header,
		Commit:  commit,
		Valid:   report.Valid(),
		Results: make([]ResultOutput, 0, len(report.Results)),
	}

	for _, r := range report.Results {
		output.Results = append(output.Results, ResultOutput{
			Rule:     r.Rule,
			Severity: r.Severity.String(),
			Valid:    r.Valid,
			Fatal:    r.Fatal,
			Message:  r.Message,
		})
	}

	j.Reports = append(j.Reports, output)
}

// Finalize computes the summary based on added reports.
func (j *JSONOutput) Finalize() {
	j.Summary.TotalCount = len(j.Reports)
	j.Summary.FailedCount = 0
	j.Summary.WarningCount = 0

	for _, r := range j.Reports {
		if !r.Valid {
			j.Summary.FailedCount++
		}

		for _, result := range r.Results {
			if !result.Valid && result.Severity == rule.Warning.String() {
				j.Summary.WarningCount++
			}
		}
	}

	j.Summary.Valid = j.Summary.FailedCount == 0
}

// Write outputs the JSON to the given writer.
func (j *JSONOutput) Write(w io.Writer) error {
	j.Finalize()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(j); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}
