package rule

import (
	"sort"
)

// Result is the outcome of one activation.
type Result struct {
	Rule     string
	Severity Severity
	When     Condition
	Outcome
}

// Failed reports whether the outcome is a violation, soft or fatal.
func (r Result) Failed() bool {
	return !r.Valid
}

type indexedResult struct {
	index int
	Result
}

// Report aggregates the results of one header validation.
type Report struct {
	Header  string
	Results []Result
}

func newReport(raw string, results []indexedResult) Report {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	report := Report{Header: raw, Results: make([]Result, 0, len(results))}
	for _, r := range results {
		report.Results = append(report.Results, r.Result)
	}

	return report
}

// NewFormatReport builds the report of a header that could not be decomposed at all. Such a report is always invalid.
func NewFormatReport(raw, message string) Report {
	return Report{
		Header: raw,
		Results: []Result{{
			Rule:     HeaderFormat,
			Severity: Error,
			When:     Always,
			Outcome:  Fatal("%s", message),
		}},
	}
}

// Valid is false when at least one Error activation failed. Warnings never change the verdict.
func (r Report) Valid() bool {
	return len(r.Errors()) == 0
}

func (r Report) Errors() []Result {
	return r.filter(Error)
}

func (r Report) Warnings() []Result {
	return r.filter(Warning)
}

// Fatal returns the fatal violation of the report, if any, preferring one raised by an Error activation.
func (r Report) Fatal() (Result, bool) {
	var (
		fatal Result
		found bool
	)

	for _, result := range r.Results {
		if !result.Failed() || !result.Fatal {
			continue
		}
		if result.Severity == Error {
			return result, true
		}
		if !found {
			fatal, found = result, true
		}
	}

	return fatal, found
}

func (r Report) filter(severity Severity) []Result {
	var results []Result
	for _, result := range r.Results {
		if result.Failed() && result.Severity == severity {
			results = append(results, result)
		}
	}
	return results
}
