// Package rule provides the commit header rule engine.
//
// Rules are independent: each one inspects a single field of a parsed header together with its own static
// parameters and produces an Outcome. An Engine evaluates an ordered set of rule activations and aggregates their
// outcomes into a Report.
package rule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownRule      = errors.New("unknown rule")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidCondition = errors.New("invalid condition")
	ErrInvalidParams    = errors.New("invalid rule parameters")
	ErrMissingField     = errors.New("grammar does not capture the field required by rule")
	ErrNoRules          = errors.New("no rule found")
	ErrWrongType        = errors.New("configuration value has wrong type")
	ErrDuplicateRule    = errors.New("rule configured more than once")
)

type Severity int

const (
	Off Severity = iota
	Warning
	Error
)

var severityNames = map[Severity]string{
	Off:     "off",
	Warning: "warning",
	Error:   "error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) {
	if _, ok := severityNames[s]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity accepts a severity name ("off", "warning", "warn", "error") or a numeric level (0, 1, 2) given either
// as a number or as a string.
func ParseSeverity(value any) (Severity, error) {
	switch v := value.(type) {
	case Severity:
		if _, ok := severityNames[v]; ok {
			return v, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "off", "disabled":
			return Off, nil
		case "warning", "warn":
			return Warning, nil
		case "error":
			return Error, nil
		}

		if level, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return ParseSeverity(level)
		}
	default:
		if level, ok := toInt(v); ok && level >= int(Off) && level <= int(Error) {
			return Severity(level), nil
		}
	}

	return Off, fmt.Errorf("%w: %v", ErrInvalidSeverity, value)
}

// Condition is the commitlint "when" of an activation. Built-in rules carry it but do not consult it.
type Condition string

const (
	Always Condition = "always"
	Never  Condition = "never"
)

func ParseCondition(value any) (Condition, error) {
	if value == nil {
		return Always, nil
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrInvalidCondition, value)
	}

	switch Condition(strings.ToLower(strings.TrimSpace(str))) {
	case "", Always:
		return Always, nil
	case Never:
		return Never, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCondition, str)
}

// Outcome is the verdict of a single rule. A fatal outcome denotes input the engine rejects outright.
type Outcome struct {
	Valid   bool
	Fatal   bool
	Message string
}

func Valid() Outcome {
	return Outcome{Valid: true}
}

func Invalid(format string, args ...any) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...)}
}

func Fatal(format string, args ...any) Outcome {
	return Outcome{Fatal: true, Message: fmt.Sprintf(format, args...)}
}

// toInt converts the numeric types produced by JSON, YAML and Viper decoding to an int.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float32:
		return toInt(float64(v))
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	}

	return 0, false
}
