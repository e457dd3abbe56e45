package rule

import (
	"fmt"
	"sort"
)

// Unmarshall takes a raw Viper (or JSON) rules configuration and returns the corresponding activations.
//
// Two shapes are accepted. A list of objects:
//
//	- name: type-enum
//	  severity: error
//	  when: always
//	  value: [feat, fix]
//
// or the commitlint tuple map, where the level is 0, 1 or 2 and the value is optional:
//
//	type-enum: [2, always, [feat, fix]]
//
// Map entries are sorted by rule name since maps carry no order.
func Unmarshall(input any) ([]Config, error) {
	switch v := input.(type) {
	case nil:
		return nil, ErrNoRules
	case []Config:
		return v, nil
	case []any:
		return unmarshallList(v)
	case []map[string]any:
		list := make([]any, len(v))
		for i, item := range v {
			list[i] = item
		}
		return unmarshallList(list)
	case map[string]any:
		return unmarshallTuples(v)
	}

	return nil, fmt.Errorf("rules: %w: expected a list or a map, got %T", ErrWrongType, input)
}

func unmarshallList(input []any) ([]Config, error) {
	if len(input) == 0 {
		return nil, ErrNoRules
	}

	configs := make([]Config, 0, len(input))

	for i, item := range input {
		object, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rules[%d]: %w: expected an object, got %T", i, ErrWrongType, item)
		}

		name, ok := object["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("rules[%d]: %w: \"name\" must be a non-empty string", i, ErrWrongType)
		}

		cfg := Config{Name: name, Severity: Error, When: Always, Value: object["value"]}

		if severity, ok := object["severity"]; ok {
			parsed, err := ParseSeverity(severity)
			if err != nil {
				return nil, fmt.Errorf("rules[%d] (%s): %w", i, name, err)
			}
			cfg.Severity = parsed
		}

		when, err := ParseCondition(object["when"])
		if err != nil {
			return nil, fmt.Errorf("rules[%d] (%s): %w", i, name, err)
		}
		cfg.When = when

		if lowercase, ok := object["lowercase"]; ok {
			b, ok := lowercase.(bool)
			if !ok {
				return nil, fmt.Errorf("rules[%d] (%s): lowercase: %w", i, name, ErrWrongType)
			}
			cfg.Lowercase = b
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}

func unmarshallTuples(input map[string]any) ([]Config, error) {
	if len(input) == 0 {
		return nil, ErrNoRules
	}

	names := make([]string, 0, len(input))
	for name := range input {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make([]Config, 0, len(input))

	for _, name := range names {
		tuple, ok := input[name].([]any)
		if !ok || len(tuple) == 0 || len(tuple) > 3 {
			return nil, fmt.Errorf("rules.%s: %w: expected [level, when, value]", name, ErrWrongType)
		}

		severity, err := ParseSeverity(tuple[0])
		if err != nil {
			return nil, fmt.Errorf("rules.%s: %w", name, err)
		}

		cfg := Config{Name: name, Severity: severity, When: Always}

		if len(tuple) > 1 {
			if cfg.When, err = ParseCondition(tuple[1]); err != nil {
				return nil, fmt.Errorf("rules.%s: %w", name, err)
			}
		}

		if len(tuple) > 2 {
			cfg.Value = tuple[2]
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}
