package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/s0ders/go-commitlint/internal/header"
	"github.com/s0ders/go-commitlint/internal/preset"
	"github.com/s0ders/go-commitlint/internal/rule"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) AddWarning(format string, args ...interface{}) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// rawConfig uses interface{} to accept any YAML structure for lenient validation
type rawConfig struct {
	Preset  interface{} `yaml:"preset"`
	Grammar interface{} `yaml:"grammar"`
	Rules   interface{} `yaml:"rules"`
}

func NewValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate <CONFIGURATION_FILE_PATH>",
		Short: "Validate a configuration file",
		Long:  "Validate a configuration file for syntax and semantic errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]

			result, err := validateConfigFile(configPath)
			if err != nil {
				return err
			}

			printValidationResult(cmd, configPath, result)

			if result.HasErrors() {
				return ErrInvalidConfig
			}

			return nil
		},
	}

	return validateCmd
}

func validateConfigFile(path string) (*ValidationResult, error) {
	result := &ValidationResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config rawConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax: %w", err)
	}

	if config.Preset == nil && config.Grammar == nil && config.Rules == nil {
		result.AddWarning("no preset, grammar or rules configured, the %q preset applies", preset.Default)
	}

	base, presetOK := validatePreset(config.Preset, result)
	pattern, grammarOK := validateGrammar(config.Grammar, result)
	configs, rulesOK := validateRules(config.Rules, result)

	if !presetOK || !grammarOK || !rulesOK {
		return result, nil
	}

	if config.Grammar == nil {
		pattern = base.Grammar
	}

	if config.Rules == nil {
		configs = base.Rules
	}

	if _, err := rule.New(pattern, configs); err != nil {
		if config.Rules == nil {
			result.AddError("rules: preset %q rules do not fit grammar %q: %s", base.Name, pattern.Name(), err)
		} else {
			result.AddError("rules: %s", err)
		}
	}

	return result, nil
}

func validatePreset(value interface{}, result *ValidationResult) (preset.Preset, bool) {
	name := preset.Default

	if value != nil {
		str, ok := value.(string)
		if !ok {
			result.AddError("preset: expected a string, got %T", value)
			return preset.Preset{}, false
		}
		name = str
	}

	p, err := preset.Get(name)
	if err != nil {
		result.AddError("preset: unknown preset %q (available: %s)", name, strings.Join(preset.Names(), ", "))
		return preset.Preset{}, false
	}

	return p, true
}

func validateGrammar(value interface{}, result *ValidationResult) (*header.Pattern, bool) {
	if value == nil {
		return nil, true
	}

	grammar, ok := value.(map[string]interface{})
	if !ok {
		result.AddError("grammar: expected an object with \"pattern\" and \"fields\" keys, got %T", value)
		return nil, false
	}

	pattern, err := header.Unmarshall(grammar)
	if err != nil {
		result.AddError("grammar: %s", err)
		return nil, false
	}

	if pattern.Template() == "" {
		result.AddWarning("grammar: no template configured, headers cannot be rebuilt from their fields")
	}

	return pattern, true
}

func validateRules(value interface{}, result *ValidationResult) ([]rule.Config, bool) {
	if value == nil {
		return nil, true
	}

	configs, err := rule.Unmarshall(value)
	if err != nil {
		result.AddError("rules: %s", err)
		return nil, false
	}

	valid := true

	for i, cfg := range configs {
		if _, ok := rule.Lookup(cfg.Name); !ok {
			valid = false

			if suggestion := suggestRule(cfg.Name); suggestion != "" {
				result.AddError("rules[%d]: unknown rule %q (did you mean %q?)", i, cfg.Name, suggestion)
			} else {
				result.AddError("rules[%d]: unknown rule %q", i, cfg.Name)
			}
			continue
		}

		if cfg.Severity == rule.Off {
			result.AddWarning("rules[%d]: rule %q is disabled", i, cfg.Name)
		}
	}

	return configs, valid
}

// suggestRule maps common commitlint rule names to their closest built-in rule.
func suggestRule(input string) string {
	input = strings.ToLower(input)

	suggestions := map[string]string{
		"type-case":          "type-enum",
		"scope-empty":        "module-name-format",
		"scope-enum":         "module-name-format",
		"scope-case":         "module-name-format",
		"subject-empty":      "description-min-length",
		"subject-min-length": "description-min-length",
		"subject-max-length": "description-max-length",
		"header-max-length":  "description-max-length",
		"header-min-length":  "description-min-length",
		"subject-trim":       "description-no-edge-space",
	}

	if suggestion, ok := suggestions[input]; ok {
		return suggestion
	}

	return ""
}

func printValidationResult(cmd *cobra.Command, path string, result *ValidationResult) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validating %s...\n\n", path)

	if !result.HasErrors() && len(result.Warnings) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n0 errors, 0 warnings\n")
		return
	}

	for _, err := range result.Errors {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", err)
	}

	for _, warn := range result.Warnings {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s\n", warn)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d error(s), %d warning(s)\n", len(result.Errors), len(result.Warnings))
}
