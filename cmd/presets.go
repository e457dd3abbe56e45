package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/preset"
	"github.com/s0ders/go-commitlint/internal/rule"
)

var ErrUnknownOutput = errors.New("unknown output format")

type presetSummary struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
}

type grammarDocument struct {
	Name          string   `yaml:"name"`
	Pattern       string   `yaml:"pattern"`
	Fields        []string `yaml:"fields"`
	Template      string   `yaml:"template,omitempty"`
	FormatMessage string   `yaml:"format-message,omitempty"`
}

// configDocument has the shape of a configuration file, so that a preset can be dumped and customized.
type configDocument struct {
	Preset  string          `yaml:"preset"`
	Grammar grammarDocument `yaml:"grammar"`
	Rules   []rule.Config   `yaml:"rules"`
}

func NewPresetsCmd(ctx *appcontext.AppContext) *cobra.Command {
	presetsCmd := &cobra.Command{
		Use:   "presets [NAME]",
		Short: "List the built-in conventions",
		Long:  "List the built-in conventions or show the grammar and rules of one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.Output != "text" && ctx.Output != "yaml" {
				return fmt.Errorf("%w: %q (expected text or yaml)", ErrUnknownOutput, ctx.Output)
			}

			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return listPresets(out, ctx.Output)
			}

			p, err := preset.Get(args[0])
			if err != nil {
				return err
			}

			return showPreset(out, ctx.Output, p)
		},
	}

	presetsCmd.Flags().StringVarP(&ctx.Output, "output", "o", "text", "Output format, either text or yaml")

	return presetsCmd
}

func listPresets(w io.Writer, format string) error {
	summaries := make([]presetSummary, 0, len(preset.Names()))

	for _, name := range preset.Names() {
		p, err := preset.Get(name)
		if err != nil {
			return err
		}
		summaries = append(summaries, presetSummary{Name: p.Name, Description: p.Description, Example: p.Example})
	}

	if format == "yaml" {
		return encodeYAML(w, summaries)
	}

	for _, s := range summaries {
		marker := " "
		if s.Name == preset.Default {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %-14s %s\n", marker, s.Name, s.Description)
		_, _ = fmt.Fprintf(w, "  %-14s e.g. %s\n", "", s.Example)
	}

	return nil
}

func showPreset(w io.Writer, format string, p preset.Preset) error {
	if format == "yaml" {
		return encodeYAML(w, configDocument{
			Preset: p.Name,
			Grammar: grammarDocument{
				Name:          p.Grammar.Name(),
				Pattern:       p.Grammar.Expr(),
				Fields:        p.Grammar.Fields(),
				Template:      p.Grammar.Template(),
				FormatMessage: p.Grammar.FormatMessage(),
			},
			Rules: p.Rules,
		})
	}

	_, _ = fmt.Fprintf(w, "Preset:   %s\n", p.Name)
	_, _ = fmt.Fprintf(w, "Example:  %s\n", p.Example)
	_, _ = fmt.Fprintf(w, "Pattern:  %s\n", p.Grammar.Expr())
	_, _ = fmt.Fprintf(w, "Fields:   %s\n", strings.Join(p.Grammar.Fields(), ", "))
	_, _ = fmt.Fprintln(w, "Rules:")

	for _, cfg := range p.Rules {
		line := fmt.Sprintf("  %-30s %-8s", cfg.Name, cfg.Severity)
		if cfg.Value != nil {
			line += fmt.Sprintf(" %v", cfg.Value)
		}
		if cfg.Lowercase {
			line += " (lowercase)"
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	return nil
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}
