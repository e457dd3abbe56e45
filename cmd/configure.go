package cmd

import (
	"fmt"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/header"
	"github.com/s0ders/go-commitlint/internal/linter"
	"github.com/s0ders/go-commitlint/internal/preset"
	"github.com/s0ders/go-commitlint/internal/rule"
)

// configureLinter builds the linter described by the current configuration: the selected preset, optionally
// overridden by a custom grammar and custom rules.
func configureLinter(ctx *appcontext.AppContext) (*linter.Linter, error) {
	p, err := preset.Get(ctx.Preset)
	if err != nil {
		return nil, fmt.Errorf("loading preset: %w", err)
	}

	pattern, err := configureGrammar(ctx, p.Grammar)
	if err != nil {
		return nil, fmt.Errorf("loading grammar configuration: %w", err)
	}

	rules := configureRules(ctx, p.Rules)

	l, err := linter.New(ctx.Logger, pattern, rules)
	if err != nil {
		return nil, fmt.Errorf("configuring rules: %w", err)
	}

	ctx.Logger.Debug().Str("grammar", pattern.Name()).Int("rules", len(rules)).Msg("linter configured")

	return l, nil
}

func configureGrammar(ctx *appcontext.AppContext, fallback *header.Pattern) (*header.Pattern, error) {
	if !ctx.Viper.IsSet("grammar") {
		return fallback, nil
	}

	return header.Unmarshall(ctx.Viper.GetStringMap("grammar"))
}

func configureRules(ctx *appcontext.AppContext, fallback []rule.Config) []rule.Config {
	if len(ctx.RulesCfg) == 0 {
		return fallback
	}

	return ctx.RulesCfg
}
