// Package cmd implements the go-commitlint command line interface.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/s0ders/go-commitlint/internal/appcontext"
	"github.com/s0ders/go-commitlint/internal/preset"
	"github.com/s0ders/go-commitlint/internal/rule"
)

const (
	defaultConfigName = ".commitlint"
	envPrefix         = "COMMITLINT"
)

var ErrLintFailed = errors.New("commit header validation failed")

func NewRootCommand(ctx *appcontext.AppContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "go-commitlint",
		Short:        "go-commitlint - CLI to validate commit message headers against a convention",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeConfig(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.CfgFile, "config", "", "Configuration file path (default \".commitlint.yaml\" in the working directory)")
	rootCmd.PersistentFlags().StringVarP(&ctx.Preset, "preset", "p", preset.Default, "Built-in convention used to parse and check headers")
	rootCmd.PersistentFlags().Var(&ctx.RulesCfg, "rules", "JSON rules overriding the preset rules")
	rootCmd.PersistentFlags().BoolVar(&ctx.JSON, "json", false, "Print reports as JSON")
	rootCmd.PersistentFlags().BoolVarP(&ctx.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(NewLintCmd(ctx))
	rootCmd.AddCommand(NewCheckCmd(ctx))
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewPresetsCmd(ctx))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func initializeConfig(cmd *cobra.Command, ctx *appcontext.AppContext) error {
	v := ctx.Viper

	if ctx.CfgFile != "" {
		v.SetConfigFile(ctx.CfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading configuration file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := bindFlags(cmd, ctx); err != nil {
		return err
	}

	ctx.Logger = newLogger(cmd, ctx.Verbose)
	ctx.Logger.Debug().Str("config", v.ConfigFileUsed()).Str("preset", ctx.Preset).Msg("configuration loaded")

	return nil
}

// bindFlags applies configuration values to every flag the user did not set explicitly, so that flags take
// precedence over the environment which takes precedence over the configuration file.
func bindFlags(cmd *cobra.Command, ctx *appcontext.AppContext) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed || !ctx.Viper.IsSet(f.Name) {
			return
		}

		value := ctx.Viper.Get(f.Name)

		if f.Value.Type() == rule.FlagType {
			if err := setRules(ctx, value); err != nil {
				bindErr = fmt.Errorf("loading rules configuration: %w", err)
			}
			return
		}

		if err := f.Value.Set(fmt.Sprintf("%v", value)); err != nil {
			bindErr = fmt.Errorf("setting flag %q from configuration: %w", f.Name, err)
		}
	})

	return bindErr
}

func setRules(ctx *appcontext.AppContext, value any) error {
	if str, ok := value.(string); ok {
		return ctx.RulesCfg.Set(str)
	}

	configs, err := rule.Unmarshall(value)
	if err != nil {
		return err
	}

	ctx.RulesCfg = configs
	return nil
}

func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(cmd.ErrOrStderr()).Level(level).With().Timestamp().Logger()
}
