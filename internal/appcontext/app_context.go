// Package appcontext provides a structure to store the current application execution context.
//
// The use of this structure allows avoiding the use of global variables to share the states of variables across
// structures and functions.
package appcontext

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/s0ders/go-commitlint/internal/rule"
)

type AppContext struct {
	Viper         *viper.Viper
	RulesCfg      rule.Flag
	Logger        zerolog.Logger
	CfgFile       string
	Preset        string
	EditFile      string
	AccessToken   string
	RemoteName    string
	Branch        string
	From          string
	Output        string
	MaxCount      int
	Remote        bool
	IncludeMerges bool
	JSON          bool
	Verbose       bool
}

func New() *AppContext {
	return &AppContext{
		Viper:  viper.New(),
		Logger: zerolog.Nop(),
	}
}
