package rule

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
)

type Flag []Config

const FlagType = "ruleFlag"

func (f *Flag) String() string {
	if f == nil || len(*f) == 0 {
		return "[]"
	}

	b, err := json.Marshal(f)
	if err != nil {
		return "[]"
	}

	return string(b)
}

// Set parses a JSON rules configuration, in either of the shapes accepted by Unmarshall.
func (f *Flag) Set(value string) error {
	*f = Flag{}

	if value == "" || value == "[]" || value == "{}" {
		return nil
	}

	var temp any
	if err := json.Unmarshal([]byte(value), &temp); err != nil {
		return fmt.Errorf("unmarshalling rule flag value: %w", err)
	}

	configs, err := Unmarshall(temp)
	if err != nil {
		return fmt.Errorf("decoding rule flag value: %w", err)
	}

	*f = configs
	return nil
}

func (f *Flag) Type() string {
	return FlagType
}

var _ pflag.Value = (*Flag)(nil)
