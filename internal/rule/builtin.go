package rule

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/s0ders/go-commitlint/internal/header"
)

// HeaderFormat is the name under which a header that does not match the grammar is reported.
const HeaderFormat = "header-format"

const maxTicketKeyLength = 7

var (
	uppercaseRegex = regexp.MustCompile(`^[A-Z]+$`)
	numericRegex   = regexp.MustCompile(`^\d+$`)
	alphaRegex     = regexp.MustCompile(`^[a-zA-Z]+$`)
	lowerRegex     = regexp.MustCompile(`^[a-z]+$`)
	scopeRegex     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// CheckFunc evaluates the value of the field bound to a rule role. The field name is only used in messages.
type CheckFunc func(field, value string, params Params) Outcome

// Definition describes a built-in rule.
type Definition struct {
	Name    string
	Aliases []string
	Role    header.Role
	Param   ParamKind
	// Fatal rules reject the header outright instead of returning a soft violation.
	Fatal bool
	// Lowercase reports whether the activation accepts the lowercase switch.
	Lowercase bool
	Check     CheckFunc
}

var definitions = []*Definition{
	{
		Name:  HeaderFormat,
		Fatal: true,
		Check: func(_, _ string, _ Params) Outcome {
			// Reaching a rule at all means the header matched the grammar.
			return Valid()
		},
	},
	{
		Name:    "type-required",
		Aliases: []string{"type-empty"},
		Role:    header.RoleType,
		Check: func(field, value string, _ Params) Outcome {
			if strings.TrimSpace(value) == "" {
				return Invalid("%s is required", field)
			}
			return Valid()
		},
	},
	{
		Name:  "type-enum",
		Role:  header.RoleType,
		Param: ParamList,
		Check: func(field, value string, params Params) Outcome {
			if value == "" || !slices.Contains(params.List, value) {
				return Invalid("%s must be one of %s", field, strings.Join(params.List, ", "))
			}
			return Valid()
		},
	},
	{
		Name: "ticket-key-format",
		Role: header.RoleTicketKey,
		Check: func(field, value string, _ Params) Outcome {
			var violations []string

			if length := utf8.RuneCountInString(value); length > maxTicketKeyLength {
				violations = append(violations, fmt.Sprintf("%s must be less than %d characters, current length is %d", field, maxTicketKeyLength+1, length))
			}

			if !uppercaseRegex.MatchString(value) {
				violations = append(violations, fmt.Sprintf("%s must be uppercase letters only", field))
			}

			if len(violations) > 0 {
				return Invalid("%s", strings.Join(violations, "; "))
			}
			return Valid()
		},
	},
	{
		Name: "ticket-number-format",
		Role: header.RoleTicketNumber,
		Check: func(field, value string, _ Params) Outcome {
			if !numericRegex.MatchString(value) {
				return Invalid("%s must be numeric only", field)
			}
			return Valid()
		},
	},
	{
		Name:      "module-name-format",
		Aliases:   []string{"moduleName-format"},
		Role:      header.RoleModule,
		Param:     ParamOptionalList,
		Lowercase: true,
		Check: func(field, value string, params Params) Outcome {
			var violations []string

			switch {
			case params.Lowercase && !lowerRegex.MatchString(value):
				violations = append(violations, fmt.Sprintf("%s must be a valid string which contains lowercase alphabets only", field))
			case !params.Lowercase && !alphaRegex.MatchString(value):
				violations = append(violations, fmt.Sprintf("%s must be a valid string which contains alphabets only", field))
			}

			if len(params.List) > 0 && !slices.Contains(params.List, value) {
				violations = append(violations, fmt.Sprintf("%s must be one of %s", field, strings.Join(params.List, ", ")))
			}

			if len(violations) > 0 {
				return Invalid("%s", strings.Join(violations, "; "))
			}
			return Valid()
		},
	},
	{
		Name:  "scope-charset",
		Role:  header.RoleModule,
		Fatal: true,
		Check: func(field, value string, _ Params) Outcome {
			if value == "" {
				return Fatal("%s must not be empty", field)
			}
			if !scopeRegex.MatchString(value) {
				return Fatal("%s must only contain letters, digits, underscores or hyphens, got %q", field, value)
			}
			return Valid()
		},
	},
	{
		Name:    "description-no-leading-space",
		Aliases: []string{"description-trim-spaces"},
		Role:    header.RoleDescription,
		Fatal:   true,
		Check: func(field, value string, _ Params) Outcome {
			if strings.HasPrefix(value, " ") {
				return Fatal("%s must not start with spaces (only one space is allowed before the %s)", field, field)
			}
			return Valid()
		},
	},
	{
		Name:  "description-no-edge-space",
		Role:  header.RoleDescription,
		Fatal: true,
		Check: func(field, value string, _ Params) Outcome {
			if strings.HasPrefix(value, " ") || strings.HasSuffix(value, " ") {
				return Fatal("%s must not start or end with spaces", field)
			}
			return Valid()
		},
	},
	{
		Name:  "description-min-length",
		Role:  header.RoleDescription,
		Param: ParamInt,
		Check: func(field, value string, params Params) Outcome {
			length := utf8.RuneCountInString(value)
			if value == "" || length < params.Int {
				return Invalid("%s must be at least %d characters, current length is %d", field, params.Int, length)
			}
			return Valid()
		},
	},
	{
		Name:  "description-max-length",
		Role:  header.RoleDescription,
		Param: ParamInt,
		Check: func(field, value string, params Params) Outcome {
			length := utf8.RuneCountInString(value)
			if value == "" || length > params.Int {
				return Invalid("%s must be at most %d characters, current length is %d", field, params.Int, length)
			}
			return Valid()
		},
	},
}

// Lookup returns the built-in rule registered under name or one of its aliases. Matching ignores case, since
// Viper lowercases configuration keys.
func Lookup(name string) (*Definition, bool) {
	for _, def := range definitions {
		if strings.EqualFold(def.Name, name) {
			return def, true
		}
		for _, alias := range def.Aliases {
			if strings.EqualFold(alias, name) {
				return def, true
			}
		}
	}

	return nil, false
}

// Definitions returns every built-in rule in registration order.
func Definitions() []*Definition {
	return slices.Clone(definitions)
}
