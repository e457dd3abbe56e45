package header

import (
	"errors"
	"fmt"
)

var ErrWrongType = errors.New("configuration value has wrong type")

// Unmarshall takes a raw Viper grammar configuration and returns the corresponding Pattern.
//
// Expected keys are "name", "pattern", "fields", and optionally "template", "format-message" and "roles", the latter
// mapping a role (e.g. "module") to one of the field names.
func Unmarshall(input map[string]any) (*Pattern, error) {
	name, err := stringValue(input, "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "custom"
	}

	expr, err := stringValue(input, "pattern")
	if err != nil {
		return nil, err
	}

	rawFields, ok := input["fields"]
	if !ok {
		return nil, ErrNoFields
	}

	fieldsAny, ok := rawFields.([]any)
	if !ok {
		return nil, fmt.Errorf("fields: %w", ErrWrongType)
	}

	fields := make([]string, 0, len(fieldsAny))
	for i, f := range fieldsAny {
		field, ok := f.(string)
		if !ok {
			return nil, fmt.Errorf("fields[%d]: %w", i, ErrWrongType)
		}
		fields = append(fields, field)
	}

	templateText, err := stringValue(input, "template")
	if err != nil {
		return nil, err
	}

	formatMessage, err := stringValue(input, "format-message")
	if err != nil {
		return nil, err
	}

	opts := []Option{WithTemplate(templateText), WithFormatMessage(formatMessage)}

	if rawRoles, ok := input["roles"]; ok && rawRoles != nil {
		roles, ok := rawRoles.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("roles: %w", ErrWrongType)
		}

		for role, field := range roles {
			fieldStr, ok := field.(string)
			if !ok {
				return nil, fmt.Errorf("roles.%s: %w", role, ErrWrongType)
			}
			opts = append(opts, WithRole(canonicalRole(role), fieldStr))
		}
	}

	return NewPattern(name, expr, fields, opts...)
}

// canonicalRole restores the casing of role names, since Viper lowercases map keys.
func canonicalRole(role string) Role {
	switch role {
	case "ticketkey", "ticket-key":
		return RoleTicketKey
	case "ticketnumber", "ticket-number":
		return RoleTicketNumber
	}
	return Role(role)
}

func stringValue(input map[string]any, key string) (string, error) {
	value, ok := input[key]
	if !ok || value == nil {
		return "", nil
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrWrongType)
	}

	return str, nil
}
