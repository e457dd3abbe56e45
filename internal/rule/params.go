package rule

import (
	"fmt"
)

type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamInt
	ParamList
	ParamOptionalList
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "integer"
	case ParamList:
		return "list"
	case ParamOptionalList:
		return "optional list"
	default:
		return "none"
	}
}

// Params are the static parameters of an activation, normalized once at configuration load.
type Params struct {
	Int       int
	List      []string
	Lowercase bool
}

// normalizeParams validates value against kind. Integers may be given bare or as a single-element list.
func normalizeParams(kind ParamKind, value any) (Params, error) {
	var params Params

	switch kind {
	case ParamNone:
		if value != nil {
			return params, fmt.Errorf("%w: expected no value, got %v", ErrInvalidParams, value)
		}
	case ParamInt:
		n, err := normalizeInt(value)
		if err != nil {
			return params, err
		}
		params.Int = n
	case ParamList:
		list, err := normalizeList(value)
		if err != nil {
			return params, err
		}
		if len(list) == 0 {
			return params, fmt.Errorf("%w: expected a non-empty list", ErrInvalidParams)
		}
		params.List = list
	case ParamOptionalList:
		if value == nil {
			return params, nil
		}
		list, err := normalizeList(value)
		if err != nil {
			return params, err
		}
		params.List = list
	}

	return params, nil
}

func normalizeInt(value any) (int, error) {
	switch v := value.(type) {
	case []any:
		if len(v) != 1 {
			return 0, fmt.Errorf("%w: expected an integer or a single-element list, got %d elements", ErrInvalidParams, len(v))
		}
		return normalizeInt(v[0])
	case []int:
		if len(v) != 1 {
			return 0, fmt.Errorf("%w: expected an integer or a single-element list, got %d elements", ErrInvalidParams, len(v))
		}
		return normalizeInt(v[0])
	}

	n, ok := toInt(value)
	if !ok {
		return 0, fmt.Errorf("%w: expected an integer, got %v (%T)", ErrInvalidParams, value, value)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: expected a non-negative integer, got %d", ErrInvalidParams, n)
	}

	return n, nil
}

func normalizeList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		list := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d: expected a string, got %v (%T)", ErrInvalidParams, i, item, item)
			}
			list = append(list, str)
		}
		return list, nil
	}

	return nil, fmt.Errorf("%w: expected a list of strings, got %v (%T)", ErrInvalidParams, value, value)
}
