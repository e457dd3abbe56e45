// Package header provides functions to decompose a commit message header into named fields.
//
// A header is matched against a single configured Pattern. The match is always anchored at both ends of the header
// so a partial match is treated as a format error. Each capture group of the pattern is bound, in declaration order,
// to the corresponding field name.
package header

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/unicode/norm"
)

// Role is the semantic meaning of a field, independent of the name a grammar gives it.
type Role string

const (
	RoleType         Role = "type"
	RoleTicketKey    Role = "ticketKey"
	RoleTicketNumber Role = "ticketNumber"
	RoleModule       Role = "module"
	RoleDescription  Role = "description"
)

// DefaultFormatMessage is used when a pattern is built without an explicit format message.
const DefaultFormatMessage = "invalid commit message format"

var (
	ErrFieldCount   = errors.New("field names count does not match pattern capture groups")
	ErrEmptyPattern = errors.New("empty header pattern")
	ErrNoFields     = errors.New("no field names")
	ErrDuplicate    = errors.New("duplicate field name")
	ErrUnknownField = errors.New("unknown field name")
)

// roleFallbacks lists the field names a role resolves to when a grammar does not map it explicitly.
var roleFallbacks = map[Role][]string{
	RoleType:         {"type"},
	RoleTicketKey:    {"ticketKey"},
	RoleTicketNumber: {"ticketNumber"},
	RoleModule:       {"module", "moduleName", "scope"},
	RoleDescription:  {"description", "subject"},
}

// FormatError is returned when a header does not match a pattern end to end.
type FormatError struct {
	Header  string
	Pattern string
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// Pattern is an immutable header grammar.
type Pattern struct {
	name          string
	expr          string
	regex         *regexp.Regexp
	fields        []string
	template      *template.Template
	templateText  string
	formatMessage string
	roles         map[Role]string
}

type Option func(p *Pattern) error

// WithTemplate sets a text/template used to re-join parsed fields, e.g. "{{.type}}({{.scope}}): {{.description}}".
func WithTemplate(text string) Option {
	return func(p *Pattern) error {
		if text == "" {
			return nil
		}

		tmpl, err := template.New(p.name).Option("missingkey=error").Parse(text)
		if err != nil {
			return fmt.Errorf("parsing template: %w", err)
		}

		p.template = tmpl
		p.templateText = text
		return nil
	}
}

// WithFormatMessage sets the fixed message carried by format errors.
func WithFormatMessage(message string) Option {
	return func(p *Pattern) error {
		if message != "" {
			p.formatMessage = message
		}
		return nil
	}
}

// WithRole binds a role to one of the pattern field names.
func WithRole(role Role, field string) Option {
	return func(p *Pattern) error {
		if !p.hasField(field) {
			return fmt.Errorf("binding role %q to %q: %w", role, field, ErrUnknownField)
		}

		p.roles[role] = field
		return nil
	}
}

// NewPattern compiles expr and binds its capture groups to fields.
func NewPattern(name, expr string, fields []string, opts ...Option) (*Pattern, error) {
	if expr == "" {
		return nil, ErrEmptyPattern
	}

	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	regex, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}

	if regex.NumSubexp() != len(fields) {
		return nil, fmt.Errorf("%w: %d capture groups, %d fields", ErrFieldCount, regex.NumSubexp(), len(fields))
	}

	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrNoFields)
		}
		if _, ok := seen[field]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, field)
		}
		seen[field] = struct{}{}
	}

	p := &Pattern{
		name:          name,
		expr:          expr,
		regex:         regex,
		fields:        append([]string(nil), fields...),
		formatMessage: DefaultFormatMessage,
		roles:         make(map[Role]string),
	}

	for _, opt := range opts {
		if err = opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// MustPattern is like NewPattern but panics on error. It is meant for built-in grammars.
func MustPattern(name, expr string, fields []string, opts ...Option) *Pattern {
	p, err := NewPattern(name, expr, fields, opts...)
	if err != nil {
		panic(fmt.Sprintf("header: building pattern %q: %s", name, err))
	}
	return p
}

func (p *Pattern) Name() string {
	return p.name
}

// Expr returns the expression as configured, without the anchoring added at compile time.
func (p *Pattern) Expr() string {
	return p.expr
}

func (p *Pattern) Fields() []string {
	return append([]string(nil), p.fields...)
}

func (p *Pattern) FormatMessage() string {
	return p.formatMessage
}

func (p *Pattern) Template() string {
	return p.templateText
}

// Field returns the field name bound to role.
func (p *Pattern) Field(role Role) (string, bool) {
	if field, ok := p.roles[role]; ok {
		return field, true
	}

	for _, candidate := range roleFallbacks[role] {
		if p.hasField(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func (p *Pattern) hasField(name string) bool {
	for _, field := range p.fields {
		if field == name {
			return true
		}
	}
	return false
}

// Parse matches raw against the pattern and returns the extracted fields, or a *FormatError.
func (p *Pattern) Parse(raw string) (*Parsed, error) {
	match := p.regex.FindStringSubmatch(raw)
	if match == nil {
		return nil, &FormatError{Header: raw, Pattern: p.expr, Message: p.formatMessage}
	}

	values := make(map[string]string, len(p.fields))
	for i, field := range p.fields {
		values[field] = match[i+1]
	}

	return &Parsed{Raw: raw, pattern: p, values: values}, nil
}

// Format renders parsed fields back into a header using the pattern template.
func (p *Pattern) Format(h *Parsed) (string, error) {
	if p.template == nil {
		return "", fmt.Errorf("pattern %q has no template", p.name)
	}

	var buf bytes.Buffer
	if err := p.template.Execute(&buf, h.values); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Parsed holds the fields extracted from a single header. It is never shared across validations.
type Parsed struct {
	Raw     string
	pattern *Pattern
	values  map[string]string
}

// Get returns the value of a field, or an empty string if the field is unknown.
func (h *Parsed) Get(field string) string {
	return h.values[field]
}

// Role returns the value of the field bound to role and whether the grammar captures that role at all.
func (h *Parsed) Role(role Role) (string, bool) {
	field, ok := h.pattern.Field(role)
	if !ok {
		return "", false
	}
	return h.values[field], true
}

func (h *Parsed) Len() int {
	return len(h.values)
}

func (h *Parsed) Fields() map[string]string {
	fields := make(map[string]string, len(h.values))
	for k, v := range h.values {
		fields[k] = v
	}
	return fields
}

func (h *Parsed) Pattern() *Pattern {
	return h.pattern
}

// FromMessage extracts the header of a commit message as stored by git: its first non-blank line, taken as is.
func FromMessage(message string) string {
	return firstLine(message, false)
}

// FromEditMessage extracts the header of a message being edited, such as .git/COMMIT_EDITMSG, where lines starting
// with "#" are comments git strips before recording the commit.
func FromEditMessage(message string) string {
	return firstLine(message, true)
}

func firstLine(message string, skipComments bool) string {
	message = norm.NFC.String(message)

	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if strings.TrimSpace(line) == "" || (skipComments && strings.HasPrefix(line, "#")) {
			continue
		}

		return line
	}

	return ""
}
