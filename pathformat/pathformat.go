// Package pathformat renders single path element names from small placeholder
// templates such as "{album} ({year})" or "{track:02d} {title}".
package pathformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat      = errors.New("invalid format")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrBadData            = errors.New("bad data")
)

type Kind uint8

const (
	String Kind = iota
	Int
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	default:
		return "string"
	}
}

// Fields declares which placeholders a format may reference and their kinds.
type Fields map[string]Kind

// Data holds placeholder values for Execute. Values are string or int to match the Fields kind.
type Data map[string]any

type Format struct {
	raw    string
	fields Fields
	parts  []part
}

type part struct {
	lit   string
	field string
	width int
	zero  bool
}

func (f *Format) Parse(str string, fields Fields) error {
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("%w: empty format", ErrInvalidFormat)
	}
	if strings.ContainsAny(str, `/\`+"\x00") {
		return fmt.Errorf("%w: format must render a single name, no separators", ErrInvalidFormat)
	}

	var parts []part
	var lit strings.Builder
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == '{' && i+1 < len(str) && str[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(str) && str[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '}':
			return fmt.Errorf("%w: single '}' at offset %d", ErrInvalidFormat, i)
		case c == '{':
			end := strings.IndexByte(str[i:], '}')
			if end < 0 {
				return fmt.Errorf("%w: unclosed '{' at offset %d", ErrInvalidFormat, i)
			}
			p, err := parsePlaceholder(str[i+1:i+end], fields)
			if err != nil {
				return err
			}
			if lit.Len() > 0 {
				parts = append(parts, part{lit: lit.String()})
				lit.Reset()
			}
			parts = append(parts, p)
			i += end
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		parts = append(parts, part{lit: lit.String()})
	}

	f.raw = str
	f.fields = fields
	f.parts = parts
	return nil
}

func parsePlaceholder(body string, fields Fields) (part, error) {
	name, spec, _ := strings.Cut(body, ":")
	kind, ok := fields[name]
	if !ok {
		return part{}, fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, name)
	}
	p := part{field: name}
	if spec == "" {
		return p, nil
	}

	// "02d" style specs for ints, "s" for strings
	switch kind {
	case String:
		if spec != "s" {
			return part{}, fmt.Errorf("%w: spec %q not supported for {%s}", ErrInvalidFormat, spec, name)
		}
	case Int:
		digits, ok := strings.CutSuffix(spec, "d")
		if !ok {
			return part{}, fmt.Errorf("%w: spec %q not supported for {%s}", ErrInvalidFormat, spec, name)
		}
		if strings.HasPrefix(digits, "0") && len(digits) > 1 {
			p.zero = true
			digits = digits[1:]
		}
		if digits != "" {
			width, err := strconv.Atoi(digits)
			if err != nil || width < 0 {
				return part{}, fmt.Errorf("%w: bad width in spec %q", ErrInvalidFormat, spec)
			}
			p.width = width
		}
	}
	return p, nil
}

func (f *Format) Execute(data Data) (string, error) {
	if f.parts == nil {
		return "", fmt.Errorf("%w: format not parsed", ErrInvalidFormat)
	}

	var buff strings.Builder
	for _, p := range f.parts {
		if p.field == "" {
			buff.WriteString(p.lit)
			continue
		}
		v, ok := data[p.field]
		if !ok {
			return "", fmt.Errorf("%w: missing value for {%s}", ErrBadData, p.field)
		}
		switch kind := f.fields[p.field]; kind {
		case Int:
			n, ok := v.(int)
			if !ok {
				return "", fmt.Errorf("%w: {%s} wants %s, got %T", ErrBadData, p.field, kind, v)
			}
			switch {
			case p.zero:
				fmt.Fprintf(&buff, "%0*d", p.width, n)
			default:
				fmt.Fprintf(&buff, "%*d", p.width, n)
			}
		default:
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("%w: {%s} wants %s, got %T", ErrBadData, p.field, kind, v)
			}
			buff.WriteString(s)
		}
	}
	return buff.String(), nil
}

func (f *Format) String() string {
	if f == nil {
		return ""
	}
	return f.raw
}

// MustParse is like Parse but panics on error. For defaults known at compile time.
func MustParse(str string, fields Fields) Format {
	var f Format
	if err := f.Parse(str, fields); err != nil {
		panic(err)
	}
	return f
}
