package directive

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/seedkit/pkg/sample"
)

// Kind selects how a template produces its value.
type Kind int

const (
	Literal   Kind = iota // no sentinel, returned unchanged
	Generator             // "$" human-data generator token
	Hash                  // "!" nested template, salted one-way hash
	Range                 // "#" type{min,max} or type{value}
	Pool                  // "@" variable pool reference
	Default               // "-" constant token
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Generator:
		return "generator"
	case Hash:
		return "hash"
	case Range:
		return "range"
	case Pool:
		return "pool"
	case Default:
		return "default"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinel prefixes.
const (
	PrefixGenerator = '$'
	PrefixHash      = '!'
	PrefixRange     = '#'
	PrefixPool      = '@'
	PrefixDefault   = '-'
)

// Directive is a template parsed once into its kind and payload.
// Only the fields relevant to Kind are set.
type Directive struct {
	Kind     Kind
	Template string // the raw template this directive was parsed from

	Name  string     // Generator token, Pool name, or folded Default token
	Inner *Directive // Hash payload
	Range *Bounds    // Range payload
}

// Bounds is a range directive with its bounds validated for Type.
type Bounds struct {
	Type     sample.Type
	Min, Max string // raw text, equal for the singleton form
	Ranged   bool

	Lo, Hi   float64       // string, integer and number bounds
	From, To time.Duration // date bounds
}

// Parse turns a template into a Directive.
// Hash-wraps are parsed recursively; every other kind is a leaf.
func Parse(template string) (*Directive, error) {
	d := &Directive{Template: template}
	if template == "" {
		d.Kind = Literal
		return d, nil
	}

	payload := template[1:]
	switch template[0] {
	case PrefixGenerator:
		if !IsGenerator(payload) {
			return nil, fmt.Errorf("%w: generator %q", ErrUnknownDirective, template)
		}
		d.Kind, d.Name = Generator, payload

	case PrefixHash:
		if payload == "" {
			return nil, fmt.Errorf("%w: %q has nothing to hash", ErrTemplateSyntax, template)
		}
		inner, err := Parse(payload)
		if err != nil {
			return nil, err
		}
		d.Kind, d.Inner = Hash, inner

	case PrefixRange:
		b, err := parseRange(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrTemplateSyntax, template, err)
		}
		d.Kind, d.Range = Range, b

	case PrefixPool:
		if payload == "" {
			return nil, fmt.Errorf("%w: %q has no pool name", ErrTemplateSyntax, template)
		}
		d.Kind, d.Name = Pool, payload

	case PrefixDefault:
		name, ok := lookupDefault(payload)
		if !ok {
			return nil, fmt.Errorf("%w: default %q", ErrUnknownDirective, template)
		}
		d.Kind, d.Name = Default, name

	default:
		d.Kind = Literal
	}

	return d, nil
}

// parseRange parses "type{bounds}" with the type prefix already stripped.
func parseRange(payload string) (*Bounds, error) {
	typeName, body, found := strings.Cut(payload, "{")
	if !found {
		return nil, fmt.Errorf("missing '{'")
	}

	typ, ok := sample.ParseType(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown range type %q", typeName)
	}

	min, max, ranged, err := ParseBounds(body)
	if err != nil {
		return nil, err
	}

	b := &Bounds{Type: typ, Min: min, Max: max, Ranged: ranged}

	if typ == sample.TypeDate {
		if b.From, err = sample.ParseOffset(min); err != nil {
			return nil, err
		}
		if b.To, err = sample.ParseOffset(max); err != nil {
			return nil, err
		}
		return b, nil
	}

	if b.Lo, err = parseNumber(min); err != nil {
		return nil, err
	}
	if b.Hi, err = parseNumber(max); err != nil {
		return nil, err
	}
	if err := sample.CheckBounds(typ, b.Lo, b.Hi); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseBounds splits the body of a range directive, the text after "{"
// including the closing "}". A comma makes it ranged and splits on the
// first comma; otherwise the single value is both min and max.
// Values are returned raw: converting them is up to the range type.
func ParseBounds(body string) (min, max string, ranged bool, err error) {
	inner, ok := strings.CutSuffix(body, "}")
	if !ok {
		return "", "", false, fmt.Errorf("missing closing '}'")
	}

	if lo, hi, isRanged := strings.Cut(inner, ","); isRanged {
		return strings.TrimSpace(lo), strings.TrimSpace(hi), true, nil
	}

	v := strings.TrimSpace(inner)
	return v, v, false, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty bound")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bound %q is not a number", s)
	}
	return v, nil
}
