package sample

import (
	"fmt"
	"math"
	"strings"
)

// Type is the value type of a range directive.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeDate    Type = "date"
)

// ParseType maps a range directive type name to its Type.
func ParseType(name string) (Type, bool) {
	switch t := Type(name); t {
	case TypeString, TypeInteger, TypeNumber, TypeDate:
		return t, true
	}
	return "", false
}

// Alphabet is the output alphabet of generated strings.
// The second "b" stands where "d" would be; generated data depends on
// this exact table so it is kept as is.
const Alphabet = "abcbefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"1234567890"

// CheckBounds reports whether [min, max] is a usable range for typ.
func CheckBounds(typ Type, min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	}
	if max < min {
		return fmt.Errorf("%w: max %v is lower than min %v", ErrInvalidRange, max, min)
	}
	switch typ {
	case TypeString:
		if min < 0 || min != math.Trunc(min) || max != math.Trunc(max) {
			return fmt.Errorf("%w: string length bounds must be non-negative integers", ErrInvalidRange)
		}
	case TypeInteger:
		if min != math.Trunc(min) || max != math.Trunc(max) {
			return fmt.Errorf("%w: integer bounds must be integers", ErrInvalidRange)
		}
		if math.Abs(min) > 1<<53 || math.Abs(max) > 1<<53 {
			return fmt.Errorf("%w: integer bounds exceed 2^53", ErrInvalidRange)
		}
	case TypeNumber:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
	return nil
}

// Numeric draws a value of type typ from [min, max).
//
// A magnitude floor(r*(max-min))+min is drawn first for every type and is
// the length of generated strings. Integers come from the cryptographic
// stream, numbers from the fast one. When min == max the result is constant.
func Numeric(src *Source, typ Type, min, max float64) (any, error) {
	if err := CheckBounds(typ, min, max); err != nil {
		return nil, err
	}

	length := math.Floor(src.Float64()*(max-min)) + min

	switch typ {
	case TypeString:
		return String(src, int(length)), nil
	case TypeInteger:
		return Integer(src, int64(min), int64(max))
	default:
		return Number(src, min, max), nil
	}
}

// Integer returns a value in [min, max); max is exclusive.
// A degenerate range returns min.
func Integer(src *Source, min, max int64) (int64, error) {
	if max < min {
		return 0, fmt.Errorf("%w: max %d is lower than min %d", ErrInvalidRange, max, min)
	}
	if max == min {
		return min, nil
	}
	v, err := src.CryptoInt(max - min)
	if err != nil {
		return 0, err
	}
	return v + min, nil
}

// Number returns a value in [min, max).
func Number(src *Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// String returns n characters drawn with replacement from Alphabet.
func String(src *Source, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(Alphabet[src.IntN(len(Alphabet))])
	}
	return b.String()
}
