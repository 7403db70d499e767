package directive

import (
	"slices"
	"time"

	"golang.org/x/text/cases"
)

// Generator tokens understood after "$". Matching is exact.
const (
	FirstName  = "firstname"
	LastName   = "lastname"
	Email      = "email"
	Country    = "country"
	URL        = "url"
	Avatar     = "avatar"
	BTCAddress = "btcAddress"
	ETHAddress = "ethAddress"
)

var generators = []string{FirstName, LastName, Email, Country, URL, Avatar, BTCAddress, ETHAddress}

// IsGenerator reports whether name is a "$" token.
func IsGenerator(name string) bool {
	return slices.Contains(generators, name)
}

// Generators lists the "$" vocabulary.
func Generators() []string {
	return slices.Clone(generators)
}

// defaults holds the "-" vocabulary keyed by case-folded name.
// Constructors return fresh values so records never share containers.
var defaults = map[string]func(now time.Time) any{
	"array":   func(time.Time) any { return []any{} },
	"object":  func(time.Time) any { return map[string]any{} },
	"hashtag": func(time.Time) any { return "#" },
	"atsign":  func(time.Time) any { return "@" },
	"dollar":  func(time.Time) any { return "$" },
	"dash":    func(time.Time) any { return "-" },
	"true":    func(time.Time) any { return true },
	"false":   func(time.Time) any { return false },
	"now":     func(now time.Time) any { return time.UnixMilli(now.UnixMilli()).UTC() },
}

func lookupDefault(name string) (string, bool) {
	folded := cases.Fold().String(name)
	_, ok := defaults[folded]
	return folded, ok
}

// ResolveDefault returns the constant behind a "-" token, case-insensitively.
// now is used by the "now" token only.
func ResolveDefault(name string, now time.Time) (any, bool) {
	folded, ok := lookupDefault(name)
	if !ok {
		return nil, false
	}
	return defaults[folded](now), true
}
