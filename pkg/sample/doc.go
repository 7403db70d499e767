// Package sample draws the random values behind range directives.
//
// Every sampler takes an explicit *Source instead of reaching for a global
// generator, so a seeded Source makes a whole generation run reproducible:
//
//	src := sample.NewSeededSource(42)
//	v, err := sample.Numeric(src, sample.TypeInteger, 18, 30) // int64 in [18, 30)
//
// Strings have a length drawn from [min, max) over Alphabet. Integers come
// from the cryptographic stream of the Source and are max-exclusive, like
// numbers. Dates are resolved from relative-time tokens ("-1d", "30m") with
// ParseOffset and drawn by Date with millisecond precision.
package sample
