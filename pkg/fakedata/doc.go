// Package fakedata generates human-like values for the "$" generator tokens:
// first and last names, email addresses, countries, URLs, avatar image URLs
// and bitcoin/ethereum-style addresses.
//
// Names, emails, countries, URLs and bitcoin addresses come from gofakeit.
// All randomness is drawn from the source passed to New, so a seeded source
// makes the output reproducible.
package fakedata
