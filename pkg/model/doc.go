// Package model compiles model definition files into a Model: a mapping from
// field name to template.
//
// The flat format has one "field=template" pair per line:
//
//	name=$firstname
//	age=#integer{18,30}
//	password=!#string{8,16}
//	owner=@ids
//	tags=-array
//
// YAML files (.yaml, .yml) hold the same mapping; templates starting with a
// YAML indicator character must be quoted:
//
//	name: $firstname
//	age: "#integer{18,30}"
//	owner: "@ids"
//
// Compile fails with ErrModelNotFound when the file cannot be read and with
// ErrInvalidLine for a non-blank line without "=". Template syntax is checked
// later, when the model is evaluated.
package model
