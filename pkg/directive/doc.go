// Package directive parses field templates into typed generation directives.
//
// The first character of a template selects its kind:
//
//	$name          human-data generator token (firstname, email, url, ...)
//	!template      evaluate template, then hash it with a fresh salt
//	#type{min,max} random value of type string, integer, number or date
//	#type{value}   same, with min == max
//	@pool          random line of the pool file <pool>.dat
//	-token         constant (array, object, hashtag, atsign, dollar, dash, true, false, now)
//
// Anything else is a literal. Parse validates the whole template up front,
// including range bounds, so a malformed directive is reported as
// ErrTemplateSyntax or ErrUnknownDirective instead of falling back to a
// literal. Evaluation lives in package engine.
package directive
