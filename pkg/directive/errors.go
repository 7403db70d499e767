package directive

import "errors"

var (
	// ErrTemplateSyntax is returned for malformed range directives and hash-wraps with no payload.
	ErrTemplateSyntax = errors.New("template syntax error")

	// ErrUnknownDirective is returned for "$" and "-" tokens outside the fixed vocabulary.
	ErrUnknownDirective = errors.New("unknown directive")
)
