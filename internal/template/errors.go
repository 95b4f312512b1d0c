package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the catalog has no template by that name.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates a template referenced a substitution
	// key that was not supplied.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates template syntax survived rendering.
	ErrUnexpandedToken = errors.New("template: unexpanded token")
)
