package services

import "errors"

// Classification for single-document failures. Callers branch on these with
// errors.Is instead of matching message strings.
var (
	// ErrInvalidFormat means the bytes do not look like a PDF at all.
	ErrInvalidFormat = errors.New("invalid document format")

	// ErrEncrypted means the document is password-protected.
	ErrEncrypted = errors.New("document is password-protected")

	// ErrCorrupt means the document claims to be a PDF but cannot be parsed.
	ErrCorrupt = errors.New("document is corrupt")

	// ErrNoText means parsing succeeded but yielded no readable text.
	ErrNoText = errors.New("no readable text in document")

	// ErrExternalService means the model call itself failed (network, auth,
	// quota). A malformed-but-returned response is NOT this error; the
	// coercer absorbs those.
	ErrExternalService = errors.New("external service call failed")
)
