package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RejectsTooSmallFile(t *testing.T) {
	parser := NewDocumentParserService(1024, 20)

	err := parser.Validate([]byte("%PDF-1.4 tiny"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestValidate_RejectsMissingSignature(t *testing.T) {
	parser := NewDocumentParserService(16, 20)

	err := parser.Validate(bytes.Repeat([]byte("A"), 2048))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestValidate_RejectsGarbageWithSignature(t *testing.T) {
	parser := NewDocumentParserService(16, 20)

	data := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte{0x00, 0xFF, 0x13}, 1024)...)
	err := parser.Validate(data)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestExtractDocument_PropagatesValidationFailure(t *testing.T) {
	parser := NewDocumentParserService(1024, 20)

	doc, err := parser.ExtractDocument([]byte("not a pdf"), "resume.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.Nil(t, doc)
	// The filename is carried in the error for log context.
	assert.Contains(t, err.Error(), "resume.pdf")
}
