package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ExtractedDocument is the result of parsing one uploaded file. CleanText
// is always non-empty: the pipeline fails before producing this value when
// the document has no extractable text.
type ExtractedDocument struct {
	CleanText string
	RawText   string
	PageCount int
	WordCount int
	CharCount int
}

// DocumentParserService turns uploaded PDF bytes into normalized text plus
// counts. Failures are classified with the sentinel errors in errors.go
// and are fatal for that document; retry policy belongs to the caller.
type DocumentParserService interface {
	Validate(data []byte) error
	ExtractDocument(data []byte, filename string) (*ExtractedDocument, error)
}

type documentParserService struct {
	minFileSize int64
	maxPages    int
}

func NewDocumentParserService(minFileSize int64, maxPages int) DocumentParserService {
	return &documentParserService{
		minFileSize: minFileSize,
		maxPages:    maxPages,
	}
}

var pdfMagic = []byte("%PDF-")

// Validate fails closed: wrong magic header, implausibly small files, and
// files whose first page cannot even be opened are all rejected before any
// real extraction work happens.
func (p *documentParserService) Validate(data []byte) error {
	if int64(len(data)) < p.minFileSize {
		return fmt.Errorf("%w: file is %d bytes, below minimum %d", ErrInvalidFormat, len(data), p.minFileSize)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("%w: missing PDF signature", ErrInvalidFormat)
	}
	_, _, err := openReader(data)
	return err
}

func (p *documentParserService) ExtractDocument(data []byte, filename string) (*ExtractedDocument, error) {
	if err := p.Validate(data); err != nil {
		return nil, fmt.Errorf("validate %s: %w", filename, err)
	}

	rawText, pageCount, err := p.extractRawText(data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	cleanText := NormalizeText(rawText)
	if cleanText == "" {
		return nil, fmt.Errorf("extract %s: %w", filename, ErrNoText)
	}

	return &ExtractedDocument{
		CleanText: cleanText,
		RawText:   rawText,
		PageCount: pageCount,
		WordCount: len(strings.Fields(cleanText)),
		CharCount: utf8.RuneCountInString(cleanText),
	}, nil
}

func (p *documentParserService) extractRawText(data []byte) (text string, pageCount int, err error) {
	// The pdf package panics on some malformed inputs instead of returning
	// an error; treat a panic as a corrupt document.
	defer func() {
		if r := recover(); r != nil {
			text, pageCount = "", 0
			err = fmt.Errorf("%w: %v", ErrCorrupt, r)
		}
	}()

	reader, pageCount, err := openReader(data)
	if err != nil {
		return "", 0, err
	}

	pages := pageCount
	if p.maxPages > 0 && pages > p.maxPages {
		pages = p.maxPages
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= pages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; other pages may still have text.
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", 0, ErrNoText
	}

	return text, pageCount, nil
}

func openReader(data []byte) (reader *pdf.Reader, pageCount int, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader, pageCount = nil, 0
			err = fmt.Errorf("%w: %v", ErrCorrupt, r)
		}
	}()

	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) || strings.Contains(err.Error(), "encrypt") {
			return nil, 0, fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return reader, reader.NumPage(), nil
}
