package services

import (
	"regexp"
	"strings"
)

// Normalization regexes. The rules run in a fixed order because later rules
// assume the earlier ones already applied (e.g. page-number removal expects
// unified line endings).
var (
	excessNewlines   = regexp.MustCompile(`\n{3,}`)
	horizontalSpace  = regexp.MustCompile(`[ \t]{2,}`)
	periodRuns       = regexp.MustCompile(`\.{4,}`)
	hyphenRuns       = regexp.MustCompile(`-{3,}`)
	underscoreRuns   = regexp.MustCompile(`_{3,}`)
	pageMarkerLine   = regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+\s*$`)
	bareNumberLine   = regexp.MustCompile(`^\s*\d+\s*$`)
	typographicPairs = strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"“", `"`, // left double quote
		"”", `"`, // right double quote
		"–", "-", // en dash
		"—", "--", // em dash
		"…", "...", // ellipsis glyph
		"·", "•", // middle dot -> bullet
		"▪", "•", // black small square -> bullet
		"●", "•", // black circle -> bullet
		"‣", "•", // triangular bullet -> bullet
	)
)

// Footer boilerplate markers. Everything from the first occurrence onward
// is dropped.
var footerMarkers = []string{
	"This email and any files transmitted with it are confidential",
	"CONFIDENTIALITY NOTICE",
}

// NormalizeText cleans raw extractor output into the canonical form the
// field extractor and the model both consume. Idempotent and total: it
// never fails, and the empty string maps to the empty string.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	// 1. Unify line breaks.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// 2. Page-break control characters and non-breaking spaces. Must run
	// before the whitespace collapse: removing a form feed or converting an
	// NBSP can itself create a space run.
	text = strings.ReplaceAll(text, "\f", "")
	text = strings.ReplaceAll(text, "\u00a0", " ")

	// 3. Collapse newline and horizontal-whitespace runs.
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = horizontalSpace.ReplaceAllString(text, " ")

	// 4. Typographic punctuation.
	text = typographicPairs.Replace(text)

	// 5. Punctuation runs left behind by layout extraction.
	text = periodRuns.ReplaceAllString(text, "...")
	text = hyphenRuns.ReplaceAllString(text, "--")
	text = underscoreRuns.ReplaceAllString(text, "__")

	// 6. Drop page-number lines.
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if pageMarkerLine.MatchString(line) || bareNumberLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	// 7. Truncate at confidentiality/email-footer boilerplate.
	for _, marker := range footerMarkers {
		if idx := strings.Index(text, marker); idx >= 0 {
			text = text[:idx]
		}
	}

	// 8. Final trim plus one more newline collapse for artifacts introduced
	// by the line removals above.
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
