package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_UnifiesLineBreaks(t *testing.T) {
	result := NormalizeText("first\r\nsecond\rthird")
	assert.Equal(t, "first\nsecond\nthird", result)
}

func TestNormalizeText_CollapsesNewlineRuns(t *testing.T) {
	result := NormalizeText("first\n\n\n\n\nsecond")
	assert.Equal(t, "first\n\nsecond", result)
}

func TestNormalizeText_CollapsesHorizontalWhitespace(t *testing.T) {
	result := NormalizeText("Senior  \t  Engineer")
	assert.Equal(t, "Senior Engineer", result)
}

func TestNormalizeText_RemovesFormFeedAndNonBreakingSpace(t *testing.T) {
	result := NormalizeText("alpha\fbeta\u00a0gamma")
	assert.Equal(t, "alphabeta gamma", result)
}

func TestNormalizeText_ControlCharsNextToSpacesCollapseInOnePass(t *testing.T) {
	// A removed form feed or converted NBSP adjacent to a space must not
	// leave a double space behind.
	assert.Equal(t, "a b", NormalizeText("a \f b"))
	assert.Equal(t, "a b", NormalizeText("a\u00a0 b"))
	assert.Equal(t, "a b", NormalizeText("a \u00a0\f b"))
}

func TestNormalizeText_ReplacesTypographicPunctuation(t *testing.T) {
	result := NormalizeText("“Hello” ‘world’ – fine — done…")
	assert.Equal(t, `"Hello" 'world' - fine -- done...`, result)
}

func TestNormalizeText_NormalizesBulletGlyphs(t *testing.T) {
	result := NormalizeText("· one\n▪ two\n● three\n‣ four")
	assert.Equal(t, "• one\n• two\n• three\n• four", result)
}

func TestNormalizeText_CollapsesPunctuationRuns(t *testing.T) {
	assert.Equal(t, "Skills...Go", NormalizeText("Skills......Go"))
	assert.Equal(t, "a--b", NormalizeText("a-----b"))
	assert.Equal(t, "a__b", NormalizeText("a______b"))
}

func TestNormalizeText_DropsPageNumberLines(t *testing.T) {
	input := "John Smith\nPage 1 of 3\nSoftware Engineer\n2\nExperience"
	result := NormalizeText(input)
	assert.Equal(t, "John Smith\nSoftware Engineer\nExperience", result)
}

func TestNormalizeText_TruncatesAtFooterBoilerplate(t *testing.T) {
	input := "Jane Roe\nSenior Developer\nCONFIDENTIALITY NOTICE: this message is private"
	result := NormalizeText(input)
	assert.Equal(t, "Jane Roe\nSenior Developer", result)

	input = "resume body\nThis email and any files transmitted with it are confidential and intended solely"
	assert.Equal(t, "resume body", NormalizeText(input))
}

func TestNormalizeText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", NormalizeText(""))
	assert.Equal(t, "", NormalizeText("   \n\n\t  "))
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"first\r\nsecond\rthird",
		"a  \t b\n\n\n\nc\fd\u00a0e",
		"a \f b",
		"a\u00a0 b",
		"\f \u00a0\f",
		"“quoted” – dash … ellipsis",
		"John Smith\nPage 1 of 3\n2\nbody......tail-----end",
		"keep\nCONFIDENTIALITY NOTICE: drop the rest",
	}

	for _, input := range inputs {
		once := NormalizeText(input)
		twice := NormalizeText(once)
		assert.Equal(t, once, twice, "normalization must be idempotent for %q", input)
	}
}
