package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkResumeText_ShortTextSingleChunk(t *testing.T) {
	chunks := ChunkResumeText("short resume text", 1000, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short resume text", chunks[0])
}

func TestChunkResumeText_EmptyText(t *testing.T) {
	assert.Empty(t, ChunkResumeText("", 1000, 100))
	assert.Empty(t, ChunkResumeText("\n\n\n\n", 1000, 100))
}

func TestChunkResumeText_SplitsOnParagraphs(t *testing.T) {
	paragraphs := make([]string, 10)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("a", 100)
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := ChunkResumeText(text, 250, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 250)
	}
}

func TestChunkResumeText_OverlapCarriesTail(t *testing.T) {
	first := strings.Repeat("a", 100)
	second := strings.Repeat("b", 100)

	chunks := ChunkResumeText(first+"\n\n"+second, 110, 10)

	require.Len(t, chunks, 2)
	assert.Equal(t, first, chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 10)))
	assert.Contains(t, chunks[1], second)
}

func TestChunkResumeText_OversizedParagraphFallsBackToSentences(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This sentence fills out one very long unbroken paragraph of text. ")
	}

	chunks := ChunkResumeText(sb.String(), 200, 0)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkResumeText_DefensiveDefaults(t *testing.T) {
	// Non-positive max size and oversized overlap still produce chunks.
	chunks := ChunkResumeText("some text", 0, 5000)
	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0])
}
