package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/briefly-ai/briefly/internal/model"
)

func reconstruct(t *testing.T, text string, chunks []model.Chunk) {
	t.Helper()
	require.NotEmpty(t, chunks)
	var sb strings.Builder
	for i, chunk := range chunks {
		require.Equal(t, i, chunk.SequenceIndex)
		require.Equal(t, text[chunk.StartOffset:chunk.EndOffset], chunk.Text)
		if i+1 < len(chunks) {
			next := chunks[i+1]
			require.Greater(t, next.StartOffset, chunk.StartOffset, "window must advance")
			require.LessOrEqual(t, next.StartOffset, chunk.EndOffset, "no gap between chunks")
			sb.WriteString(text[chunk.StartOffset:next.StartOffset])
		} else {
			sb.WriteString(chunk.Text)
		}
	}
	require.Equal(t, text, sb.String(), "chunks minus overlaps must reconstruct the text")
	require.Equal(t, len(text), chunks[len(chunks)-1].EndOffset, "last chunk must reach end of text")
}

func TestChunkDocument_SmallInputSingleChunk(t *testing.T) {
	text := "A fifty character input that fits in one chunk."
	chunks := ChunkDocument(text, model.Document{Type: model.DocTypeGeneral}, ChunkerConfig{})
	require.Len(t, chunks, 1)
	require.Equal(t, text, chunks[0].Text)
	require.Equal(t, 0, chunks[0].StartOffset)
	require.Equal(t, len(text), chunks[0].EndOffset)
}

func TestChunkDocument_SlidingWindowReconstruction(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		sb.WriteString("Sentence number with a bit of padding to make it realistic. ")
	}
	text := strings.TrimSpace(sb.String())
	cfg := ChunkerConfig{ChunkSize: 500, Overlap: 80}
	chunks := ChunkDocument(text, model.Document{Type: model.DocTypeGeneral}, cfg)
	require.Greater(t, len(chunks), 1)
	reconstruct(t, text, chunks)

	for i, chunk := range chunks[:len(chunks)-1] {
		require.LessOrEqual(t, len(chunk.Text), cfg.ChunkSize)
		// Right edge lands just past a sentence terminator.
		require.Regexp(t, `[.!?]\s*$`, chunk.Text, "chunk %d should end at a sentence boundary", i)
	}
}

func TestChunkDocument_NoPunctuationStillAdvances(t *testing.T) {
	text := strings.Repeat("loremipsum", 200) // 2000 chars, no terminators
	cfg := ChunkerConfig{ChunkSize: 300, Overlap: 50}
	chunks := ChunkDocument(text, model.Document{Type: model.DocTypeGeneral}, cfg)
	require.Greater(t, len(chunks), 1)
	reconstruct(t, text, chunks)
	for _, chunk := range chunks[:len(chunks)-1] {
		require.Equal(t, cfg.ChunkSize, len(chunk.Text), "full-width chunks expected without punctuation")
	}
}

func TestChunkDocument_SectionStrategyForResearch(t *testing.T) {
	section := func(title string, sentences int) string {
		return title + "\n" + strings.Repeat("The measurement was repeated under identical conditions. ", sentences) + "\n\n"
	}
	text := section("Abstract", 5) +
		section("Methodology", 20) +
		section("Results", 20) +
		section("Discussion", 20) +
		section("References", 3)
	text = strings.TrimSpace(text)

	chunks := ChunkDocument(text, model.Document{Type: model.DocTypeResearch}, ChunkerConfig{ChunkSize: 1500})
	require.Greater(t, len(chunks), 1)
	reconstruct(t, text, chunks)

	// Section chunks are contiguous and start at section boundaries.
	for i, chunk := range chunks {
		if i+1 < len(chunks) {
			require.Equal(t, chunk.EndOffset, chunks[i+1].StartOffset)
		}
		if i > 0 {
			require.True(t, isHeadingLine(firstLine(chunk.Text)), "chunk %d should start at a heading, got %q", i, firstLine(chunk.Text))
		}
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func TestChunkerConfig_OverlapClamped(t *testing.T) {
	cfg := ChunkerConfig{ChunkSize: 100, Overlap: 100}.withDefaults()
	require.Less(t, cfg.Overlap, cfg.ChunkSize)
}

func TestIsHeadingLine(t *testing.T) {
	require.True(t, isHeadingLine("Methodology"))
	require.True(t, isHeadingLine("Experimental Setup"))
	require.True(t, isHeadingLine("# Results"))
	require.False(t, isHeadingLine("this line starts lowercase"))
	require.False(t, isHeadingLine("A full sentence that ends with a period."))
	require.False(t, isHeadingLine(strings.Repeat("Word ", 30)))
}
