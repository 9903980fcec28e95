package summarize

import (
	"strings"
	"unicode"

	"github.com/briefly-ai/briefly/internal/model"
)

const (
	defaultChunkSize = 3000
	defaultOverlap   = 200
	maxHeadingLen    = 80
	maxHeadingWords  = 8
)

type ChunkerConfig struct {
	ChunkSize int `json:"chunk_size"`
	Overlap   int `json:"overlap"`
}

func (c ChunkerConfig) withDefaults() ChunkerConfig {
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.Overlap < 0 {
		c.Overlap = 0
	}
	// Overlap must stay strictly below the chunk size or the window
	// cannot advance.
	if c.Overlap >= c.ChunkSize {
		c.Overlap = c.ChunkSize / 4
	}
	return c
}

// ChunkDocument splits text into ordered chunks. Research documents are
// split at section boundaries; everything else uses an overlapping
// sliding window that prefers to end on a sentence terminator. For any
// non-empty text the result has at least one chunk and the last chunk
// always reaches the end of the text.
func ChunkDocument(text string, doc model.Document, cfg ChunkerConfig) []model.Chunk {
	cfg = cfg.withDefaults()
	if text == "" {
		return nil
	}
	if len(text) <= cfg.ChunkSize {
		return []model.Chunk{{Text: text, StartOffset: 0, EndOffset: len(text), SequenceIndex: 0}}
	}
	if doc.Type == model.DocTypeResearch {
		return chunkBySections(text, cfg.ChunkSize)
	}
	return chunkBySlidingWindow(text, cfg.ChunkSize, cfg.Overlap)
}

// chunkBySections accumulates whole sections until the next one would
// overflow the budget. A single oversized section becomes one oversized
// chunk rather than being split mid-section.
func chunkBySections(text string, size int) []model.Chunk {
	bounds := sectionBounds(text)
	var chunks []model.Chunk
	start := bounds[0]
	end := start
	for i := 0; i < len(bounds)-1; i++ {
		sectionEnd := bounds[i+1]
		if sectionEnd-start > size && end > start {
			chunks = append(chunks, model.Chunk{
				Text:          text[start:end],
				StartOffset:   start,
				EndOffset:     end,
				SequenceIndex: len(chunks),
			})
			start = end
		}
		end = sectionEnd
	}
	chunks = append(chunks, model.Chunk{
		Text:          text[start:],
		StartOffset:   start,
		EndOffset:     len(text),
		SequenceIndex: len(chunks),
	})
	return chunks
}

// sectionBounds returns the start offsets of each section plus a final
// bound at end of text. The first section always starts at 0.
func sectionBounds(text string) []int {
	bounds := []int{0}
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if offset > 0 && isHeadingLine(line) {
			bounds = append(bounds, offset)
		}
		offset += len(line)
	}
	bounds = append(bounds, len(text))
	return bounds
}

func isHeadingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeadingLen {
		return false
	}
	runes := []rune(trimmed)
	if !unicode.IsUpper(runes[0]) && !strings.HasPrefix(trimmed, "#") {
		return false
	}
	last := runes[len(runes)-1]
	if last == '.' || last == '!' || last == '?' || last == ',' || last == ';' {
		return false
	}
	return len(strings.Fields(trimmed)) <= maxHeadingWords
}

// chunkBySlidingWindow advances a fixed window, retracting the right
// edge to the nearest preceding sentence terminator when one exists
// inside the window. When none does, the full-width chunk is emitted
// and the window advances by the full step so progress is guaranteed
// on text without punctuation.
func chunkBySlidingWindow(text string, size, overlap int) []model.Chunk {
	var chunks []model.Chunk
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, model.Chunk{
				Text:          text[start:],
				StartOffset:   start,
				EndOffset:     len(text),
				SequenceIndex: len(chunks),
			})
			break
		}
		if cut := lastSentenceEnd(text, start, end); cut > start+overlap {
			end = cut
		}
		chunks = append(chunks, model.Chunk{
			Text:          text[start:end],
			StartOffset:   start,
			EndOffset:     end,
			SequenceIndex: len(chunks),
		})
		step := end - start - overlap
		if step <= 0 {
			step = end - start
		}
		start += step
	}
	return chunks
}

// lastSentenceEnd returns the offset just past the last sentence
// terminator in text[start:end), or -1. A terminator only counts when
// followed by whitespace or end of window, so decimals like 3.14 do
// not split sentences.
func lastSentenceEnd(text string, start, end int) int {
	for i := end - 1; i > start; i-- {
		c := text[i]
		if c != '.' && c != '!' && c != '?' && c != '\n' {
			continue
		}
		if c == '\n' {
			return i + 1
		}
		if i+1 >= len(text) || isSpaceByte(text[i+1]) {
			return i + 1
		}
	}
	return -1
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t'
}
