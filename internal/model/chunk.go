package model

// Chunk is a bounded, possibly overlapping slice of normalized text
// that is summarized independently.
type Chunk struct {
	Text          string `json:"text"`
	StartOffset   int    `json:"start_offset"`
	EndOffset     int    `json:"end_offset"`
	SequenceIndex int    `json:"sequence_index"`
}

// SummarizationJob tracks one request through the recursive driver.
// PartialSummaries is index-aligned with Chunks.
type SummarizationJob struct {
	Source           *Document
	Profile          ModelProfile
	Chunks           []Chunk
	PartialSummaries []string
	Depth            int
	FinalSummary     string
}
