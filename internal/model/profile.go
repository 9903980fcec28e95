package model

// GenerationParams mirrors the generation arguments accepted by
// seq2seq summarization backends.
type GenerationParams struct {
	MaxLength         int     `json:"max_length"`
	MinLength         int     `json:"min_length"`
	DoSample          bool    `json:"do_sample"`
	Temperature       float64 `json:"temperature"`
	NumBeams          int     `json:"num_beams"`
	LengthPenalty     float64 `json:"length_penalty"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	TopP              float64 `json:"top_p"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
}

// ModelProfile describes one summarization backend configuration. The
// profile table is assembled at startup and never mutated.
type ModelProfile struct {
	Name              string
	ModelID           string
	MaxLength         int
	MinLength         int
	Temperature       float64
	NumBeams          int
	LengthPenalty     float64
	RepetitionPenalty float64
	CompressionFactor float64
	SupportedTypes    map[DocumentType]struct{}
}

func (p ModelProfile) Supports(t DocumentType) bool {
	if len(p.SupportedTypes) == 0 {
		return true
	}
	_, ok := p.SupportedTypes[t]
	return ok
}

// Params materializes the profile defaults into generation parameters.
func (p ModelProfile) Params() GenerationParams {
	return GenerationParams{
		MaxLength:         p.MaxLength,
		MinLength:         p.MinLength,
		DoSample:          p.Temperature > 0,
		Temperature:       p.Temperature,
		NumBeams:          p.NumBeams,
		LengthPenalty:     p.LengthPenalty,
		RepetitionPenalty: p.RepetitionPenalty,
		TopP:              0.95,
		NoRepeatNgramSize: 3,
	}
}
