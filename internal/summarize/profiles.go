package summarize

import "github.com/briefly-ai/briefly/internal/model"

// Profile names. Selection logic refers to profiles by name so tests
// can assert routing without caring about the underlying model ids.
const (
	ProfileLongForm     = "longform"
	ProfileHighFidelity = "high_fidelity"
	ProfileNews         = "news"
	ProfileGeneral      = "general"
	ProfileLiteral      = "literal"
)

var profileTable = map[string]model.ModelProfile{
	// Long-context encoder for papers and book-length material.
	ProfileLongForm: {
		Name:              ProfileLongForm,
		ModelID:           "pszemraj/led-large-book-summary",
		MaxLength:         512,
		MinLength:         120,
		Temperature:       0.7,
		NumBeams:          4,
		LengthPenalty:     2.0,
		RepetitionPenalty: 1.5,
		CompressionFactor: 0.30,
		SupportedTypes: map[model.DocumentType]struct{}{
			model.DocTypeResearch:  {},
			model.DocTypeTechnical: {},
			model.DocTypeArticle:   {},
		},
	},
	// Beam-heavy profile for dense technical prose.
	ProfileHighFidelity: {
		Name:              ProfileHighFidelity,
		ModelID:           "google/pegasus-large",
		MaxLength:         256,
		MinLength:         60,
		Temperature:       0.6,
		NumBeams:          6,
		LengthPenalty:     1.8,
		RepetitionPenalty: 1.4,
		CompressionFactor: 0.25,
	},
	ProfileNews: {
		Name:              ProfileNews,
		ModelID:           "google/pegasus-cnn_dailymail",
		MaxLength:         144,
		MinLength:         56,
		Temperature:       0.7,
		NumBeams:          4,
		LengthPenalty:     2.0,
		RepetitionPenalty: 1.3,
		CompressionFactor: 0.20,
		SupportedTypes: map[model.DocumentType]struct{}{
			model.DocTypeArticle: {},
			model.DocTypeNews:    {},
		},
	},
	ProfileGeneral: {
		Name:              ProfileGeneral,
		ModelID:           "facebook/bart-large-cnn",
		MaxLength:         150,
		MinLength:         40,
		Temperature:       0.7,
		NumBeams:          4,
		LengthPenalty:     2.0,
		RepetitionPenalty: 1.5,
		CompressionFactor: 0.30,
	},
	// Cover letters want short, literal output: sampling off, few beams.
	ProfileLiteral: {
		Name:              ProfileLiteral,
		ModelID:           "sshleifer/distilbart-cnn-12-6",
		MaxLength:         100,
		MinLength:         20,
		Temperature:       0,
		NumBeams:          2,
		LengthPenalty:     1.0,
		RepetitionPenalty: 1.2,
		CompressionFactor: 0.45,
		SupportedTypes: map[model.DocumentType]struct{}{
			model.DocTypeCoverLetter: {},
		},
	},
}

// Profiles returns the static profile table. Callers must not mutate
// the returned profiles.
func Profiles() map[string]model.ModelProfile {
	return profileTable
}

func ProfileByName(name string) (model.ModelProfile, bool) {
	p, ok := profileTable[name]
	return p, ok
}
