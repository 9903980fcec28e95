package summarize

import (
	"testing"

	"github.com/briefly-ai/briefly/internal/model"
)

func TestSelectProfile(t *testing.T) {
	tests := []struct {
		name string
		doc  model.Document
		want string
	}{
		{
			name: "research routes to long form",
			doc:  model.Document{Type: model.DocTypeResearch, LengthBucket: model.LengthMedium},
			want: ProfileLongForm,
		},
		{
			name: "long documents route to long form regardless of type",
			doc:  model.Document{Type: model.DocTypeGeneral, LengthBucket: model.LengthLong},
			want: ProfileLongForm,
		},
		{
			name: "technical routes to high fidelity",
			doc:  model.Document{Type: model.DocTypeTechnical, LengthBucket: model.LengthShort},
			want: ProfileHighFidelity,
		},
		{
			name: "high complexity routes to high fidelity",
			doc:  model.Document{Type: model.DocTypeGeneral, Complexity: model.ComplexityHigh, LengthBucket: model.LengthShort},
			want: ProfileHighFidelity,
		},
		{
			name: "medium article routes to news",
			doc:  model.Document{Type: model.DocTypeArticle, LengthBucket: model.LengthMedium},
			want: ProfileNews,
		},
		{
			name: "short article falls back to general",
			doc:  model.Document{Type: model.DocTypeArticle, LengthBucket: model.LengthShort},
			want: ProfileGeneral,
		},
		{
			name: "plain short text routes to general",
			doc:  model.Document{Type: model.DocTypeGeneral, LengthBucket: model.LengthShort},
			want: ProfileGeneral,
		},
		{
			name: "pre-tagged cover letter always wins",
			doc:  model.Document{Type: model.DocTypeCoverLetter, LengthBucket: model.LengthLong},
			want: ProfileLiteral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectProfile(tt.doc); got.Name != tt.want {
				t.Errorf("SelectProfile() = %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestSelectProfile_CoverLetterOverride(t *testing.T) {
	letter := "Dear Hiring Manager,\n\nI am applying for the position of staff engineer. " +
		"My resume is attached and I would welcome the chance to talk.\n\nSincerely,\nJo Doe"
	doc := Classify(letter)
	doc.CleanedText = letter
	if got := SelectProfile(doc); got.Name != ProfileLiteral {
		t.Errorf("cover letter override = %s, want %s", got.Name, ProfileLiteral)
	}
}

func TestSelectProfile_PureFunctionOfDocument(t *testing.T) {
	a := model.Document{Type: model.DocTypeTechnical, LengthBucket: model.LengthMedium, Complexity: model.ComplexityMedium, CleanedText: "one body"}
	b := model.Document{Type: model.DocTypeTechnical, LengthBucket: model.LengthMedium, Complexity: model.ComplexityMedium, CleanedText: "a different body entirely"}
	if SelectProfile(a).Name != SelectProfile(b).Name {
		t.Error("selection must depend only on type, length and complexity")
	}
}

func TestSelectProfile_Total(t *testing.T) {
	types := []model.DocumentType{
		model.DocTypeResearch, model.DocTypeBusiness, model.DocTypeTechnical,
		model.DocTypeArticle, model.DocTypeGeneral, model.DocTypeCoverLetter, model.DocTypeNews,
	}
	buckets := []model.LengthBucket{model.LengthShort, model.LengthMedium, model.LengthLong}
	complexities := []model.Complexity{model.ComplexityLow, model.ComplexityMedium, model.ComplexityHigh}
	for _, typ := range types {
		for _, bucket := range buckets {
			for _, cx := range complexities {
				doc := model.Document{Type: typ, LengthBucket: bucket, Complexity: cx}
				if got := SelectProfile(doc); got.Name == "" {
					t.Fatalf("no profile for %s/%s/%s", typ, bucket, cx)
				}
			}
		}
	}
}
