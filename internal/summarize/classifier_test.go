package summarize

import (
	"strings"
	"testing"

	"github.com/briefly-ai/briefly/internal/model"
)

func researchPaperText() string {
	var sb strings.Builder
	sb.WriteString("Abstract\nWe study the effect of caching on latency [1].\n\n")
	sb.WriteString("Methodology\nWe measured 40 deployments (Jones et al., 2021).\n\n")
	sb.WriteString("Results\nLatency dropped by 38% across the fleet.\n\n")
	filler := "The experiment ran for several weeks under production load with rotating operators. "
	for sb.Len() < 11800 {
		sb.WriteString(filler)
	}
	sb.WriteString("\n\nReferences\n[1] J. Smith, Caching at Scale, 2020.\n")
	return sb.String()
}

func TestClassify_ResearchPaper(t *testing.T) {
	doc := Classify(researchPaperText())
	if doc.Type != model.DocTypeResearch {
		t.Fatalf("type = %s, want research", doc.Type)
	}
	if doc.LengthBucket != model.LengthLong {
		t.Fatalf("length bucket = %s, want long", doc.LengthBucket)
	}
	if !doc.HasCitations {
		t.Error("expected citations to be detected")
	}
}

func TestClassify_Types(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.DocumentType
	}{
		{
			name: "business vocabulary wins first",
			text: "The quarterly revenue exceeded the forecast. Shareholder profit grew and the board of directors approved the merger. EBITDA improved with stronger cash flow.",
			want: model.DocTypeBusiness,
		},
		{
			name: "code implies technical",
			text: "The handler is registered at startup.\n```go\nfunc register() {}\n```\nRestart the service afterwards.",
			want: model.DocTypeTechnical,
		},
		{
			name: "equations imply technical",
			text: "The loss is defined as $L = \\sum_i (y_i - f(x_i))^2$ and minimized iteratively.",
			want: model.DocTypeTechnical,
		},
		{
			name: "citations without structure imply article",
			text: "As argued before (Keller et al., 2018), urban density shapes commute times in measurable ways.",
			want: model.DocTypeArticle,
		},
		{
			name: "plain prose is general",
			text: "The two of them walked along the shore while the tide pulled back slowly.",
			want: model.DocTypeGeneral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got.Type != tt.want {
				t.Errorf("Classify().Type = %s, want %s", got.Type, tt.want)
			}
		})
	}
}

func TestClassify_Complexity(t *testing.T) {
	high := "Abstract\nMethodology\nWe test $x^2$ models [4].\n```py\ndef f():\n  pass\n```\nResults\nImproved."
	if got := Classify(high).Complexity; got != model.ComplexityHigh {
		t.Errorf("complexity = %s, want high", got)
	}
	medium := "The study cites prior work (Adams, 2017) in passing."
	if got := Classify(medium).Complexity; got != model.ComplexityMedium {
		t.Errorf("complexity = %s, want medium", got)
	}
	low := "A quiet afternoon with nothing remarkable in it."
	if got := Classify(low).Complexity; got != model.ComplexityLow {
		t.Errorf("complexity = %s, want low", got)
	}
}

func TestClassify_LengthBuckets(t *testing.T) {
	short := strings.Repeat("a", 100)
	medium := strings.Repeat("a", mediumDocChars+1)
	long := strings.Repeat("a", longDocChars+1)
	if got := Classify(short).LengthBucket; got != model.LengthShort {
		t.Errorf("short bucket = %s", got)
	}
	if got := Classify(medium).LengthBucket; got != model.LengthMedium {
		t.Errorf("medium bucket = %s", got)
	}
	if got := Classify(long).LengthBucket; got != model.LengthLong {
		t.Errorf("long bucket = %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := researchPaperText()
	first := Classify(text)
	for i := 0; i < 5; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("classification changed between runs: %+v vs %+v", got, first)
		}
	}
}
