package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = "Natural language processing is a field of artificial intelligence. " +
	"Machine learning algorithms can process and analyze text data. " +
	"Language models help in finding important terms in documents. " +
	"The weather today is pleasant and mild."

func TestAnalyzeDocument(t *testing.T) {
	report := NewAnalyzer().AnalyzeDocument(sampleDoc)

	require.Equal(t, 4, report.SentenceCount)
	require.Greater(t, report.WordCount, 20)
	require.InDelta(t, float64(report.WordCount)/4, report.AvgSentenceLen, 0.01)

	require.Len(t, report.TopTerms, 10)
	for i := 1; i < len(report.TopTerms); i++ {
		require.GreaterOrEqual(t, report.TopTerms[i-1].Score, report.TopTerms[i].Score, "terms must be sorted by score")
	}
	terms := make([]string, 0, len(report.TopTerms))
	for _, st := range report.TopTerms {
		require.Positive(t, st.Score)
		terms = append(terms, st.Term)
	}
	joined := strings.Join(terms, "|")
	require.Contains(t, joined, "language", "repeated content word should rank")
	require.NotContains(t, terms, "the")
	require.NotContains(t, terms, "is")

	require.Len(t, report.KeySentences, 3)
	for _, sentence := range report.KeySentences {
		require.Contains(t, sampleDoc, sentence, "key sentences must come from the document")
	}
}

func TestAnalyzeDocument_Empty(t *testing.T) {
	report := NewAnalyzer().AnalyzeDocument("")
	require.Zero(t, report.WordCount)
	require.Zero(t, report.SentenceCount)
	require.Zero(t, report.AvgSentenceLen)
	require.Empty(t, report.TopTerms)
	require.Empty(t, report.KeySentences)
}

func TestAnalyzeDocument_SingleSentence(t *testing.T) {
	report := NewAnalyzer().AnalyzeDocument("Only one sentence lives here.")
	require.Equal(t, 1, report.SentenceCount)
	require.Len(t, report.KeySentences, 1)
	require.NotEmpty(t, report.TopTerms)
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("The quick brown fox, version 2.0!")
	require.Contains(t, tokens, "quick")
	require.Contains(t, tokens, "quick brown")
	require.NotContains(t, tokens, "the")
	for _, tok := range tokens {
		require.NotRegexp(t, `[0-9.,!]`, tok)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First one. Second one! Third one? Trailing fragment")
	require.Len(t, sentences, 4)
}
