package analyze

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/briefly-ai/briefly/internal/model"
)

const (
	defaultTopTerms     = 10
	defaultKeySentences = 3
	maxFeatures         = 1000
)

var (
	nonLetterRe  = regexp.MustCompile(`[^a-zA-Z\s]`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// English stopword list shared by term scoring and preprocessing.
var stopwords = func() map[string]struct{} {
	words := strings.Fields(`a about above after again against all am an and any are as at be because been
		before being below between both but by could did do does doing down during each few for from further
		had has have having he her here hers herself him himself his how i if in into is it its itself just
		me more most my myself no nor not now of off on once only or other our ours ourselves out over own
		s same she should so some such t than that the their theirs them themselves then there these they
		this those through to too under until up very was we were what when where which while who whom why
		will with you your yours yourself yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// Analyzer scores terms across the sentences of a document. Each
// sentence acts as one document of the corpus, which lets a single text
// produce meaningful inverse frequencies.
type Analyzer struct {
	TopTerms     int
	KeySentences int
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{TopTerms: defaultTopTerms, KeySentences: defaultKeySentences}
}

// AnalyzeDocument computes top terms, key sentences and basic statistics
// for one document.
func (a *Analyzer) AnalyzeDocument(text string) model.KeywordReport {
	sentences := splitSentences(text)
	report := model.KeywordReport{
		SentenceCount: len(sentences),
	}
	for _, s := range sentences {
		report.WordCount += len(strings.Fields(s))
	}
	if report.SentenceCount > 0 {
		report.AvgSentenceLen = float64(report.WordCount) / float64(report.SentenceCount)
	}
	if len(sentences) == 0 {
		return report
	}

	idf := inverseFrequencies(sentences)
	report.TopTerms = a.topTerms(text, idf)
	report.KeySentences = a.keySentences(sentences, idf)
	return report
}

// topTerms scores every unigram and bigram of the document by tf-idf
// and keeps the highest scoring ones.
func (a *Analyzer) topTerms(text string, idf map[string]float64) []model.ScoredTerm {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := termCounts(tokens)

	scored := make([]model.ScoredTerm, 0, len(counts))
	for term, count := range counts {
		tf := float64(count) / float64(len(tokens))
		scored = append(scored, model.ScoredTerm{Term: term, Score: tf * idf[term]})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Term < scored[j].Term
	})
	limit := a.TopTerms
	if limit <= 0 {
		limit = defaultTopTerms
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// keySentences ranks sentences by the summed tf-idf of their terms.
// Order of the returned sentences follows score, highest first.
func (a *Analyzer) keySentences(sentences []string, idf map[string]float64) []string {
	type scoredSentence struct {
		text  string
		score float64
	}
	scored := make([]scoredSentence, 0, len(sentences))
	for _, sentence := range sentences {
		tokens := tokenize(sentence)
		if len(tokens) == 0 {
			continue
		}
		var sum float64
		for term, count := range termCounts(tokens) {
			tf := float64(count) / float64(len(tokens))
			sum += tf * idf[term]
		}
		scored = append(scored, scoredSentence{text: strings.TrimSpace(sentence), score: sum})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	limit := a.KeySentences
	if limit <= 0 {
		limit = defaultKeySentences
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.text)
	}
	return out
}

// inverseFrequencies computes smoothed idf over sentences:
// idf(t) = ln((1+n)/(1+df)) + 1.
func inverseFrequencies(sentences []string) map[string]float64 {
	df := make(map[string]int)
	for _, sentence := range sentences {
		seen := make(map[string]struct{})
		for term := range termCounts(tokenize(sentence)) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	n := float64(len(sentences))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	if len(idf) > maxFeatures {
		idf = trimFeatures(idf)
	}
	return idf
}

// trimFeatures keeps the most frequent maxFeatures terms, mirroring the
// vocabulary cap of the scorer.
func trimFeatures(idf map[string]float64) map[string]float64 {
	type entry struct {
		term string
		idf  float64
	}
	entries := make([]entry, 0, len(idf))
	for term, v := range idf {
		entries = append(entries, entry{term: term, idf: v})
	}
	// Lower idf means higher document frequency.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].idf != entries[j].idf {
			return entries[i].idf < entries[j].idf
		}
		return entries[i].term < entries[j].term
	})
	out := make(map[string]float64, maxFeatures)
	for _, e := range entries[:maxFeatures] {
		out[e.term] = e.idf
	}
	return out
}

// tokenize lowercases, strips non-letters and stopwords, then emits
// unigrams plus adjacent bigrams.
func tokenize(text string) []string {
	cleaned := nonLetterRe.ReplaceAllString(strings.ToLower(text), "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	fields := strings.Fields(cleaned)
	words := fields[:0]
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		words = append(words, f)
	}
	tokens := make([]string, 0, len(words)*2)
	for i, w := range words {
		tokens = append(tokens, w)
		if i+1 < len(words) {
			tokens = append(tokens, w+" "+words[i+1])
		}
	}
	return tokens
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

func splitSentences(text string) []string {
	matches := sentenceRe.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if strings.TrimSpace(m) != "" {
			out = append(out, m)
		}
	}
	return out
}
