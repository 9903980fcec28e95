package summarize

import (
	"regexp"

	"github.com/briefly-ai/briefly/internal/model"
)

var (
	salutationRe  = regexp.MustCompile(`(?im)^\s*dear\s+[a-z]`)
	closingRe     = regexp.MustCompile(`(?im)^\s*(sincerely|best regards|kind regards|regards|yours (truly|faithfully)|respectfully),?\s*$`)
	applicationRe = regexp.MustCompile(`(?i)\b(applying for|application for|position of|the (advertised|open) (position|role)|my (resume|cv)|consider me for)\b`)
)

// isCoverLetter requires all three markers so a business letter that
// merely opens with "Dear" is not misrouted.
func isCoverLetter(text string) bool {
	return salutationRe.MatchString(text) &&
		closingRe.MatchString(text) &&
		applicationRe.MatchString(text)
}

// SelectProfile maps a classified document to exactly one profile. It
// is a pure function of {type, length bucket, complexity} plus the
// cover-letter override, and never fails: every document routes
// somewhere, with the general profile as the floor.
func SelectProfile(doc model.Document) model.ModelProfile {
	if doc.Type == model.DocTypeCoverLetter || isCoverLetter(doc.CleanedText) {
		return profileTable[ProfileLiteral]
	}
	switch {
	case doc.Type == model.DocTypeResearch || doc.LengthBucket == model.LengthLong:
		return profileTable[ProfileLongForm]
	case doc.Type == model.DocTypeTechnical || doc.Complexity == model.ComplexityHigh:
		return profileTable[ProfileHighFidelity]
	case (doc.Type == model.DocTypeArticle || doc.Type == model.DocTypeNews) && doc.LengthBucket == model.LengthMedium:
		return profileTable[ProfileNews]
	default:
		return profileTable[ProfileGeneral]
	}
}
