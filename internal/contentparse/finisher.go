package contentparse

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"civic-quiz/internal/domain"
)

var impactClosers = []string{
	"This shapes how decisions that affect your community are made.",
	"Knowing this helps citizens see how government affects their daily lives.",
	"This matters because it determines who holds power over policies that affect you.",
	"Understanding this helps voters hold their representatives accountable.",
	"This rule influences the laws and services your community depends on.",
}

// FinishExplanation appends a closing sentence about real-world impact when
// the explanation has none. The sentence is picked by hashing the question's
// id and text, so the same question always gets the same ending.
func FinishExplanation(q domain.ExtractedQuestion) domain.ExtractedQuestion {
	explanation := strings.TrimSpace(q.Explanation)
	if explanation == "" || HasImpactLanguage(explanation) {
		return q
	}
	idx := xxhash.Sum64String(q.ID+"\x00"+q.Question) % uint64(len(impactClosers))
	if !strings.HasSuffix(explanation, ".") && !strings.HasSuffix(explanation, "!") && !strings.HasSuffix(explanation, "?") {
		explanation += "."
	}
	q.Explanation = explanation + " " + impactClosers[idx]
	return q
}
