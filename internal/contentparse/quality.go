package contentparse

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"civic-quiz/internal/domain"
)

// Rubric penalties, subtracted from a starting score of 100.
const (
	penaltyMissingID          = 20
	penaltyShortQuestion      = 25
	penaltyOptionCount        = 20
	penaltyMissingAnswer      = 20
	penaltyShortExplanation   = 15
	penaltyUnresolvedAnswer   = 10
	penaltySpecificityStream  = 5
	penaltySpecificityFinal   = 10
	penaltyImpactStream       = 5
	penaltyImpactFinal        = 10
	penaltyNoSourcesStream    = 5
	penaltyNoSourcesFinal     = 15
	minQuestionLength         = 10
	minExplanationLength      = 20
	specificLengthThreshold   = 50
	requiredOptionCount       = 4
	maxPromotableStreamErrors = 2
)

var (
	digitPattern      = regexp.MustCompile(`[0-9]`)
	currencyPattern   = regexp.MustCompile(`[$€£%]|(?i)\bpercent\b`)
	properNamePattern = regexp.MustCompile(`[a-z,]\s+[A-Z][a-z]+|\b[A-Z][a-z]+\s+[A-Z][a-z]+`)
	impactPattern     = regexp.MustCompile(`(?i)\b(affect|affects|affected|impact|impacts|influence|influences|shape|shapes|determine|determines|protect|protects|change|changes|changed|decide|decides|ensure|ensures|allow|allows|require|requires|limit|limits|means|matters|your|citizens?|voters?|communit(?:y|ies)|daily li(?:fe|ves))\b`)
)

// Validator scores extracted questions against the quality rubric. The zero
// value is ready to use; it holds no state.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate scores a whole batch. The batch is valid when at least one
// question is. When only some questions pass, the average score is scaled by
// the valid share and a warning is recorded. Per-question messages are
// prefixed with their position.
func (v *Validator) Validate(content *domain.QuizContent, streaming bool) domain.QualityReport {
	report := domain.QualityReport{
		Errors:    []string{},
		Warnings:  []string{},
		Questions: []domain.QuestionReport{},
	}
	if content == nil || len(content.Questions) == 0 {
		report.Errors = append(report.Errors, "content contains no questions")
		return report
	}
	if !streaming && strings.TrimSpace(content.Topic) == "" {
		report.Warnings = append(report.Warnings, "content has no topic")
	}

	total := 0
	for i := range content.Questions {
		qr := v.ValidateQuestion(content.Questions[i], i, streaming)
		report.Questions = append(report.Questions, qr)
		total += qr.QualityScore
		if qr.IsValid {
			report.ValidQuestions++
		}
		for _, msg := range qr.Errors {
			report.Errors = append(report.Errors, fmt.Sprintf("question %d: %s", i+1, msg))
		}
		for _, msg := range qr.Warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("question %d: %s", i+1, msg))
		}
	}
	report.TotalQuestions = len(content.Questions)

	score := float64(total) / float64(report.TotalQuestions)
	if report.ValidQuestions > 0 && report.ValidQuestions < report.TotalQuestions {
		score *= float64(report.ValidQuestions) / float64(report.TotalQuestions)
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("only %d of %d questions passed validation", report.ValidQuestions, report.TotalQuestions))
	}
	report.QualityScore = clampScore(int(math.Round(score)))
	report.IsValid = report.ValidQuestions > 0
	return report
}

// ValidateQuestion scores one question. Streaming mode downgrades the
// specificity, impact and source checks to warnings with smaller penalties,
// and promotes a question with at most two errors to valid. Final mode also
// requires the correct answer to name one of the options.
func (v *Validator) ValidateQuestion(q domain.ExtractedQuestion, index int, streaming bool) domain.QuestionReport {
	report := domain.QuestionReport{
		Index:      index,
		QuestionID: q.ID,
		Errors:     []string{},
		Warnings:   []string{},
	}
	score := 100
	fail := func(penalty int, msg string) {
		score -= penalty
		report.Errors = append(report.Errors, msg)
	}
	warn := func(penalty int, msg string) {
		score -= penalty
		report.Warnings = append(report.Warnings, msg)
	}

	question := strings.TrimSpace(q.Question)
	explanation := strings.TrimSpace(q.Explanation)

	if strings.TrimSpace(q.ID) == "" {
		fail(penaltyMissingID, "missing id")
	}
	if len([]rune(question)) < minQuestionLength {
		fail(penaltyShortQuestion, fmt.Sprintf("question text is missing or shorter than %d characters", minQuestionLength))
	}
	if len(q.Options) != requiredOptionCount {
		fail(penaltyOptionCount, fmt.Sprintf("expected %d options, got %d", requiredOptionCount, len(q.Options)))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		fail(penaltyMissingAnswer, "missing correct answer")
	}
	if len([]rune(explanation)) < minExplanationLength {
		fail(penaltyShortExplanation, fmt.Sprintf("explanation is missing or shorter than %d characters", minExplanationLength))
	}

	if !isSpecific(question) {
		if streaming {
			warn(penaltySpecificityStream, "question lacks specific details")
		} else {
			fail(penaltySpecificityFinal, "question lacks specific details such as names, dates, numbers or amounts")
		}
	}
	if !HasImpactLanguage(question + " " + explanation) {
		if streaming {
			warn(penaltyImpactStream, "question does not connect to real-world impact")
		} else {
			fail(penaltyImpactFinal, "question and explanation do not describe real-world impact")
		}
	}
	if len(q.Sources) == 0 {
		if streaming {
			warn(penaltyNoSourcesStream, "no sources cited")
		} else {
			fail(penaltyNoSourcesFinal, "no sources cited")
		}
	}
	if !streaming && strings.TrimSpace(q.CorrectAnswer) != "" {
		if _, ok := q.ResolveCorrectOption(); !ok {
			fail(penaltyUnresolvedAnswer, "correct answer does not match any option")
		}
	}

	report.QualityScore = clampScore(score)
	report.IsValid = len(report.Errors) == 0
	if streaming && !report.IsValid && len(report.Errors) <= maxPromotableStreamErrors {
		report.Warnings = append(report.Warnings, report.Errors...)
		report.Errors = []string{}
		report.IsValid = true
		report.Promoted = true
	}
	return report
}

// isSpecific reports whether question text carries concrete detail.
func isSpecific(text string) bool {
	if len([]rune(text)) > specificLengthThreshold {
		return true
	}
	return digitPattern.MatchString(text) ||
		currencyPattern.MatchString(text) ||
		properNamePattern.MatchString(text)
}

// HasImpactLanguage reports whether text ties a question to its effect on
// people.
func HasImpactLanguage(text string) bool {
	return impactPattern.MatchString(text)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
