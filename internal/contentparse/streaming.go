package contentparse

import (
	"encoding/json"
	"fmt"
	"strings"

	"civic-quiz/internal/domain"
)

// ExtractPartial returns the questions that can already be shown from a
// stream that may still be arriving. A payload that parses as a whole is
// decoded directly. Otherwise every balanced object in the buffer is tried
// on its own and kept when it has the shape of a complete question. If no
// single object qualifies, a closed "questions" array is parsed as one unit.
// Each call re-scans text from the start and keeps no state between calls.
//
// The shape check accepts any non-empty correct answer without matching it
// against the options. Partial output is meant for display while generation
// runs; the final validator enforces the match.
func ExtractPartial(text string) domain.StreamingParseResult {
	result := domain.StreamingParseResult{
		ExtractedQuestions: []domain.ExtractedQuestion{},
		ParseErrors:        []string{},
		IsComplete:         IsComplete(text),
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	if v, err := parseStructured(text); err == nil {
		if content, err := domain.DecodeQuizContent(v); err == nil {
			result.ExtractedQuestions = append(result.ExtractedQuestions, content.Questions...)
			return result
		}
	}

	for _, sp := range balancedSpans(text, "{") {
		fragment := text[sp.start:sp.end]
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(fragment), &m); err != nil {
			if strings.Contains(fragment, `"question"`) {
				result.ParseErrors = append(result.ParseErrors,
					fmt.Sprintf("question object at offset %d: %v", sp.start, err))
			}
			continue
		}
		if q, ok := completeQuestion(m); ok {
			result.ExtractedQuestions = append(result.ExtractedQuestions, q)
		}
	}
	if len(result.ExtractedQuestions) > 0 {
		return result
	}

	if loc := questionsPattern.FindStringIndex(text); loc != nil {
		open := loc[1] - 1
		if end := matchingClose(text, open); end > 0 {
			var items []interface{}
			if err := json.Unmarshal([]byte(text[open:end]), &items); err != nil {
				result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("questions array: %v", err))
				return result
			}
			for _, item := range items {
				m, ok := item.(map[string]interface{})
				if !ok {
					continue
				}
				if q, ok := completeQuestion(m); ok {
					result.ExtractedQuestions = append(result.ExtractedQuestions, q)
				}
			}
		}
	}
	return result
}

// completeQuestion decodes m when it carries an id, question text, an
// options list, a correct answer and an explanation.
func completeQuestion(m map[string]interface{}) (domain.ExtractedQuestion, bool) {
	if _, ok := m["id"]; !ok {
		return domain.ExtractedQuestion{}, false
	}
	q, optionsIsList := domain.DecodeQuestion(m)
	if q.ID == "" || q.Question == "" || !optionsIsList || q.CorrectAnswer == "" || q.Explanation == "" {
		return domain.ExtractedQuestion{}, false
	}
	return q, true
}
