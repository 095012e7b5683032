package contentparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_NoStructureNoKeywords(t *testing.T) {
	assert.Nil(t, Reconstruct("I'm sorry, I can't help with that request right now."))
	assert.Nil(t, Reconstruct(""))
}

func TestReconstruct_PrefersLongestCandidate(t *testing.T) {
	raw := `noise {"a":1} more {"topic":"Courts","questions":[{"id":"q1"}]} tail`

	got := NewParser(WithRepairer(failingRepairer)).Reconstruct(raw)

	assert.Equal(t, map[string]interface{}{
		"topic":     "Courts",
		"questions": []interface{}{map[string]interface{}{"id": "q1"}},
	}, got)
}

func TestReconstruct_SkipsEmptyStructures(t *testing.T) {
	raw := `{} [] {"topic":"x"`

	got := NewParser(WithRepairer(failingRepairer)).Reconstruct(raw)

	shell, ok := got.(map[string]interface{})
	require.True(t, ok, "expected template shell, got %#v", got)
	assert.Equal(t, "x", shell["topic"])
}

func TestReconstruct_UsesRepairLibraryOnCandidates(t *testing.T) {
	p := NewParser(WithRepairer(RepairFunc(func(text string) (string, error) {
		if text == `{"a": [1 2]}` {
			return `{"a":[1,2]}`, nil
		}
		return "", assert.AnError
	})))

	got := p.Reconstruct(`junk {"a": [1 2]} junk`)

	assert.Equal(t, map[string]interface{}{"a": []interface{}{float64(1), float64(2)}}, got)
}

func TestReconstruct_TemplateShell(t *testing.T) {
	raw := `The answer has "topic": "The \"Electoral\" College", "description": "How presidents are chosen", "questions": [`

	got := NewParser(WithRepairer(failingRepairer)).Reconstruct(raw)

	assert.Equal(t, map[string]interface{}{
		"topic":       `The "Electoral" College`,
		"description": "How presidents are chosen",
		"questions":   []interface{}{},
		"metadata": map[string]interface{}{
			"reconstructed": true,
			"strategy":      "template",
		},
	}, got)
}

func TestTemplateShell_CollectsQuestionObjects(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	raw := `"topic": "Courts", "questions": [{"id":"q1","question":"What does the Supreme Court do?"}, {"id":"q2" "question": "broken"}, {"id":"q3","question":"Who appoints judges?"}`

	shell, ok := p.templateShell(raw).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Courts", shell["topic"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"id": "q1", "question": "What does the Supreme Court do?"},
		map[string]interface{}{"id": "q3", "question": "Who appoints judges?"},
	}, shell["questions"])
}

func TestTemplateShell_ClosedQuestionsArray(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	raw := `"topic": "Courts" "questions": [{"id":"q1"}] trailing`

	shell, ok := p.templateShell(raw).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{map[string]interface{}{"id": "q1"}}, shell["questions"])
}

func TestTopLevelObject(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{"a": map[string]interface{}{"b": float64(1)}},
		topLevelObject(`x {"a":{"b":1}} y`))
	assert.Nil(t, topLevelObject(`x {} y {"a": oops}`))
}
