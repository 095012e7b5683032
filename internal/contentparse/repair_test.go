package contentparse

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"civic-quiz/internal/domain"
)

const congressPayload = `{"topic":"Congress","questions":[{"id":"q1","question":"Who leads the House?","options":["A","B","C","D"],"correct_answer":"A","explanation":"Because the Speaker is elected by the House majority."}]}`

// failingRepairer keeps the repair library out of tests that target other strategies.
var failingRepairer = RepairFunc(func(string) (string, error) {
	return "", errors.New("cannot repair")
})

func mustUnmarshal(t *testing.T, text string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	return v
}

func TestParse_WellFormedInputIsNotRepaired(t *testing.T) {
	result := Parse(congressPayload)

	assert.True(t, result.IsValid)
	assert.False(t, result.Repaired)
	assert.Equal(t, StrategyDirect, result.Strategy)
	assert.Equal(t, mustUnmarshal(t, congressPayload), result.Content)
	assert.Equal(t, []string{"direct: succeeded"}, result.Errors)
	require.Len(t, result.Attempts, 1)
	assert.True(t, result.Attempts[0].Succeeded)
}

func TestParse_MissingFinalBrace(t *testing.T) {
	result := Parse(strings.TrimSuffix(congressPayload, "}"))

	require.True(t, result.IsValid)
	assert.True(t, result.Repaired)
	assert.Equal(t, StrategyCleanup, result.Strategy)

	content, err := domain.DecodeQuizContent(result.Content)
	require.NoError(t, err)
	require.Len(t, content.Questions, 1)
	assert.Equal(t, "q1", content.Questions[0].ID)
	assert.Equal(t, "Congress", content.Topic)

	require.Len(t, result.Errors, 2)
	assert.True(t, strings.HasPrefix(result.Errors[0], "direct: "))
	assert.Equal(t, "cleanup: succeeded", result.Errors[1])
}

func TestParse_CodeFenceCountsAsRepair(t *testing.T) {
	result := Parse("```json\n" + congressPayload + "\n```")

	require.True(t, result.IsValid)
	assert.True(t, result.Repaired)
	assert.Equal(t, StrategyCleanup, result.Strategy)
	assert.Equal(t, mustUnmarshal(t, congressPayload), result.Content)
}

func TestParse_ProseLeadIn(t *testing.T) {
	result := Parse("Here's the JSON you asked for:\n\n" + congressPayload + "\n\nLet me know if you need more.")

	require.True(t, result.IsValid)
	assert.True(t, result.Repaired)
	assert.Equal(t, mustUnmarshal(t, congressPayload), result.Content)
}

func TestParse_TrailingCommaIsRepaired(t *testing.T) {
	inputs := []string{
		`{"topic":"Civics","questions":[{"id":"q1"},]}`,
		`{"topic":"Civics","questions":[],}`,
		`[1,2,3,]`,
	}
	for _, in := range inputs {
		result := Parse(in)
		assert.True(t, result.IsValid, in)
		assert.True(t, result.Repaired, in)
	}
}

func TestParse_StructuralStrategy(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	result := p.Parse(`{topic: 'Voting', questions: [{id: 'q1', question: 'What is the voting age?',}]}`)

	require.True(t, result.IsValid)
	assert.Equal(t, StrategyStructural, result.Strategy)
	content, ok := result.Content.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Voting", content["topic"])
}

func TestParse_RepairLibraryStrategy(t *testing.T) {
	var calls []string
	p := NewParser(WithRepairer(RepairFunc(func(text string) (string, error) {
		calls = append(calls, text)
		return `{"fixed":true}`, nil
	})))
	result := p.Parse(`{"a": [1 2 3]}`)

	require.True(t, result.IsValid)
	assert.Equal(t, StrategyRepairLibrary, result.Strategy)
	assert.Equal(t, map[string]interface{}{"fixed": true}, result.Content)
	assert.Equal(t, []string{`{"a": [1 2 3]}`}, calls)
}

func TestParse_ReconstructStrategy(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	result := p.Parse(`{"broken": [1 2]} and later {"topic":"Civics","questions":[]}`)

	require.True(t, result.IsValid)
	assert.Equal(t, StrategyReconstruct, result.Strategy)
	assert.Equal(t, map[string]interface{}{"topic": "Civics", "questions": []interface{}{}}, result.Content)
}

func TestParse_Unparseable(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	result := p.Parse("The model declined to answer this request.")

	assert.False(t, result.IsValid)
	assert.Nil(t, result.Content)
	assert.False(t, result.Repaired)
	assert.Len(t, result.Errors, len(chain))
	assert.Len(t, result.Attempts, len(chain))
	for _, a := range result.Attempts {
		assert.False(t, a.Succeeded, a.Strategy)
	}
}

func TestParse_ProseWithoutBracketsIsUnparseable(t *testing.T) {
	inputs := []string{
		"Sorry, I cannot help with that, please try again",
		"Line one\nLine two\nLine three",
		"The model declined to answer this request.",
	}
	p := NewParser(WithRepairer(LibraryRepairer))
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Nil(t, p.Reconstruct(in))

			result := p.Parse(in)

			assert.False(t, result.IsValid)
			assert.Nil(t, result.Content)
			assert.Empty(t, result.Strategy)
			assert.Len(t, result.Attempts, len(chain))
		})
	}
}

func TestParse_FenceInsideStringIsKept(t *testing.T) {
	inner := `{"topic":"Markdown","questions":[{"id":"q1","question":"Use ` + "```go" + ` blocks?","explanation":"Wrap code in ` + "```" + ` fences."}]}`

	result := Parse("```json\n" + inner + "\n```")

	require.True(t, result.IsValid)
	assert.True(t, result.Repaired)
	assert.Equal(t, StrategyCleanup, result.Strategy)
	assert.Equal(t, mustUnmarshal(t, inner), result.Content)
}

func TestStripWrapping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence in value", "```\n{\"a\":\"x ``` y\"}\n```", `{"a":"x ` + "```" + ` y"}`},
		{"lead-in", "Sure, here it is:\n[1]", `[1]`},
		{"lead-in words in value", `{"a":"Sure thing"}`, `{"a":"Sure thing"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripWrapping(tt.in))
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	p := NewParser(WithRepairer(failingRepairer))
	result := p.Parse("")

	assert.False(t, result.IsValid)
	assert.Nil(t, result.Content)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "direct: input is empty", result.Errors[0])
}

func TestParse_RepairLibraryPanicIsContained(t *testing.T) {
	p := NewParser(WithRepairer(RepairFunc(func(string) (string, error) {
		panic("boom")
	})))

	var result domain.ParsedContent
	require.NotPanics(t, func() {
		result = p.Parse(`{"a": [1 2 3]}`)
	})
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "repair-library: repair library panic: boom")
}

func TestParse_LogsEachStrategy(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewParser(WithLogger(zap.New(core)), WithRepairer(failingRepairer))

	p.Parse(strings.TrimSuffix(congressPayload, "}"))

	assert.Equal(t, 1, logs.FilterMessage("Parse strategy failed").Len())
	succeeded := logs.FilterMessage("Parse strategy succeeded").All()
	require.Len(t, succeeded, 1)
	assert.Equal(t, StrategyCleanup, succeeded[0].ContextMap()["strategy"])
}

func TestParser_ConcurrentUse(t *testing.T) {
	p := NewParser()
	inputs := []string{
		congressPayload,
		strings.TrimSuffix(congressPayload, "}"),
		"```json\n" + congressPayload + "\n```",
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			assert.True(t, p.Parse(in).IsValid)
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}
