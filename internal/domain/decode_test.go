package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, text string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	return v
}

func TestDecodeQuizContent_Object(t *testing.T) {
	v := decodeJSON(t, `{
		"topic": "Congress",
		"description": "How laws are made",
		"metadata": {"model": "test"},
		"questions": [
			{
				"id": "q1",
				"question": "Who leads the House?",
				"options": ["Speaker", "President", "Chief Justice", "Majority Whip"],
				"correct_answer": "Speaker",
				"explanation": "The Speaker is elected by the House majority.",
				"sources": [{"url": "https://www.house.gov", "credibility_score": 0.9, "bias_rating": "center"}],
				"difficulty": "hard",
				"category": "legislative"
			},
			"not a question"
		]
	}`)

	content, err := DecodeQuizContent(v)
	require.NoError(t, err)

	assert.Equal(t, "Congress", content.Topic)
	assert.Equal(t, "How laws are made", content.Description)
	assert.Equal(t, map[string]interface{}{"model": "test"}, content.Metadata)
	require.Len(t, content.Questions, 1)

	q := content.Questions[0]
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "Who leads the House?", q.Question)
	assert.Equal(t, []QuestionOption{
		{ID: "a", Label: "Speaker"},
		{ID: "b", Label: "President"},
		{ID: "c", Label: "Chief Justice"},
		{ID: "d", Label: "Majority Whip"},
	}, q.Options)
	assert.Equal(t, "Speaker", q.CorrectAnswer)
	assert.Equal(t, []Source{{URL: "https://www.house.gov", CredibilityScore: 0.9, BiasRating: "center"}}, q.Sources)
	assert.Equal(t, float64(3), q.Difficulty)
	assert.Equal(t, "legislative", q.Category)
}

func TestDecodeQuizContent_AlternateShapes(t *testing.T) {
	list, err := DecodeQuizContent(decodeJSON(t, `[{"id":"q1","questionText":"What is a bill?","correctAnswer":"b"}]`))
	require.NoError(t, err)
	require.Len(t, list.Questions, 1)
	assert.Equal(t, "What is a bill?", list.Questions[0].Question)
	assert.Equal(t, "b", list.Questions[0].CorrectAnswer)

	single, err := DecodeQuizContent(decodeJSON(t, `{"id":7,"question":"What is a veto?"}`))
	require.NoError(t, err)
	require.Len(t, single.Questions, 1)
	assert.Equal(t, "7", single.Questions[0].ID)

	_, err = DecodeQuizContent(nil)
	assert.Error(t, err)
	_, err = DecodeQuizContent("text")
	assert.Error(t, err)
}

func TestDecodeQuestion_ObjectOptions(t *testing.T) {
	m := decodeJSON(t, `{"options":[{"id":"x","label":"Yes"},{"text":"No"},42]}`).(map[string]interface{})

	q, isList := DecodeQuestion(m)

	assert.True(t, isList)
	assert.Equal(t, []QuestionOption{
		{ID: "x", Label: "Yes"},
		{ID: "b", Label: "No"},
		{ID: "c", Label: "42"},
	}, q.Options)
}

func TestDecodeQuestion_OptionsNotAList(t *testing.T) {
	q, isList := DecodeQuestion(map[string]interface{}{"options": "a, b"})
	assert.False(t, isList)
	assert.Nil(t, q.Options)
}

func TestResolveCorrectOption(t *testing.T) {
	q := ExtractedQuestion{
		Options:       []QuestionOption{{ID: "a", Label: "Senate"}, {ID: "b", Label: "House"}},
		CorrectAnswer: "house",
	}
	opt, ok := q.ResolveCorrectOption()
	assert.True(t, ok)
	assert.Equal(t, "b", opt.ID)

	q.CorrectAnswer = "A"
	opt, ok = q.ResolveCorrectOption()
	assert.True(t, ok)
	assert.Equal(t, "Senate", opt.Label)

	q.CorrectAnswer = "Court"
	_, ok = q.ResolveCorrectOption()
	assert.False(t, ok)
}

func TestOptionID(t *testing.T) {
	assert.Equal(t, "a", optionID(0))
	assert.Equal(t, "z", optionID(25))
	assert.Equal(t, "option_27", optionID(26))
}

func TestDecodeQuestion_FieldAliases(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ExtractedQuestion
	}{
		{
			name: "snake case question text and plain answer",
			json: `{"id":"q1","question_text":"  What is a filibuster?  ","answer":"A delay tactic"}`,
			want: ExtractedQuestion{ID: "q1", Question: "What is a filibuster?", CorrectAnswer: "A delay tactic"},
		},
		{
			name: "question wins over text",
			json: `{"question":"Primary","text":"Secondary","correct_answer":"x","correctAnswer":"y"}`,
			want: ExtractedQuestion{Question: "Primary", CorrectAnswer: "x"},
		},
		{
			name: "wrong kinds become empty",
			json: `{"id":true,"question":["not","text"],"explanation":{"a":1},"difficulty":"2.5"}`,
			want: ExtractedQuestion{ID: "true", Difficulty: 2.5},
		},
		{
			name: "difficulty label",
			json: `{"difficulty":" Medium "}`,
			want: ExtractedQuestion{Difficulty: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, isList := DecodeQuestion(decodeJSON(t, tt.json).(map[string]interface{}))
			assert.False(t, isList)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestDecodeQuestion_SkipsEmptyEntries(t *testing.T) {
	m := decodeJSON(t, `{
		"options": [null, "Senate", {"key":"h","value":"House"}, "  "],
		"sources": [null, "", "https://www.senate.gov", {"link":"https://www.house.gov","name":"House","credibilityScore":0.8,"biasRating":"center"}, {"credibility_score":1}]
	}`).(map[string]interface{})

	q, isList := DecodeQuestion(m)

	assert.True(t, isList)
	assert.Equal(t, []QuestionOption{
		{ID: "b", Label: "Senate"},
		{ID: "h", Label: "House"},
	}, q.Options)
	assert.Equal(t, []Source{
		{URL: "https://www.senate.gov"},
		{URL: "https://www.house.gov", Title: "House", CredibilityScore: 0.8, BiasRating: "center"},
	}, q.Sources)
}

func TestDecodeQuestion_SourcesNotAList(t *testing.T) {
	q, _ := DecodeQuestion(map[string]interface{}{"sources": "https://www.senate.gov"})
	assert.Nil(t, q.Sources)
}

func TestDecodeQuizContent_TitleAndBadMetadata(t *testing.T) {
	content, err := DecodeQuizContent(decodeJSON(t, `{"title":"Elections","metadata":"none","questions":[]}`))
	require.NoError(t, err)

	assert.Equal(t, "Elections", content.Topic)
	assert.Empty(t, content.Metadata)
	assert.Empty(t, content.Questions)
}
