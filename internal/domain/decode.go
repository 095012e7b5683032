package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Models name the same field several ways. Every alias gets its own field
// and firstNonEmpty picks the winner in tag order.

type wireContent struct {
	Topic       string                 `mapstructure:"topic"`
	Title       string                 `mapstructure:"title"`
	Description string                 `mapstructure:"description"`
	Questions   interface{}            `mapstructure:"questions"`
	Metadata    map[string]interface{} `mapstructure:"metadata"`
}

type wireQuestion struct {
	ID                 string       `mapstructure:"id"`
	Question           string       `mapstructure:"question"`
	QuestionText       string       `mapstructure:"questionText"`
	QuestionTextSnake  string       `mapstructure:"question_text"`
	Text               string       `mapstructure:"text"`
	CorrectAnswer      string       `mapstructure:"correct_answer"`
	CorrectAnswerCamel string       `mapstructure:"correctAnswer"`
	Answer             string       `mapstructure:"answer"`
	Explanation        string       `mapstructure:"explanation"`
	Category           string       `mapstructure:"category"`
	Difficulty         float64      `mapstructure:"difficulty"`
	Options            []wireOption `mapstructure:"options"`
	Sources            []wireSource `mapstructure:"sources"`
}

type optionFields struct {
	ID    string `mapstructure:"id"`
	Key   string `mapstructure:"key"`
	Label string `mapstructure:"label"`
	Text  string `mapstructure:"text"`
	Value string `mapstructure:"value"`
}

type sourceFields struct {
	URL                   string  `mapstructure:"url"`
	Link                  string  `mapstructure:"link"`
	Title                 string  `mapstructure:"title"`
	Name                  string  `mapstructure:"name"`
	CredibilityScore      float64 `mapstructure:"credibility_score"`
	CredibilityScoreCamel float64 `mapstructure:"credibilityScore"`
	BiasRating            string  `mapstructure:"bias_rating"`
	BiasRatingCamel       string  `mapstructure:"biasRating"`
}

// wireOption and wireSource mark list entries worth keeping. A JSON null
// never reaches the hooks and decodes to the zero value, which is dropped.
type wireOption struct {
	QuestionOption
	keep bool
}

type wireSource struct {
	Source
	keep bool
}

var (
	wireOptionType      = reflect.TypeOf(wireOption{})
	wireOptionSliceType = reflect.TypeOf([]wireOption{})
	wireSourceType      = reflect.TypeOf(wireSource{})
	wireSourceSliceType = reflect.TypeOf([]wireSource{})
)

// looseDecode maps a loosely-typed JSON value onto out. Scalars of the wrong
// kind become zero values instead of errors.
func looseDecode(input interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			scalarHook,
			listHook,
			optionHook,
			sourceHook,
		),
		Result: out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func scalarHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.String:
		return scalarString(data), nil
	case reflect.Float64:
		return numberValue(data), nil
	case reflect.Map:
		if _, ok := data.(map[string]interface{}); !ok {
			return map[string]interface{}{}, nil
		}
	}
	return data, nil
}

// listHook drops option and source values that are not lists.
func listHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != wireOptionSliceType && to != wireSourceSliceType {
		return data, nil
	}
	if _, ok := data.([]interface{}); !ok {
		return []interface{}{}, nil
	}
	return data, nil
}

func optionHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != wireOptionType {
		return data, nil
	}
	if m, ok := data.(map[string]interface{}); ok {
		var f optionFields
		if err := looseDecode(m, &f); err != nil {
			return nil, err
		}
		return wireOption{QuestionOption: QuestionOption{
			ID:    firstNonEmpty(f.ID, f.Key),
			Label: firstNonEmpty(f.Label, f.Text, f.Value),
		}, keep: true}, nil
	}
	label := scalarString(data)
	return wireOption{QuestionOption: QuestionOption{Label: label}, keep: label != ""}, nil
}

func sourceHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != wireSourceType {
		return data, nil
	}
	var s Source
	switch src := data.(type) {
	case string:
		s.URL = strings.TrimSpace(src)
	case map[string]interface{}:
		var f sourceFields
		if err := looseDecode(src, &f); err != nil {
			return nil, err
		}
		s = Source{
			URL:              firstNonEmpty(f.URL, f.Link),
			Title:            firstNonEmpty(f.Title, f.Name),
			CredibilityScore: f.CredibilityScore,
			BiasRating:       firstNonEmpty(f.BiasRating, f.BiasRatingCamel),
		}
		if s.CredibilityScore == 0 {
			s.CredibilityScore = f.CredibilityScoreCamel
		}
	}
	return wireSource{Source: s, keep: s.URL != "" || s.Title != ""}, nil
}

// DecodeQuizContent converts a parsed JSON payload into QuizContent. The
// payload may be an object with a "questions" list or a bare list of
// question objects. Question entries that are not objects are skipped.
func DecodeQuizContent(v interface{}) (*QuizContent, error) {
	switch payload := v.(type) {
	case map[string]interface{}:
		var w wireContent
		if err := looseDecode(payload, &w); err != nil {
			return nil, fmt.Errorf("decode content: %w", err)
		}
		content := &QuizContent{
			Topic:       firstNonEmpty(w.Topic, w.Title),
			Description: w.Description,
			Metadata:    w.Metadata,
		}
		if items, ok := w.Questions.([]interface{}); ok {
			content.Questions = decodeQuestionList(items)
		} else if looksLikeQuestion(payload) {
			q, _ := DecodeQuestion(payload)
			content.Questions = []ExtractedQuestion{q}
		}
		return content, nil
	case []interface{}:
		return &QuizContent{Questions: decodeQuestionList(payload)}, nil
	case nil:
		return nil, fmt.Errorf("content is empty")
	default:
		return nil, fmt.Errorf("unsupported content type %T", v)
	}
}

func decodeQuestionList(items []interface{}) []ExtractedQuestion {
	questions := make([]ExtractedQuestion, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		q, _ := DecodeQuestion(m)
		questions = append(questions, q)
	}
	return questions
}

func looksLikeQuestion(m map[string]interface{}) bool {
	_, hasQuestion := m["question"]
	_, hasText := m["questionText"]
	return hasQuestion || hasText
}

// DecodeQuestion maps one loosely-typed question object onto
// ExtractedQuestion. The boolean reports whether "options" was a list.
// Fields that cannot be decoded are left empty.
func DecodeQuestion(m map[string]interface{}) (ExtractedQuestion, bool) {
	var w wireQuestion
	_ = looseDecode(m, &w)

	q := ExtractedQuestion{
		ID:            w.ID,
		Question:      firstNonEmpty(w.Question, w.QuestionText, w.QuestionTextSnake, w.Text),
		CorrectAnswer: firstNonEmpty(w.CorrectAnswer, w.CorrectAnswerCamel, w.Answer),
		Explanation:   w.Explanation,
		Category:      w.Category,
		Difficulty:    w.Difficulty,
	}
	_, isList := m["options"].([]interface{})
	if isList {
		q.Options = make([]QuestionOption, 0, len(w.Options))
		for i, opt := range w.Options {
			if !opt.keep {
				continue
			}
			if opt.ID == "" {
				opt.ID = optionID(i)
			}
			q.Options = append(q.Options, opt.QuestionOption)
		}
	}
	if _, ok := m["sources"].([]interface{}); ok {
		q.Sources = make([]Source, 0, len(w.Sources))
		for _, src := range w.Sources {
			if src.keep {
				q.Sources = append(q.Sources, src.Source)
			}
		}
	}
	return q, isList
}

// optionID yields a, b, c, ... z, then option_27 and so on.
func optionID(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return "option_" + strconv.Itoa(i+1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// numberValue accepts numbers, numeric strings and difficulty labels.
func numberValue(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
		return difficultyLevel(val)
	}
	return 0
}

func difficultyLevel(s string) float64 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return 1
	case "medium":
		return 2
	case "hard":
		return 3
	default:
		return 0
	}
}
