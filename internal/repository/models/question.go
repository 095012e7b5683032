package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GeneratedQuestion maps a row of generated_questions.
type GeneratedQuestion struct {
	ID            string          `db:"id"`
	BatchID       string          `db:"batch_id"`
	Position      int             `db:"position"`
	Topic         string          `db:"topic"`
	QuestionKey   string          `db:"question_key"`
	Question      string          `db:"question"`
	Options       JSONColumn      `db:"options"`
	CorrectAnswer string          `db:"correct_answer"`
	Explanation   string          `db:"explanation"`
	Sources       JSONColumn      `db:"sources"`
	Difficulty    sql.NullFloat64 `db:"difficulty"`
	Category      sql.NullString  `db:"category"`
	QualityScore  int             `db:"quality_score"`
	CreatedAt     time.Time       `db:"created_at"`
}

// JSONColumn stores a JSON document in a text or CLOB column. NULL and ""
// scan as an empty array.
type JSONColumn []byte

// NewJSONColumn marshals v. A nil slice is stored as "[]".
func NewJSONColumn(v interface{}) (JSONColumn, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return JSONColumn("[]"), nil
	}
	return JSONColumn(b), nil
}

// Value implements the driver.Valuer interface
func (j JSONColumn) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "[]", nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONColumn) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = JSONColumn("[]")
	case []byte:
		*j = append(JSONColumn(nil), v...)
	case string:
		*j = JSONColumn(v)
	default:
		return fmt.Errorf("JSONColumn Scan: unsupported type %T", value)
	}
	if len(*j) == 0 || string(*j) == "null" {
		*j = JSONColumn("[]")
	}
	return nil
}

// Decode unmarshals the column into dest.
func (j JSONColumn) Decode(dest interface{}) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, dest)
}
