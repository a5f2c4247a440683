// Package scoring converts quiz responses into a readiness score and tier.
// Scoring is a pure function of the question definitions and the raw answers;
// callers own persistence of the resulting LeadScore.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// QuestionType identifies how a question's answer is interpreted.
type QuestionType string

// Supported question types. Only choice-based types contribute points.
const (
	MultipleChoice QuestionType = "multiple_choice"
	Checkbox       QuestionType = "checkbox"
	ContactInfo    QuestionType = "contact_info"
	Text           QuestionType = "text"
)

var questionTypes = []QuestionType{
	MultipleChoice,
	Checkbox,
	ContactInfo,
	Text,
}

// Scored reports whether answers to this question type earn points.
func (t QuestionType) Scored() bool {
	return t == MultipleChoice || t == Checkbox
}

// UnmarshalJSON validates that the decoded string is a known question type.
func (t *QuestionType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseQuestionType(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseQuestionType validates a string as a known question type.
func ParseQuestionType(s string) (QuestionType, error) {
	v := QuestionType(s)
	if !slices.Contains(questionTypes, v) {
		return "", fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestionSet, s)
	}
	return v, nil
}

// Option is a selectable answer with the points it is worth before weighting.
type Option struct {
	Value string  `json:"value" yaml:"value"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Score float64 `json:"score" yaml:"score"`
}

// Question is a single quiz question definition. Weight multiplies the score
// of every selected option.
type Question struct {
	ID      string       `json:"id" yaml:"id"`
	Type    QuestionType `json:"type" yaml:"type"`
	Prompt  string       `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Weight  float64      `json:"weight" yaml:"weight"`
	Options []Option     `json:"options,omitempty" yaml:"options,omitempty"`
}

func (q Question) validate() error {
	if !slices.Contains(questionTypes, q.Type) {
		return fmt.Errorf("%w: question %s: unknown type %q", ErrInvalidQuestionSet, q.ID, q.Type)
	}
	if !finite(q.Weight) {
		return fmt.Errorf("%w: question %s: weight is not a finite number", ErrInvalidQuestionSet, q.ID)
	}
	if q.Weight < 0 {
		return fmt.Errorf("%w: question %s: negative weight", ErrInvalidQuestionSet, q.ID)
	}
	if q.Type.Scored() && len(q.Options) == 0 {
		return fmt.Errorf("%w: question %s: %s requires options", ErrInvalidQuestionSet, q.ID, q.Type)
	}
	for _, o := range q.Options {
		if !finite(o.Score) {
			return fmt.Errorf("%w: question %s: option %q score is not a finite number", ErrInvalidQuestionSet, q.ID, o.Value)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (q Question) option(value string) (Option, bool) {
	i := slices.IndexFunc(q.Options, func(o Option) bool {
		return o.Value == value
	})
	if i < 0 {
		return Option{}, false
	}
	return q.Options[i], true
}

func (q Question) maxPoints() float64 {
	switch q.Type {
	case MultipleChoice:
		best := q.Options[0].Score
		for _, o := range q.Options[1:] {
			best = max(best, o.Score)
		}
		return best * q.Weight
	case Checkbox:
		var sum float64
		for _, o := range q.Options {
			sum += o.Score
		}
		return sum * q.Weight
	default:
		return 0
	}
}

// Responses maps question IDs to raw JSON answers. A multiple_choice answer
// is a string; a checkbox answer is an array of strings.
type Responses map[string]json.RawMessage

// Response is the scored answer to a single question.
type Response struct {
	QuestionID   string          `json:"question_id"`
	Type         QuestionType    `json:"type"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	PointsEarned float64         `json:"points_earned"`
}
