package scoring

import (
	"encoding/json"
	"math"
)

// TypeBreakdown aggregates points for all questions of one type.
type TypeBreakdown struct {
	Questions int     `json:"questions"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`
}

// LeadScore is the aggregate result of scoring one quiz submission.
type LeadScore struct {
	ReadinessScore    int                            `json:"readiness_score"`
	TotalPoints       float64                        `json:"total_points"`
	MaxPossiblePoints float64                        `json:"max_possible_points"`
	Tier              Tier                           `json:"tier"`
	Breakdown         map[QuestionType]TypeBreakdown `json:"breakdown"`
	Responses         []Response                     `json:"responses"`
}

// Score computes points for every question in order and derives the
// readiness score and tier. Answers with the wrong shape for their question
// type count as no selection. Returns ErrInvalidQuestionSet when a question
// definition cannot be scored.
func Score(questions []Question, responses Responses) (*LeadScore, error) {
	for _, q := range questions {
		if err := q.validate(); err != nil {
			return nil, err
		}
	}

	result := &LeadScore{
		Breakdown: make(map[QuestionType]TypeBreakdown),
		Responses: make([]Response, 0, len(questions)),
	}

	for _, q := range questions {
		answer := responses[q.ID]
		earned := pointsEarned(q, answer)
		possible := q.maxPoints()

		result.TotalPoints += earned
		result.MaxPossiblePoints += possible

		b := result.Breakdown[q.Type]
		b.Questions++
		b.Points += earned
		b.MaxPoints += possible
		result.Breakdown[q.Type] = b

		result.Responses = append(result.Responses, Response{
			QuestionID:   q.ID,
			Type:         q.Type,
			Answer:       answer,
			PointsEarned: earned,
		})
	}

	result.ReadinessScore = readiness(result.TotalPoints, result.MaxPossiblePoints)
	result.Tier = TierFor(result.ReadinessScore)

	return result, nil
}

func readiness(total, possible float64) int {
	if possible <= 0 {
		return 0
	}
	score := int(math.Round(100 * total / possible))
	return min(max(score, 0), 100)
}

func pointsEarned(q Question, answer json.RawMessage) float64 {
	if len(answer) == 0 {
		return 0
	}

	switch q.Type {
	case MultipleChoice:
		var value string
		if err := json.Unmarshal(answer, &value); err != nil {
			return 0
		}
		o, ok := q.option(value)
		if !ok {
			return 0
		}
		return o.Score * q.Weight

	case Checkbox:
		var values []string
		if err := json.Unmarshal(answer, &values); err != nil {
			return 0
		}
		seen := make(map[string]bool, len(values))
		var points float64
		for _, v := range values {
			if seen[v] {
				continue
			}
			seen[v] = true
			if o, ok := q.option(v); ok {
				points += o.Score * q.Weight
			}
		}
		return points

	default:
		return 0
	}
}
