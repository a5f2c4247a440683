package scoring_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/leadpipe/internal/scoring"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func budgetQuestion() scoring.Question {
	return scoring.Question{
		ID:     "budget",
		Type:   scoring.MultipleChoice,
		Weight: 2,
		Options: []scoring.Option{
			{Value: "none", Score: 0},
			{Value: "small", Score: 3},
			{Value: "large", Score: 5},
		},
	}
}

func channelsQuestion() scoring.Question {
	return scoring.Question{
		ID:     "channels",
		Type:   scoring.Checkbox,
		Weight: 4,
		Options: []scoring.Option{
			{Value: "email", Score: 2},
			{Value: "ads", Score: 3},
			{Value: "events", Score: 5},
		},
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  scoring.Tier
	}{
		{0, scoring.TierCold},
		{39, scoring.TierCold},
		{40, scoring.TierWarm},
		{59, scoring.TierWarm},
		{60, scoring.TierHot},
		{79, scoring.TierHot},
		{80, scoring.TierQualified},
		{100, scoring.TierQualified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scoring.TierFor(tt.score), "score %d", tt.score)
	}
}

func TestTierAtLeast(t *testing.T) {
	assert.True(t, scoring.TierQualified.AtLeast(scoring.TierHot))
	assert.True(t, scoring.TierHot.AtLeast(scoring.TierHot))
	assert.False(t, scoring.TierWarm.AtLeast(scoring.TierHot))
	assert.True(t, scoring.TierCold.AtLeast(scoring.TierCold))
}

func TestScoreMultipleChoice(t *testing.T) {
	questions := []scoring.Question{budgetQuestion()}

	got, err := scoring.Score(questions, scoring.Responses{
		"budget": raw(t, "small"),
	})
	require.NoError(t, err)

	assert.Equal(t, 6.0, got.TotalPoints)
	assert.Equal(t, 10.0, got.MaxPossiblePoints)
	assert.Equal(t, 60, got.ReadinessScore)
	assert.Equal(t, scoring.TierHot, got.Tier)
	require.Len(t, got.Responses, 1)
	assert.Equal(t, 6.0, got.Responses[0].PointsEarned)
}

func TestScoreCheckbox(t *testing.T) {
	tests := []struct {
		name   string
		answer any
		want   float64
	}{
		{"two options", []string{"email", "ads"}, 20},
		{"none selected", []string{}, 0},
		{"unknown value ignored", []string{"email", "billboards"}, 8},
		{"duplicate counted once", []string{"ads", "ads"}, 12},
		{"wrong shape", "email", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoring.Score(
				[]scoring.Question{channelsQuestion()},
				scoring.Responses{"channels": raw(t, tt.answer)},
			)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Responses[0].PointsEarned)
			assert.Equal(t, 40.0, got.MaxPossiblePoints)
		})
	}
}

func TestScoreMalformedMultipleChoice(t *testing.T) {
	got, err := scoring.Score(
		[]scoring.Question{budgetQuestion()},
		scoring.Responses{"budget": raw(t, []string{"large"})},
	)
	require.NoError(t, err)
	assert.Zero(t, got.TotalPoints)
	assert.Equal(t, scoring.TierCold, got.Tier)
}

func TestScoreUnscoredTypes(t *testing.T) {
	questions := []scoring.Question{
		{ID: "contact", Type: scoring.ContactInfo, Weight: 1},
		{ID: "notes", Type: scoring.Text, Weight: 3},
	}

	got, err := scoring.Score(questions, scoring.Responses{
		"contact": raw(t, map[string]string{"email": "a@b.co"}),
		"notes":   raw(t, "call me"),
	})
	require.NoError(t, err)

	assert.Zero(t, got.MaxPossiblePoints)
	assert.Zero(t, got.ReadinessScore)
	assert.Equal(t, scoring.TierCold, got.Tier)
	assert.Equal(t, 1, got.Breakdown[scoring.Text].Questions)
}

func TestScoreEmptyQuestionSet(t *testing.T) {
	got, err := scoring.Score(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, got.ReadinessScore)
	assert.Empty(t, got.Responses)
}

func TestScoreBreakdownAndRounding(t *testing.T) {
	questions := []scoring.Question{budgetQuestion(), channelsQuestion()}

	got, err := scoring.Score(questions, scoring.Responses{
		"budget":   raw(t, "large"),
		"channels": raw(t, []string{"events"}),
	})
	require.NoError(t, err)

	// (10 + 20) / (10 + 40) = 60%
	assert.Equal(t, 60, got.ReadinessScore)
	assert.Equal(t, 10.0, got.Breakdown[scoring.MultipleChoice].Points)
	assert.Equal(t, 40.0, got.Breakdown[scoring.Checkbox].MaxPoints)

	got, err = scoring.Score([]scoring.Question{
		{
			ID: "q", Type: scoring.MultipleChoice, Weight: 1,
			Options: []scoring.Option{{Value: "a", Score: 1}, {Value: "b", Score: 3}},
		},
	}, scoring.Responses{"q": raw(t, "a")})
	require.NoError(t, err)
	assert.Equal(t, 33, got.ReadinessScore)
}

func TestScoreMissingAnswer(t *testing.T) {
	got, err := scoring.Score([]scoring.Question{budgetQuestion()}, scoring.Responses{})
	require.NoError(t, err)
	assert.Zero(t, got.TotalPoints)
	assert.Equal(t, 10.0, got.MaxPossiblePoints)
}

func TestScoreInvalidQuestionSet(t *testing.T) {
	tests := []struct {
		name     string
		question scoring.Question
	}{
		{"multiple choice without options", scoring.Question{ID: "a", Type: scoring.MultipleChoice, Weight: 1}},
		{"checkbox without options", scoring.Question{ID: "b", Type: scoring.Checkbox, Weight: 1}},
		{"unknown type", scoring.Question{ID: "c", Type: "slider", Weight: 1}},
		{"negative weight", scoring.Question{
			ID: "d", Type: scoring.MultipleChoice, Weight: -1,
			Options: []scoring.Option{{Value: "x", Score: 1}},
		}},
		{"NaN weight", scoring.Question{
			ID: "e", Type: scoring.MultipleChoice, Weight: math.NaN(),
			Options: []scoring.Option{{Value: "x", Score: 1}},
		}},
		{"infinite weight", scoring.Question{
			ID: "f", Type: scoring.Checkbox, Weight: math.Inf(1),
			Options: []scoring.Option{{Value: "x", Score: 1}},
		}},
		{"NaN option score", scoring.Question{
			ID: "g", Type: scoring.Checkbox, Weight: 1,
			Options: []scoring.Option{{Value: "x", Score: math.NaN()}},
		}},
		{"negative infinite option score", scoring.Question{
			ID: "h", Type: scoring.MultipleChoice, Weight: 1,
			Options: []scoring.Option{{Value: "x", Score: 1}, {Value: "y", Score: math.Inf(-1)}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoring.Score([]scoring.Question{tt.question}, nil)
			assert.ErrorIs(t, err, scoring.ErrInvalidQuestionSet)
		})
	}
}

func TestQuestionTypeUnmarshal(t *testing.T) {
	var q scoring.Question
	err := json.Unmarshal([]byte(`{"id":"x","type":"slider"}`), &q)
	assert.ErrorIs(t, err, scoring.ErrInvalidQuestionSet)

	err = json.Unmarshal([]byte(`{"id":"x","type":"checkbox","weight":1,"options":[{"value":"a","score":1}]}`), &q)
	require.NoError(t, err)
	assert.Equal(t, scoring.Checkbox, q.Type)
}
