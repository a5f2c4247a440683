package prompts

import (
	"encoding/json"
	"slices"
)

// Stage is an agent-backed workflow step whose instructions can be
// overridden.
type Stage string

const (
	StageResearch Stage = "research"
	StageQualify  Stage = "qualify"
	StageDraft    Stage = "draft"
)

var stages = []Stage{
	StageResearch,
	StageQualify,
	StageDraft,
}

func Stages() []Stage {
	return stages
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseStage(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStage returns ErrInvalidStage for unknown values.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
