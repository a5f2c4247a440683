package prompts

const researchSpec = `Respond with a JSON object matching this exact structure:

{
  "summary": "<research brief>"
}

Field constraints:
- summary: Plain text brief, at most 200 words. Label inferences as such.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

const qualifySpec = `Respond with a JSON object matching this exact structure:

{
  "category": "<QUALIFIED|FOLLOW_UP|UNQUALIFIED|SUPPORT>",
  "reason": "<explanation>"
}

Field constraints:
- category: Exactly one of the four values, uppercase.
- reason: One or two sentences citing the evidence for the category.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never invent a category outside the four listed`

const draftSpec = `Respond with a JSON object matching this exact structure:

{
  "subject": "<subject line>",
  "body": "<email body>"
}

Field constraints:
- subject: Under 70 characters, no emoji.
- body: Plain text email body with greeting and sign-off.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

var specs = map[Stage]string{
	StageResearch: researchSpec,
	StageQualify:  qualifySpec,
	StageDraft:    draftSpec,
}

// Spec returns the output format for a stage. Specs are not overridable
// because response parsing depends on them.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
