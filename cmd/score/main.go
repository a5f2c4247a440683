// Command score scores a set of quiz responses against a quiz definition
// and prints the resulting LeadScore as JSON.
//
//	score -quiz quiz.yaml -responses responses.yaml
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/leadpipe/internal/scoring"
)

// Quiz is the on-disk quiz definition.
type Quiz struct {
	Name      string             `yaml:"name"`
	Questions []scoring.Question `yaml:"questions"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)

	quizPath := fs.String("quiz", "", "Quiz definition (YAML)")
	responsesPath := fs.String("responses", "", "Responses keyed by question id (YAML or JSON)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *quizPath == "" || *responsesPath == "" {
		fmt.Fprintln(stderr, "usage: score -quiz <file> -responses <file>")
		return 2
	}

	quiz, err := loadQuiz(*quizPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	responses, err := loadResponses(*responsesPath, quiz.Questions)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	score, err := scoring.Score(quiz.Questions, responses)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, scoring.ErrInvalidQuestionSet) {
			return 1
		}
		return 2
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(score); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	return 0
}

func loadQuiz(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}

	var quiz Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("parse quiz %s: %w", path, err)
	}
	return &quiz, nil
}

// loadResponses decodes answers as YAML, which also accepts JSON, and
// encodes each answer as raw JSON in the shape its question expects.
// Option values are strings, so scalar answers keep their literal text:
// `size: 10` selects the option with value "10".
func loadResponses(path string, questions []scoring.Question) (scoring.Responses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse responses %s: %w", path, err)
	}

	types := make(map[string]scoring.QuestionType, len(questions))
	for _, q := range questions {
		types[q.ID] = q.Type
	}

	responses := make(scoring.Responses, len(raw))
	for id, node := range raw {
		encoded, err := encodeAnswer(types[id], &node)
		if err != nil {
			return nil, fmt.Errorf("encode answer %s: %w", id, err)
		}
		responses[id] = encoded
	}
	return responses, nil
}

func encodeAnswer(t scoring.QuestionType, node *yaml.Node) (json.RawMessage, error) {
	switch t {
	case scoring.MultipleChoice:
		if isScalar(node) {
			return json.Marshal(node.Value)
		}
	case scoring.Checkbox:
		if values, ok := scalarList(node); ok {
			return json.Marshal(values)
		}
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func isScalar(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() != "!!null"
}

func scalarList(node *yaml.Node) ([]string, bool) {
	if node.Kind != yaml.SequenceNode {
		return nil, false
	}
	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if !isScalar(item) {
			return nil, false
		}
		values = append(values, item.Value)
	}
	return values, true
}
