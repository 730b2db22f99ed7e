package eval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bilalfuldacs/grammar-check-api/internal/grammar"
)

// Case is an input text and the corrections a good model should return for it.
type Case struct {
	Text     string          `yaml:"text"`
	Expected []grammar.Issue `yaml:"expected"`
}

// Cases groups the inputs for the accuracy and performance runs.
type Cases struct {
	Accuracy    []Case   `yaml:"accuracy"`
	Performance []string `yaml:"performance"`
}

// DefaultCases returns the built-in evaluation set.
func DefaultCases() Cases {
	return Cases{
		Accuracy: []Case{
			{
				Text: "I goes to the store yesterday. She have a apple.",
				Expected: []grammar.Issue{
					{Wrong: "I goes", Corrected: "I went", ErrorType: "verb tense"},
					{Wrong: "She have", Corrected: "She has", ErrorType: "subject-verb agreement"},
					{Wrong: "a apple", Corrected: "an apple", ErrorType: "article usage"},
				},
			},
			{
				Text: "The cat are sleeping. They was happy.",
				Expected: []grammar.Issue{
					{Wrong: "The cat are", Corrected: "The cat is", ErrorType: "subject-verb agreement"},
					{Wrong: "They was", Corrected: "They were", ErrorType: "subject-verb agreement"},
				},
			},
			{
				Text: "He don't like it. We was going home.",
				Expected: []grammar.Issue{
					{Wrong: "He don't", Corrected: "He doesn't", ErrorType: "subject-verb agreement"},
					{Wrong: "We was", Corrected: "We were", ErrorType: "subject-verb agreement"},
				},
			},
		},
		Performance: []string{
			"This is a simple test sentence.",
			"I goes to the store yesterday. She have a apple. The cat are sleeping. They was happy. He don't like it.",
			"This is a longer text with multiple sentences. Each sentence should be checked for grammar errors. " +
				"The system should identify issues like subject-verb agreement, verb tense, and article usage. " +
				"We was going to the store when we seen the cat.",
		},
	}
}

// LoadCases reads a YAML case file. Sections missing from the file fall
// back to the built-in set.
func LoadCases(path string) (Cases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Cases{}, fmt.Errorf("read cases: %w", err)
	}

	var cases Cases
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return Cases{}, fmt.Errorf("parse cases: %w", err)
	}

	defaults := DefaultCases()
	if len(cases.Accuracy) == 0 {
		cases.Accuracy = defaults.Accuracy
	}
	if len(cases.Performance) == 0 {
		cases.Performance = defaults.Performance
	}

	for i, c := range cases.Accuracy {
		if c.Text == "" {
			return Cases{}, fmt.Errorf("accuracy case %d: text is required", i+1)
		}
	}
	return cases, nil
}
