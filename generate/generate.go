package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoContent is returned when there is nothing to generate from.
var ErrNoContent = errors.New("no content provided")

// Question is one generated quiz item, before it becomes a persisted card.
type Question struct {
	Prompt       string   `json:"prompt"`
	Kind         string   `json:"kind"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"correct_index"`
	Answer       string   `json:"answer"`
	Difficulty   string   `json:"difficulty"`
	Explanation  string   `json:"explanation"`
}

// Result is a generated study deck: a summary, the topics the content
// covers, and the question set.
type Result struct {
	Summary            string     `json:"summary"`
	Topics             []string   `json:"topics"`
	Questions          []Question `json:"questions"`
	TotalCards         int        `json:"total_cards"`
	EstimatedStudyTime string     `json:"estimated_study_time"`
	Difficulty         string     `json:"difficulty"`
}

// Service is a stand-in for an AI content-generation backend. It returns a
// fixed question set regardless of input; the contract (text in, deck out,
// explicit failure) is what the rest of the system depends on.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Generate builds a question set from raw text and its declared source kind.
func (s *Service) Generate(ctx context.Context, content, kind string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	questions := make([]Question, len(cannedQuestions))
	copy(questions, cannedQuestions)

	summary := fmt.Sprintf("This study guide contains key concepts and important information extracted from your %s content. "+
		"The most important topics were identified and turned into targeted questions to help you master the material effectively.",
		strings.ToUpper(kind))

	return &Result{
		Summary:            summary,
		Topics:             []string{"Key Concepts", "Practical Application", "Fundamental Principles", "Critical Thinking", "Analysis"},
		Questions:          questions,
		TotalCards:         len(questions),
		EstimatedStudyTime: "20-25 minutes",
		Difficulty:         "Mixed",
	}, nil
}
