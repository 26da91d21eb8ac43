package session

import (
	"strings"

	"github.com/studytok/api/models"
)

// Answer is a learner's submission for one card: an option index for
// multiple-choice cards, free text for short-answer cards.
type Answer struct {
	Option *int   `json:"option,omitempty"`
	Text   string `json:"text,omitempty"`
}

// empty reports whether the answer counts as "nothing chosen" for the given
// card kind. Empty submissions are rejected, mirroring a disabled submit
// button in the UI.
func (a Answer) empty(kind string) bool {
	if kind == models.CardKindMultipleChoice {
		return a.Option == nil
	}
	return strings.TrimSpace(a.Text) == ""
}

// Attempt is the answer state of the card currently on screen. It starts
// unanswered, becomes submitted exactly once, and is reset whenever the
// active card changes so a revisited card never shows a stale answer.
type Attempt struct {
	Answer    *Answer `json:"answer,omitempty"`
	Submitted bool    `json:"submitted"`
	Correct   bool    `json:"correct"`
}

func (a *Attempt) reset() {
	*a = Attempt{}
}

// evaluate decides correctness once, at submission time. Multiple-choice
// compares the selected index; short answers are matched lowercased with
// surrounding whitespace trimmed. Internal whitespace and punctuation are
// deliberately left alone.
func evaluate(card *models.Card, ans Answer) bool {
	switch card.Kind {
	case models.CardKindMultipleChoice:
		return ans.Option != nil && *ans.Option == card.CorrectIndex
	case models.CardKindShortAnswer:
		return normalize(ans.Text) == normalize(card.Answer)
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
