package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCard marks a card that violates the content invariants. A deck
// containing one is a configuration error in the content source and must be
// rejected at load time, before any session starts.
var ErrInvalidCard = errors.New("invalid card")

var validate = validator.New()

// ValidateCard checks the structural invariants of a single card: a known
// kind, a non-empty prompt, and for multiple-choice a non-empty option list
// with the correct index inside it.
func ValidateCard(c *Card) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	switch c.Kind {
	case CardKindMultipleChoice:
		if len(c.Options) == 0 {
			return fmt.Errorf("%w: multiple-choice card %q has no options", ErrInvalidCard, c.PublicID)
		}
		if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Options) {
			return fmt.Errorf("%w: card %q correct index %d out of range [0,%d)",
				ErrInvalidCard, c.PublicID, c.CorrectIndex, len(c.Options))
		}
	case CardKindShortAnswer:
		if c.Answer == "" {
			return fmt.Errorf("%w: short-answer card %q has no answer", ErrInvalidCard, c.PublicID)
		}
	}
	return nil
}

// ValidateCards validates every card in a deck, failing on the first bad one.
func ValidateCards(cards []Card) error {
	for i := range cards {
		if err := ValidateCard(&cards[i]); err != nil {
			return err
		}
	}
	return nil
}
