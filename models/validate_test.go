package models

import (
	"errors"
	"testing"
)

func mcqCard(correct int, options ...string) Card {
	return Card{
		PublicID:     "c1",
		Kind:         CardKindMultipleChoice,
		Prompt:       "What is the derivative of x^2?",
		Options:      options,
		CorrectIndex: correct,
	}
}

func TestValidateCard(t *testing.T) {
	cases := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{"valid mcq", mcqCard(0, "2x", "x^2", "2", "x"), false},
		{"correct index at upper bound", mcqCard(3, "a", "b", "c", "d"), false},
		{"correct index out of range", mcqCard(4, "a", "b", "c", "d"), true},
		{"negative correct index", mcqCard(-1, "a", "b"), true},
		{"mcq without options", mcqCard(0), true},
		{"valid short answer", Card{PublicID: "c2", Kind: CardKindShortAnswer, Prompt: "Formula for water?", Answer: "H2O"}, false},
		{"short answer without answer", Card{PublicID: "c3", Kind: CardKindShortAnswer, Prompt: "?"}, true},
		{"unknown kind", Card{PublicID: "c4", Kind: "essay", Prompt: "?"}, true},
		{"empty prompt", Card{PublicID: "c5", Kind: CardKindShortAnswer, Answer: "x"}, true},
	}

	for _, c := range cases {
		err := ValidateCard(&c.card)
		if c.wantErr && err == nil {
			t.Fatalf("%s: expected error, got nil", c.name)
		}
		if !c.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if c.wantErr && !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("%s: error %v is not ErrInvalidCard", c.name, err)
		}
	}
}

func TestValidateCardsFailsOnFirstBadCard(t *testing.T) {
	cards := []Card{
		mcqCard(0, "a", "b"),
		mcqCard(2, "a", "b"),
	}
	if err := ValidateCards(cards); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard, got %v", err)
	}
	if err := ValidateCards(cards[:1]); err != nil {
		t.Fatalf("valid deck rejected: %v", err)
	}
}
