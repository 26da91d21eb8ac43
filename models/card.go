package models

import "gorm.io/gorm"

// Card kinds. Multiple-choice cards carry options plus the index of the
// correct option; short-answer cards carry a canonical answer string.
const (
	CardKindMultipleChoice = "mcq"
	CardKindShortAnswer    = "short"
)

// Card represents a single quiz question inside a deck. Cards are presented
// in creation order, so the gorm CreatedAt column doubles as the feed order.
type Card struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex"`

	DeckID uint `gorm:"not null;index"`
	Deck   Deck `gorm:"foreignKey:DeckID" json:"-"`

	Kind   string `gorm:"not null;size:10" validate:"required,oneof=mcq short"`
	Prompt string `gorm:"not null;size:1000" validate:"required"`

	// Multiple-choice fields
	Options      []string `gorm:"serializer:json"`
	CorrectIndex int      `gorm:"default:0"`

	// Short-answer field
	Answer string `gorm:"size:1000"`

	Explanation string `gorm:"size:2000"`
	Subject     string `gorm:"size:100"`
	Difficulty  string `gorm:"size:20"`
}
