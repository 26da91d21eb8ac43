package models

import "gorm.io/gorm"

// Import processing states.
const (
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// Import records one piece of uploaded content and what the pipeline made of
// it: the extracted text, the generated summary and topics, and the deck the
// generated cards landed in.
type Import struct {
	gorm.Model
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	DeckID uint `gorm:"index"`
	Deck   Deck `gorm:"foreignKey:DeckID" json:"-"`

	Filename      string   `gorm:"size:300"`
	FileType      string   `gorm:"size:10"`
	FileSize      int64    `gorm:"default:0"`
	ExtractedText string   `gorm:"type:text"`
	Summary       string   `gorm:"size:2000"`
	Topics        []string `gorm:"serializer:json"`
	Status        string   `gorm:"size:20"`
}
