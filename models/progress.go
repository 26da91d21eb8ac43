package models

import (
	"time"

	"gorm.io/gorm"
)

// Progress is the durable record of a learner's standing on one deck. There
// is at most one row per (user, deck); writes go through an upsert.
type Progress struct {
	gorm.Model
	UserID uint `gorm:"not null;uniqueIndex:idx_progress_user_deck"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DeckID uint `gorm:"not null;uniqueIndex:idx_progress_user_deck"`
	Deck   Deck `gorm:"foreignKey:DeckID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Score          int `gorm:"not null;default:0"`
	Streak         int `gorm:"not null;default:0"`
	CompletedCards int `gorm:"not null;default:0"`

	LastStudied *time.Time `gorm:"default:null"`
}
