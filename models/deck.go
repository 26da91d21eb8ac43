package models

import (
	"time"

	"gorm.io/gorm"
)

// Deck represents an ordered collection of study cards on one topic
type Deck struct {
	gorm.Model
	PublicID    string `gorm:"size:100;uniqueIndex"`
	Title       string `gorm:"not null;size:200"`
	Subject     string `gorm:"size:100"`
	Description string `gorm:"size:2000"`
	Difficulty  string `gorm:"size:20"`
	TotalCards  int    `gorm:"default:0"`

	UserID uint `gorm:"not null"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Cards []Card `gorm:"foreignKey:DeckID"`

	IsPublic    bool       `gorm:"default:false"`
	LastStudied *time.Time `gorm:"default:null"`
}
