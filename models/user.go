package models

import "gorm.io/gorm"

// User represents a learner in the system
type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null;size:200"`
	Nickname     string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null" json:"-"`

	Decks    []Deck     `gorm:"foreignKey:UserID"`
	Progress []Progress `gorm:"foreignKey:UserID"`
}
