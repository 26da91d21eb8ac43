package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studytok/api/models"
	"github.com/studytok/api/utils"
)

// ProgressStore is the durable side of study sessions, backed by the
// progress table. One row per (user, deck), written through an upsert so
// fire-and-forget saves from live sessions stay cheap.
type ProgressStore struct {
	DB *gorm.DB
}

func (p *ProgressStore) LoadProgress(userID, deckID uint) (int, int, error) {
	var progress models.Progress
	err := p.DB.Where("user_id = ? AND deck_id = ?", userID, deckID).First(&progress).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return progress.Score, progress.Streak, nil
}

func (p *ProgressStore) SaveProgress(userID, deckID uint, score, streak, completed int) error {
	now := time.Now()
	progress := models.Progress{
		UserID:         userID,
		DeckID:         deckID,
		Score:          score,
		Streak:         streak,
		CompletedCards: completed,
		LastStudied:    &now,
	}
	return p.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "deck_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "streak", "completed_cards", "last_studied", "updated_at"}),
	}).Create(&progress).Error
}

// GET /api/users/me/progress
func (db *DBHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var progress []models.Progress
	if err := db.Preload("Deck").Where("user_id = ?", user.ID).
		Order("last_studied desc").Find(&progress).Error; err != nil {
		http.Error(w, "Failed to fetch progress", http.StatusInternalServerError)
		return
	}

	type ProgressResponse struct {
		models.Progress
		DeckID    string `json:"deck_id"`
		DeckTitle string `json:"deck_title"`
	}

	response := make([]ProgressResponse, 0, len(progress))
	for _, p := range progress {
		response = append(response, ProgressResponse{
			Progress:  p,
			DeckID:    p.Deck.PublicID,
			DeckTitle: p.Deck.Title,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
