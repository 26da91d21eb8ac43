package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/studytok/api/models"
	"github.com/studytok/api/utils"
)

// GET /api/decks
//
// Decks are returned newest first for the home feed; public ones plus the
// caller's own.
func (db *DBHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	query := db.Order("created_at desc")
	if user, ok := utils.GetUser(r); ok {
		query = query.Where("is_public = ? OR user_id = ?", true, user.ID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	var decks []models.Deck
	if err := query.Find(&decks).Error; err != nil {
		db.Log.Error("could not fetch decks", "error", err)
		http.Error(w, "Failed to fetch decks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

// GET /api/decks/{deckID}
func (db *DBHandler) GetDeckByID(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")
	var deck models.Deck
	if err := db.Preload("User").Where("public_id = ?", deckID).First(&deck).Error; err != nil {
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", deckID), http.StatusNotFound)
		return
	}

	user, ok := utils.GetUser(r)
	isOwner := ok && deck.UserID == user.ID
	if !deck.IsPublic && !isOwner {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	type DeckResponse struct {
		models.Deck
		IsOwner bool `json:"IsOwner"`
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeckResponse{Deck: deck, IsOwner: isOwner})
}

// GET /api/decks/{deckID}/cards
//
// Cards come back in creation order, which is the feed order.
func (db *DBHandler) GetCardsForDeck(w http.ResponseWriter, r *http.Request) {
	deckID := r.PathValue("deckID")

	var deck models.Deck
	if err := db.Where("public_id = ?", deckID).First(&deck).Error; err != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}

	user, ok := utils.GetUser(r)
	if !deck.IsPublic && (!ok || deck.UserID != user.ID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var cards []models.Card
	if err := db.Where("deck_id = ?", deck.ID).Order("created_at asc, id asc").Find(&cards).Error; err != nil {
		http.Error(w, "Failed to fetch cards", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

// DELETE /api/decks/{deckID}
func (db *DBHandler) DeleteDeckByID(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deckID := r.PathValue("deckID")
	var deck models.Deck
	if err := db.Where("public_id = ?", deckID).First(&deck).Error; err != nil {
		http.Error(w, "Deck not found", http.StatusNotFound)
		return
	}
	if deck.UserID != user.ID {
		http.Error(w, "Forbidden: You do not own this deck", http.StatusForbidden)
		return
	}

	if err := db.Where("deck_id = ?", deck.ID).Delete(&models.Card{}).Error; err != nil {
		http.Error(w, "Failed to delete cards", http.StatusInternalServerError)
		return
	}
	if err := db.Delete(&deck).Error; err != nil {
		http.Error(w, "Failed to delete deck", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
