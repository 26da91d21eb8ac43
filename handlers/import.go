package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/studytok/api/extract"
	"github.com/studytok/api/generate"
	"github.com/studytok/api/logger"
	"github.com/studytok/api/models"
	"github.com/studytok/api/utils"
)

// ImportHandler turns uploaded documents or raw text into study decks via
// the extraction and generation services.
type ImportHandler struct {
	DB        *gorm.DB
	Extractor *extract.Service
	Generator *generate.Service
	Log       *logger.Logger
}

type importResponse struct {
	Success            bool     `json:"success"`
	Filename           string   `json:"filename,omitempty"`
	ExtractedText      string   `json:"extracted_text,omitempty"`
	WordCount          int      `json:"word_count,omitempty"`
	DeckID             string   `json:"deck_id"`
	Title              string   `json:"title"`
	Summary            string   `json:"summary"`
	Topics             []string `json:"topics"`
	TotalCards         int      `json:"total_cards"`
	EstimatedStudyTime string   `json:"estimated_study_time"`
}

// POST /api/imports
//
// Accepts a multipart upload, runs it through extraction and generation,
// and materializes the generated questions as a deck. Collaborator
// failures come back as error payloads the client can retry from.
func (h *ImportHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// One extra MiB of headroom for the rest of the form.
	r.Body = http.MaxBytesReader(w, r.Body, extract.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(extract.MaxFileSize); err != nil {
		http.Error(w, "File too large. Maximum size is 25MB.", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = "Imported Study Guide"
	}

	extracted, err := h.Extractor.Extract(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, extract.ErrTooLarge):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.Log.Error("extraction failed", "filename", header.Filename, "error", err)
			http.Error(w, "Failed to extract text from file", http.StatusInternalServerError)
		}
		return
	}

	generated, err := h.Generator.Generate(r.Context(), extracted.Text, extracted.Kind)
	if err != nil {
		h.Log.Error("generation failed", "filename", header.Filename, "error", err)
		http.Error(w, "Failed to generate study content", http.StatusInternalServerError)
		return
	}

	deck, err := h.createDeck(user, title, generated, &models.Import{
		UserID:        user.ID,
		Filename:      extracted.Filename,
		FileType:      extracted.Kind,
		FileSize:      extracted.FileSize,
		ExtractedText: extracted.Text,
	})
	if err != nil {
		h.Log.Error("could not create deck from upload", "error", err)
		http.Error(w, "Failed to create study deck", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(importResponse{
		Success:            true,
		Filename:           extracted.Filename,
		ExtractedText:      extracted.Text,
		WordCount:          extracted.WordCount,
		DeckID:             deck.PublicID,
		Title:              deck.Title,
		Summary:            generated.Summary,
		Topics:             generated.Topics,
		TotalCards:         generated.TotalCards,
		EstimatedStudyTime: generated.EstimatedStudyTime,
	})
}

// POST /api/imports/text
func (h *ImportHandler) ImportText(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content string `json:"content"`
		Type    string `json:"type"`
		Title   string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "Imported Study Guide"
	}
	if req.Type == "" {
		req.Type = "text"
	}

	generated, err := h.Generator.Generate(r.Context(), req.Content, req.Type)
	if err != nil {
		if errors.Is(err, generate.ErrNoContent) {
			http.Error(w, "No content provided", http.StatusBadRequest)
			return
		}
		h.Log.Error("generation failed", "error", err)
		http.Error(w, "Failed to generate study content", http.StatusInternalServerError)
		return
	}

	deck, err := h.createDeck(user, req.Title, generated, &models.Import{
		UserID:        user.ID,
		FileType:      req.Type,
		ExtractedText: req.Content,
	})
	if err != nil {
		h.Log.Error("could not create deck from text", "error", err)
		http.Error(w, "Failed to create study deck", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(importResponse{
		Success:            true,
		DeckID:             deck.PublicID,
		Title:              deck.Title,
		Summary:            generated.Summary,
		Topics:             generated.Topics,
		TotalCards:         generated.TotalCards,
		EstimatedStudyTime: generated.EstimatedStudyTime,
	})
}

// createDeck persists the deck, its cards, and the import record in one
// transaction. Generated cards are validated before anything is written;
// a bad card means a broken generator and the whole import is rejected.
func (h *ImportHandler) createDeck(user *models.User, title string, generated *generate.Result, record *models.Import) (*models.Deck, error) {
	deckID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	deck := models.Deck{
		PublicID:    deckID,
		Title:       title,
		Subject:     "General",
		Description: generated.Summary,
		Difficulty:  generated.Difficulty,
		TotalCards:  generated.TotalCards,
		UserID:      user.ID,
	}

	cards := make([]models.Card, 0, len(generated.Questions))
	for _, q := range generated.Questions {
		cardID, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		cards = append(cards, models.Card{
			PublicID:     cardID,
			Kind:         q.Kind,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Answer:       q.Answer,
			Explanation:  q.Explanation,
			Subject:      deck.Subject,
			Difficulty:   q.Difficulty,
		})
	}
	if err := models.ValidateCards(cards); err != nil {
		return nil, err
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deck).Error; err != nil {
			return err
		}
		for i := range cards {
			cards[i].DeckID = deck.ID
			if err := tx.Create(&cards[i]).Error; err != nil {
				return err
			}
		}
		record.DeckID = deck.ID
		record.Summary = generated.Summary
		record.Topics = generated.Topics
		record.Status = models.ImportStatusCompleted
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return &deck, nil
}
