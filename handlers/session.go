package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/studytok/api/logger"
	"github.com/studytok/api/models"
	"github.com/studytok/api/session"
	"github.com/studytok/api/utils"
)

// SessionHandler exposes live study sessions over HTTP. Each session is an
// in-memory state machine owned by the registry; these handlers translate
// requests into calls on it and report the resulting snapshot.
type SessionHandler struct {
	DB           *gorm.DB
	Sessions     *session.Manager
	Hub          *EventHub
	AdvanceDelay time.Duration
	Log          *logger.Logger
}

type sessionResponse struct {
	Accepted bool            `json:"accepted"`
	Result   *session.Result `json:"result,omitempty"`
	Card     *models.Card    `json:"card,omitempty"`
	State    session.State   `json:"state"`
}

// POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		DeckID string `json:"deck_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeckID == "" {
		http.Error(w, "Deck ID is required", http.StatusBadRequest)
		return
	}

	var deck models.Deck
	if err := h.DB.Where("public_id = ?", req.DeckID).First(&deck).Error; err != nil {
		http.Error(w, fmt.Sprintf("Deck with ID %s not found", req.DeckID), http.StatusNotFound)
		return
	}
	if !deck.IsPublic && deck.UserID != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var cards []models.Card
	if err := h.DB.Where("deck_id = ?", deck.ID).Order("created_at asc, id asc").Find(&cards).Error; err != nil {
		http.Error(w, "Failed to fetch cards", http.StatusInternalServerError)
		return
	}

	s, err := session.New(session.Config{
		UserID:       user.ID,
		Deck:         &deck,
		Cards:        cards,
		Store:        &ProgressStore{DB: h.DB},
		AdvanceDelay: h.AdvanceDelay,
		Log:          h.Log,
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyDeck):
			http.Error(w, "Deck has no cards", http.StatusUnprocessableEntity)
		case errors.Is(err, models.ErrInvalidCard):
			h.Log.Error("deck failed content validation", "deck", deck.PublicID, "error", err)
			http.Error(w, "Deck content is invalid", http.StatusInternalServerError)
		default:
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
		}
		return
	}
	s.SetNotifier(h.Hub.Notifier(s.ID))
	h.Sessions.Add(s)

	h.Log.Info("session started", "session", s.ID, "deck", deck.PublicID, "cards", len(cards))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sessionResponse{Accepted: true, State: s.State()})
}

// GET /api/sessions/{sessionID}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	state := s.State()
	card, _ := s.Card(state.Index)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse{Accepted: true, Card: card, State: state})
}

// POST /api/sessions/{sessionID}/scroll
func (h *SessionHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Offset   float64 `json:"offset"`
		Viewport float64 `json:"viewport"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	changed := s.Scroll(req.Offset, req.Viewport)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse{Accepted: changed, State: s.State()})
}

// POST /api/sessions/{sessionID}/answers
//
// Rejected submissions (nothing selected, card already answered) are not
// errors: the response carries accepted=false and the unchanged state.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var ans session.Answer
	if err := json.NewDecoder(r.Body).Decode(&ans); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	result, accepted := s.Submit(ans)
	resp := sessionResponse{Accepted: accepted, State: s.State()}
	if accepted {
		resp.Result = &result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// POST /api/sessions/{sessionID}/advance
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	accepted := s.Advance(req.Index)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse{Accepted: accepted, State: s.State()})
}

// POST /api/sessions/{sessionID}/likes/{cardID}
func (h *SessionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, func(s *session.Session, cardID string) bool { return s.ToggleLiked(cardID) })
}

// POST /api/sessions/{sessionID}/bookmarks/{cardID}
func (h *SessionHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, func(s *session.Session, cardID string) bool { return s.ToggleBookmarked(cardID) })
}

// POST /api/sessions/{sessionID}/ai-help/{cardID}
func (h *SessionHandler) ToggleAIHelp(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, func(s *session.Session, cardID string) bool { return s.ToggleAIHelp(cardID) })
}

func (h *SessionHandler) toggle(w http.ResponseWriter, r *http.Request, flip func(*session.Session, string) bool) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	cardID := r.PathValue("cardID")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	active := flip(s, cardID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Active bool          `json:"active"`
		State  session.State `json:"state"`
	}{Active: active, State: s.State()})
}

// DELETE /api/sessions/{sessionID}
//
// Teardown: the session leaves the registry, its pending auto-advance is
// cancelled, and the final progress is flushed.
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if removed, ok := h.Sessions.Remove(s.ID); ok {
		removed.Close()
	}
	h.Hub.Drop(s.ID)

	h.Log.Info("session closed", "session", s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/sessions/{sessionID}/events
//
// Server-sent events stream of index-changed and state-changed
// notifications for the presentation layer.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := h.Hub.Subscribe(s.ID)
	defer h.Hub.Unsubscribe(s.ID, ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// session resolves the path session ID to a live session owned by the
// caller.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	user, ok := utils.GetUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	sessionID := r.PathValue("sessionID")
	s, ok := h.Sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	if s.UserID() != user.ID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return s, true
}
