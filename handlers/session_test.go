package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/studytok/api/models"
	"github.com/studytok/api/session"
)

func newSessionMux(t *testing.T) (*http.ServeMux, *SessionHandler, *models.User) {
	t.Helper()
	db := testDB(t)
	user := testUser(t, db)
	seedDeck(t, db, user)

	h := &SessionHandler{
		DB:           db,
		Sessions:     session.NewManager(),
		Hub:          NewEventHub(),
		AdvanceDelay: time.Minute, // no auto-advance during these tests
		Log:          nopLog(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", asUser(user, h.CreateSession))
	mux.HandleFunc("GET /api/sessions/{sessionID}", asUser(user, h.GetSession))
	mux.HandleFunc("POST /api/sessions/{sessionID}/scroll", asUser(user, h.Scroll))
	mux.HandleFunc("POST /api/sessions/{sessionID}/answers", asUser(user, h.SubmitAnswer))
	mux.HandleFunc("POST /api/sessions/{sessionID}/advance", asUser(user, h.Advance))
	mux.HandleFunc("POST /api/sessions/{sessionID}/likes/{cardID}", asUser(user, h.ToggleLike))
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", asUser(user, h.CloseSession))
	return mux, h, user
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, sessionResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp sessionResponse
	if rec.Code < 300 && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: bad response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestSessionFlowOverHTTP(t *testing.T) {
	mux, h, user := newSessionMux(t)

	rec, resp := doJSON(t, mux, "POST", "/api/sessions", `{"deck_id":"deck-go"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status=%d body=%s", rec.Code, rec.Body.String())
	}
	id := resp.State.SessionID
	if id == "" || resp.State.CardCount != 2 || resp.State.Index != 0 {
		t.Fatalf("unexpected initial state: %+v", resp.State)
	}

	// Correct answer on card 0.
	rec, resp = doJSON(t, mux, "POST", "/api/sessions/"+id+"/answers", `{"option":0}`)
	if rec.Code != http.StatusOK || !resp.Accepted {
		t.Fatalf("submit: status=%d resp=%+v", rec.Code, resp)
	}
	if !resp.Result.Correct || resp.Result.Score != 10 || resp.Result.Streak != 1 {
		t.Fatalf("result=%+v, want correct with score 10 streak 1", resp.Result)
	}

	// Second submission on the same card is rejected without state change.
	rec, resp = doJSON(t, mux, "POST", "/api/sessions/"+id+"/answers", `{"option":1}`)
	if rec.Code != http.StatusOK || resp.Accepted {
		t.Fatalf("repeat submit should be rejected: status=%d resp=%+v", rec.Code, resp)
	}
	if resp.State.Score != 10 || resp.State.Streak != 1 {
		t.Fatalf("repeat submit mutated state: %+v", resp.State)
	}

	// Manual advance to card 1 and an empty short-answer submission.
	_, resp = doJSON(t, mux, "POST", "/api/sessions/"+id+"/advance", `{"index":1}`)
	if !resp.Accepted || resp.State.Index != 1 {
		t.Fatalf("advance: %+v", resp.State)
	}
	_, resp = doJSON(t, mux, "POST", "/api/sessions/"+id+"/answers", `{"text":"  "}`)
	if resp.Accepted {
		t.Fatal("blank short answer should be rejected")
	}

	// Like toggle shows up in state.
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/likes/card-1", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle like: status=%d", rec.Code)
	}
	_, resp = doJSON(t, mux, "GET", "/api/sessions/"+id, "")
	if len(resp.State.Liked) != 1 || resp.State.Liked[0] != "card-1" {
		t.Fatalf("liked=%v", resp.State.Liked)
	}
	if resp.Card == nil || resp.Card.PublicID != "card-2" {
		t.Fatalf("card on screen = %+v, want card-2", resp.Card)
	}

	// Teardown persists progress and removes the session.
	rec, _ = doJSON(t, mux, "DELETE", "/api/sessions/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("close: status=%d", rec.Code)
	}
	if _, ok := h.Sessions.Get(id); ok {
		t.Fatal("session still registered after close")
	}

	store := &ProgressStore{DB: h.DB}
	var deck models.Deck
	if err := h.DB.Where("public_id = ?", "deck-go").First(&deck).Error; err != nil {
		t.Fatalf("reload deck: %v", err)
	}
	score, streak, err := store.LoadProgress(user.ID, deck.ID)
	if err != nil || score != 10 || streak != 1 {
		t.Fatalf("persisted score=%d streak=%d err=%v, want 10 and 1", score, streak, err)
	}

	// A new session restores the stored score and streak.
	rec, resp = doJSON(t, mux, "POST", "/api/sessions", `{"deck_id":"deck-go"}`)
	if rec.Code != http.StatusCreated || resp.State.Score != 10 || resp.State.Streak != 1 {
		t.Fatalf("restored state=%+v status=%d", resp.State, rec.Code)
	}
}

func TestCreateSessionRejectsUnknownAndEmptyDecks(t *testing.T) {
	mux, h, user := newSessionMux(t)

	rec, _ := doJSON(t, mux, "POST", "/api/sessions", `{"deck_id":"missing"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown deck: status=%d", rec.Code)
	}

	empty := &models.Deck{PublicID: "deck-empty", Title: "Empty", UserID: user.ID, IsPublic: true}
	if err := h.DB.Create(empty).Error; err != nil {
		t.Fatalf("create empty deck: %v", err)
	}
	rec, _ = doJSON(t, mux, "POST", "/api/sessions", `{"deck_id":"deck-empty"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty deck: status=%d", rec.Code)
	}
}

func TestCreateSessionFailsFastOnInvalidContent(t *testing.T) {
	mux, h, user := newSessionMux(t)

	deck := &models.Deck{PublicID: "deck-bad", Title: "Broken", UserID: user.ID, IsPublic: true}
	if err := h.DB.Create(deck).Error; err != nil {
		t.Fatalf("create deck: %v", err)
	}
	bad := &models.Card{PublicID: "bad-1", DeckID: deck.ID, Kind: models.CardKindMultipleChoice,
		Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 5}
	if err := h.DB.Create(bad).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}

	rec, _ := doJSON(t, mux, "POST", "/api/sessions", `{"deck_id":"deck-bad"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("invalid deck content: status=%d, want 500 at load time", rec.Code)
	}
}
