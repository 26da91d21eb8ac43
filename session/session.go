package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studytok/api/feed"
	"github.com/studytok/api/logger"
	"github.com/studytok/api/models"
)

// DefaultAdvanceDelay is how long the feedback (explanation, confetti) stays
// on screen after a correct answer before the feed moves to the next card.
const DefaultAdvanceDelay = 2500 * time.Millisecond

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 10

var ErrEmptyDeck = errors.New("deck has no cards")

// Notifier receives change notifications for the presentation layer. Calls
// are made while the session lock is held, so implementations must not block.
type Notifier interface {
	// IndexChanged reports the new active index and the scroll offset the
	// presentation layer should animate to.
	IndexChanged(index int, offset float64)
	StateChanged(state State)
}

// Store is the durable counterpart of a session. Saves may be applied
// asynchronously; a reload only needs to reconstruct the last known
// score and streak.
type Store interface {
	LoadProgress(userID, deckID uint) (score, streak int, err error)
	SaveProgress(userID, deckID uint, score, streak, completed int) error
}

// State is a JSON-serializable snapshot of a session.
type State struct {
	SessionID  string   `json:"session_id"`
	DeckID     string   `json:"deck_id"`
	Index      int      `json:"index"`
	CardCount  int      `json:"card_count"`
	CardID     string   `json:"card_id"`
	Score      int      `json:"score"`
	Streak     int      `json:"streak"`
	Attempt    Attempt  `json:"attempt"`
	Liked      []string `json:"liked"`
	Bookmarked []string `json:"bookmarked"`
	AIHelped   []string `json:"ai_helped"`
}

// Result is what a submission produces: the verdict plus the explanation to
// show alongside it.
type Result struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	Score       int    `json:"score"`
	Streak      int    `json:"streak"`
}

// Config describes a new session.
type Config struct {
	UserID       uint
	Deck         *models.Deck
	Cards        []models.Card
	Store        Store
	Notifier     Notifier
	AdvanceDelay time.Duration
	Log          *logger.Logger
}

// Session owns all transient study state for one learner on one deck: the
// active index, score, streak, per-card flags, and the answer state of the
// card on screen. The deck and its cards are a read-only view; every
// mutation of session state happens behind one mutex, so score, streak,
// flags, and the attempt always move together.
type Session struct {
	ID string

	mu      sync.Mutex
	userID  uint
	deck    *models.Deck
	cards   []models.Card
	cardIDs map[string]bool

	tracker *feed.Tracker
	score   int
	streak  int
	// correct answers given in this deck, for progress reporting
	completed int

	liked      map[string]bool
	bookmarked map[string]bool
	aiHelped   map[string]bool

	attempt      Attempt
	advanceDelay time.Duration
	advanceTimer *time.Timer

	store    Store
	notifier Notifier
	log      *logger.Logger
	closed   bool
}

// New creates a session over a loaded deck. The cards are validated up
// front: a deck that violates the content invariants is a configuration
// error and is rejected here, not at answer time. Previously stored
// score/streak for this (user, deck) are restored when a store is present.
func New(cfg Config) (*Session, error) {
	if len(cfg.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	if err := models.ValidateCards(cfg.Cards); err != nil {
		return nil, fmt.Errorf("deck %s failed validation: %w", cfg.Deck.PublicID, err)
	}
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = DefaultAdvanceDelay
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNop()
	}

	s := &Session{
		ID:           uuid.NewString(),
		userID:       cfg.UserID,
		deck:         cfg.Deck,
		cards:        cfg.Cards,
		cardIDs:      make(map[string]bool, len(cfg.Cards)),
		tracker:      feed.NewTracker(),
		liked:        make(map[string]bool),
		bookmarked:   make(map[string]bool),
		aiHelped:     make(map[string]bool),
		advanceDelay: cfg.AdvanceDelay,
		store:        cfg.Store,
		notifier:     cfg.Notifier,
		log:          cfg.Log.With("deck", cfg.Deck.PublicID),
	}
	for i := range cfg.Cards {
		s.cardIDs[cfg.Cards[i].PublicID] = true
	}

	if s.store != nil {
		score, streak, err := s.store.LoadProgress(cfg.UserID, cfg.Deck.ID)
		if err != nil {
			s.log.Warn("could not restore progress", "error", err)
		} else {
			s.score = score
			s.streak = streak
		}
	}
	return s, nil
}

// SetNotifier attaches the presentation-layer notifier. Done after New
// because subscribers key their channels on the generated session ID.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// UserID returns the owning user.
func (s *Session) UserID() uint {
	return s.userID
}

// Card returns the card at the given index, if it exists.
func (s *Session) Card(index int) (*models.Card, bool) {
	if index < 0 || index >= len(s.cards) {
		return nil, false
	}
	return &s.cards[index], true
}

// Scroll feeds a viewport scroll event into the position tracker. When the
// active card changes, the attempt is reset so the new card starts clean.
func (s *Session) Scroll(offset, viewport float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	index, changed := s.tracker.OnScroll(offset, viewport, len(s.cards))
	if !changed {
		return false
	}
	s.attempt.reset()
	if s.notifier != nil {
		s.notifier.IndexChanged(index, float64(index)*viewport)
		s.notifier.StateChanged(s.stateLocked())
	}
	return true
}

// Submit evaluates an answer for the card currently on screen. Empty
// submissions and repeat submissions are rejected with no state change.
// A correct answer awards points, extends the streak, and schedules a
// single auto-advance after the feedback delay; an incorrect answer resets
// the streak and leaves the learner on the card.
func (s *Session) Submit(ans Answer) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.attempt.Submitted {
		return Result{}, false
	}
	card := &s.cards[s.tracker.Index()]
	if ans.empty(card.Kind) {
		return Result{}, false
	}

	correct := evaluate(card, ans)
	s.attempt = Attempt{Answer: &ans, Submitted: true, Correct: correct}

	if correct {
		s.score += PointsPerCorrect
		s.streak++
		s.completed++
		target := s.tracker.Index() + 1
		s.advanceTimer = time.AfterFunc(s.advanceDelay, func() {
			s.autoAdvance(target)
		})
	} else {
		s.streak = 0
	}

	s.saveProgressLocked()
	if s.notifier != nil {
		s.notifier.StateChanged(s.stateLocked())
	}
	return Result{
		Correct:     correct,
		Explanation: card.Explanation,
		Score:       s.score,
		Streak:      s.streak,
	}, true
}

// Advance moves the feed forward one card. Like the scroll-driven path it
// only accepts the single next index; everything else is ignored.
func (s *Session) Advance(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.advanceLocked(index)
}

// autoAdvance runs from the feedback timer. The target was captured when the
// answer was submitted; if the learner has scrolled elsewhere in the
// meantime the tracker rejects the stale step and nothing happens.
func (s *Session) autoAdvance(target int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.advanceLocked(target)
}

func (s *Session) advanceLocked(index int) bool {
	offset, ok := s.tracker.GoTo(index, len(s.cards))
	if !ok {
		return false
	}
	s.attempt.reset()
	if s.notifier != nil {
		s.notifier.IndexChanged(index, offset)
		s.notifier.StateChanged(s.stateLocked())
	}
	return true
}

// ToggleLiked flips like-membership for a card and returns the new state.
func (s *Session) ToggleLiked(cardID string) bool {
	return s.toggle(s.liked, cardID)
}

// ToggleBookmarked flips bookmark-membership for a card.
func (s *Session) ToggleBookmarked(cardID string) bool {
	return s.toggle(s.bookmarked, cardID)
}

// ToggleAIHelp flips the ai-help flag for a card.
func (s *Session) ToggleAIHelp(cardID string) bool {
	return s.toggle(s.aiHelped, cardID)
}

func (s *Session) toggle(set map[string]bool, cardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.cardIDs[cardID] {
		return false
	}
	if set[cardID] {
		delete(set, cardID)
	} else {
		set[cardID] = true
	}
	if s.notifier != nil {
		s.notifier.StateChanged(s.stateLocked())
	}
	return set[cardID]
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	index := s.tracker.Index()
	return State{
		SessionID:  s.ID,
		DeckID:     s.deck.PublicID,
		Index:      index,
		CardCount:  len(s.cards),
		CardID:     s.cards[index].PublicID,
		Score:      s.score,
		Streak:     s.streak,
		Attempt:    s.attempt,
		Liked:      setToSlice(s.liked),
		Bookmarked: setToSlice(s.bookmarked),
		AIHelped:   setToSlice(s.aiHelped),
	}
}

// Close tears the session down: the pending auto-advance, if any, is
// cancelled so nothing mutates a discarded session, and the final
// score/streak are written through to the store. Safe to call at any time,
// idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
	if s.store != nil {
		if err := s.store.SaveProgress(s.userID, s.deck.ID, s.score, s.streak, s.completed); err != nil {
			s.log.Error("could not persist progress on close", "error", err)
		}
	}
}

// saveProgressLocked writes score/streak through to the store without
// blocking the event that triggered it.
func (s *Session) saveProgressLocked() {
	if s.store == nil {
		return
	}
	userID, deckID := s.userID, s.deck.ID
	score, streak, completed := s.score, s.streak, s.completed
	log := s.log
	go func() {
		if err := s.store.SaveProgress(userID, deckID, score, streak, completed); err != nil {
			log.Warn("could not persist progress", "error", err)
		}
	}()
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
