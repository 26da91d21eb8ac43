package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studytok/api/logger"
	"github.com/studytok/api/models"
	"github.com/studytok/api/utils"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named per test so parallel-opened pool connections share one database
	// without leaking rows between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Deck{}, &models.Card{}, &models.Progress{}, &models.Import{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Email: "learner@example.com", Nickname: "learner", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedDeck(t *testing.T, db *gorm.DB, owner *models.User) *models.Deck {
	t.Helper()
	deck := &models.Deck{
		PublicID: "deck-go", Title: "Go Basics", Subject: "Programming",
		UserID: owner.ID, IsPublic: true, TotalCards: 2,
	}
	if err := db.Create(deck).Error; err != nil {
		t.Fatalf("create deck: %v", err)
	}
	cards := []models.Card{
		{PublicID: "card-1", DeckID: deck.ID, Kind: models.CardKindMultipleChoice,
			Prompt: "Keyword that starts a goroutine?", Options: []string{"go", "run", "async", "spawn"},
			CorrectIndex: 0, Explanation: "The go statement."},
		{PublicID: "card-2", DeckID: deck.ID, Kind: models.CardKindShortAnswer,
			Prompt: "Builtin for channel creation?", Answer: "make", Explanation: "make(chan T)."},
	}
	for i := range cards {
		if err := db.Create(&cards[i]).Error; err != nil {
			t.Fatalf("create card: %v", err)
		}
	}
	return deck
}

// asUser registers a handler that runs with the given user already attached
// to the request context, standing in for the auth middleware.
func asUser(user *models.User, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), utils.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func nopLog() *logger.Logger {
	return logger.NewNop()
}
