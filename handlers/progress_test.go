package handlers

import "testing"

func TestProgressStoreUpsert(t *testing.T) {
	db := testDB(t)
	user := testUser(t, db)
	deck := seedDeck(t, db, user)
	store := &ProgressStore{DB: db}

	// Nothing stored yet: a fresh session starts from zero.
	score, streak, err := store.LoadProgress(user.ID, deck.ID)
	if err != nil || score != 0 || streak != 0 {
		t.Fatalf("LoadProgress on empty table: score=%d streak=%d err=%v", score, streak, err)
	}

	if err := store.SaveProgress(user.ID, deck.ID, 10, 1, 1); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	// Second save must update the same row, not insert a duplicate.
	if err := store.SaveProgress(user.ID, deck.ID, 30, 3, 3); err != nil {
		t.Fatalf("SaveProgress (update): %v", err)
	}

	score, streak, err = store.LoadProgress(user.ID, deck.ID)
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if score != 30 || streak != 3 {
		t.Fatalf("reloaded score=%d streak=%d, want 30 and 3", score, streak)
	}

	var count int64
	db.Table("progresses").Where("user_id = ? AND deck_id = ?", user.ID, deck.ID).Count(&count)
	if count != 1 {
		t.Fatalf("progress rows=%d, want exactly 1", count)
	}
}
