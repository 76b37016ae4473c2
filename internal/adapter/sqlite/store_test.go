package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "recitations.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecitation(id, learnerID string, createdAt time.Time) *domain.Recitation {
	return &domain.Recitation{
		ID:           id,
		LearnerID:    learnerID,
		AyahID:       "001001",
		ExpectedText: "بِسْمِ اللَّهِ",
		Status:       domain.StatusDone,
		Feedback: &domain.RecitationFeedback{
			OverallScore: 94,
			Accuracy:     100,
			TimingScore:  90,
			FluencyScore: 80,
			Hasanat:      658,
			Message:      "Excellent recitation! Your pronunciation is very accurate.",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleRecitation("rec-1", "learner-1", time.Now())
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "learner-1", "rec-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != want.ID || got.LearnerID != want.LearnerID || got.AyahID != want.AyahID {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Status != domain.StatusDone {
		t.Errorf("status = %s, want done", got.Status)
	}
	if got.Feedback == nil || got.Feedback.OverallScore != 94 || got.Feedback.Hasanat != 658 {
		t.Errorf("feedback not round-tripped: %+v", got.Feedback)
	}
}

func TestStore_GetScopedToLearner(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleRecitation("rec-1", "learner-1", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := store.Get(ctx, "learner-2", "rec-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-learner get err = %v, want ErrNotFound", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get(context.Background(), "learner-1", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		rec := sampleRecitation(
			"rec-"+string(rune('a'+i)),
			"learner-1",
			base.Add(time.Duration(i)*time.Minute),
		)
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	// Another learner's history must not leak in.
	if err := store.Save(ctx, sampleRecitation("other", "learner-2", base)); err != nil {
		t.Fatalf("save other: %v", err)
	}

	got, err := store.List(ctx, "learner-1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "rec-e" || got[2].ID != "rec-c" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].ID, got[1].ID, got[2].ID)
	}
	for _, rec := range got {
		if rec.LearnerID != "learner-1" {
			t.Errorf("leaked recitation from %s", rec.LearnerID)
		}
	}
}
