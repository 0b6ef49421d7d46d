package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"firecycle/internal/initiative"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "initiatives.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "u1", initiative.Initiative{
		Title:        "Automate invoice processing",
		Description:  "cut manual bookkeeping effort in half",
		Impact:       initiative.ImpactHigh,
		Confidence:   80,
		Category:     "Operations",
		Timeframe:    "2-4 weeks",
		Difficulty:   initiative.DifficultyIntermediate,
		Dependencies: []string{"billing-rework"},
		Resources:    initiative.Resources{TimeHours: 40, Cost: 5000, People: 2},
		Tags:         []string{"automation"},
		Metadata:     map[string]string{"source": "quarterly-review"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Create did not assign an id")
	}
	if created.Status != initiative.StatusConcept {
		t.Fatalf("default status = %s, want %s", created.Status, initiative.StatusConcept)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", created)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != created.Title || got.Impact != initiative.ImpactHigh || got.Confidence != 80 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Resources.Cost != 5000 || got.Resources.People != 2 {
		t.Fatalf("resources round trip mismatch: %+v", got.Resources)
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0] != "billing-rework" {
		t.Fatalf("dependencies round trip mismatch: %v", got.Dependencies)
	}
	if got.Metadata["source"] != "quarterly-review" {
		t.Fatalf("metadata round trip mismatch: %v", got.Metadata)
	}
	if got.CompletedAt != nil {
		t.Fatalf("fresh initiative carries completed_at: %v", got.CompletedAt)
	}
}

func TestCreateRequiresUserAndTitle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "", initiative.Initiative{Title: "x"}); err == nil {
		t.Fatalf("Create accepted an empty user id")
	}
	if _, err := s.Create(ctx, "u1", initiative.Initiative{}); err == nil {
		t.Fatalf("Create accepted an empty title")
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		item, err := s.Create(ctx, "u1", initiative.Initiative{Title: "same title"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestListByUserScopedToUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, spec := range []struct{ user, title string }{
		{"u1", "First"},
		{"u1", "Second"},
		{"u2", "Other user's work"},
	} {
		if _, err := s.Create(ctx, spec.user, initiative.Initiative{Title: spec.title}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := s.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d initiatives for u1, want 2", len(items))
	}
	for _, item := range items {
		if item.Title == "Other user's work" {
			t.Fatalf("listing leaked another user's initiative")
		}
	}

	empty, err := s.ListByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListByUser(nobody): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("got %d initiatives for unknown user, want 0", len(empty))
	}
}

func TestUpdateStatusEnforcesLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "u1", initiative.Initiative{Title: "Launch referral program"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateStatus(ctx, item.ID, initiative.StatusImplementation); err == nil {
		t.Fatalf("skipping planning was allowed")
	}
	for _, to := range []initiative.Status{
		initiative.StatusPlanning,
		initiative.StatusImplementation,
		initiative.StatusReview,
		initiative.StatusComplete,
	} {
		if err := s.UpdateStatus(ctx, item.ID, to); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", to, err)
		}
	}

	got, err := s.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != initiative.StatusComplete {
		t.Fatalf("status = %s, want complete", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatalf("completing did not stamp completed_at")
	}

	if err := s.UpdateStatus(ctx, item.ID, initiative.StatusPlanning); err == nil {
		t.Fatalf("transition out of complete was allowed")
	}
}

func TestUpdateStatusPauseAndResume(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "u1", initiative.Initiative{Title: "Rework onboarding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateStatus(ctx, item.ID, initiative.StatusPaused); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := s.UpdateStatus(ctx, item.ID, initiative.StatusComplete); err == nil {
		t.Fatalf("resume straight to complete was allowed")
	}
	if err := s.UpdateStatus(ctx, item.ID, initiative.StatusPlanning); err != nil {
		t.Fatalf("resume to planning: %v", err)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.UpdateStatus(context.Background(), "no-such-id", initiative.StatusPlanning)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item, err := s.Create(ctx, "u1", initiative.Initiative{Title: "Rework onboarding"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateProgress(ctx, item.ID, 40); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	got, err := s.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Progress != 40 {
		t.Fatalf("progress = %d, want 40", got.Progress)
	}

	if err := s.UpdateProgress(ctx, item.ID, 120); err == nil {
		t.Fatalf("out-of-range progress was accepted")
	}
	if err := s.UpdateProgress(ctx, "no-such-id", 10); err == nil {
		t.Fatalf("progress update on unknown id succeeded")
	}
}
