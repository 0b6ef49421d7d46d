package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"firecycle/internal/initiative"
)

func testContext() Context {
	return Context{
		UserID: "u1",
		Business: BusinessContext{
			CompanySize: "small startup",
			Priorities:  []string{"revenue"},
		},
		Resources: AvailableResources{Budget: 50000, TeamCapacity: 5, TimeHorizonDays: 90},
	}
}

func TestRecommendationsCapAndOrder(t *testing.T) {
	var pool []initiative.Initiative
	for i := 0; i < 8; i++ {
		pool = append(pool, initiative.Initiative{
			ID:         fmt.Sprintf("init-%d", i),
			Title:      fmt.Sprintf("Initiative %d", i),
			Impact:     initiative.ImpactMedium,
			Confidence: i * 10,
			Status:     initiative.StatusConcept,
		})
	}

	e := New(stubSource{items: pool}, nil)
	recs := e.Recommendations(context.Background(), testContext())

	if len(recs) != MaxRecommendationsPerCycle {
		t.Fatalf("got %d recommendations, want %d", len(recs), MaxRecommendationsPerCycle)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Priority < recs[i].Priority {
			t.Fatalf("recommendations out of order at %d: %d before %d", i, recs[i-1].Priority, recs[i].Priority)
		}
	}
	// Highest-confidence item wins when all else is equal.
	if recs[0].Initiative.ID != "init-7" {
		t.Fatalf("top recommendation = %s, want init-7", recs[0].Initiative.ID)
	}
}

func TestRecommendationsActiveOnly(t *testing.T) {
	pool := []initiative.Initiative{
		{ID: "a", Title: "A", Status: initiative.StatusConcept},
		{ID: "b", Title: "B", Status: initiative.StatusPlanning},
		{ID: "c", Title: "C", Status: initiative.StatusImplementation},
		{ID: "d", Title: "D", Status: initiative.StatusReview},
		{ID: "e", Title: "E", Status: initiative.StatusComplete},
		{ID: "f", Title: "F", Status: initiative.StatusPaused},
		{ID: "g", Title: "G", Status: initiative.StatusCancelled},
	}

	e := New(stubSource{items: pool}, nil)
	recs := e.Recommendations(context.Background(), testContext())

	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3 active", len(recs))
	}
	for _, r := range recs {
		if !r.Initiative.Status.Active() {
			t.Fatalf("inactive initiative %s recommended", r.Initiative.ID)
		}
	}
}

func TestRecommendationsStableForEqualPriority(t *testing.T) {
	pool := []initiative.Initiative{
		{ID: "first", Title: "Same shape", Status: initiative.StatusConcept},
		{ID: "second", Title: "Same shape", Status: initiative.StatusConcept},
	}

	e := New(stubSource{items: pool}, nil)
	recs := e.Recommendations(context.Background(), testContext())

	if len(recs) != 2 || recs[0].Initiative.ID != "first" || recs[1].Initiative.ID != "second" {
		t.Fatalf("equal-priority order not preserved: %s, %s", recs[0].Initiative.ID, recs[1].Initiative.ID)
	}
}

func TestRecommendationsFetchErrorEmpty(t *testing.T) {
	e := New(stubSource{err: errors.New("db locked")}, nil)
	if recs := e.Recommendations(context.Background(), testContext()); len(recs) != 0 {
		t.Fatalf("fetch failure produced recommendations: %v", recs)
	}
}

func TestRecommendationFieldsPopulated(t *testing.T) {
	pool := []initiative.Initiative{{
		ID:           "init-1",
		Title:        "Grow revenue through annual plans",
		Category:     "Revenue",
		Impact:       initiative.ImpactCritical,
		Confidence:   95,
		Difficulty:   initiative.DifficultyAdvanced,
		Dependencies: []string{"billing-rework"},
		Status:       initiative.StatusPlanning,
		Resources:    initiative.Resources{Cost: 20000},
	}}

	e := New(stubSource{items: pool}, nil)
	recs := e.Recommendations(context.Background(), testContext())
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	r := recs[0]

	if r.ExpectedROI <= 0 {
		t.Fatalf("ROI = %v, want positive", r.ExpectedROI)
	}
	if len(r.ImplementationPath) != 6 {
		t.Fatalf("path = %v, want the 6-step advanced plan", r.ImplementationPath)
	}
	if len(r.RiskFactors) == 0 {
		t.Fatalf("advanced work at a small startup carried no risk flags")
	}
	if r.SuccessMetrics[0] != successMetricsByCategory["revenue"][0] {
		t.Fatalf("metrics = %v, want revenue set", r.SuccessMetrics)
	}
	if !strings.Contains(r.Reasoning, "critical") {
		t.Fatalf("reasoning = %q, want a critical-impact clause", r.Reasoning)
	}
	if !strings.Contains(r.Reasoning, "Confidence in the expected outcome is high.") {
		t.Fatalf("reasoning = %q, want a high-confidence clause", r.Reasoning)
	}
}

func TestBuildReasoningBands(t *testing.T) {
	item := initiative.Initiative{}
	cases := []struct {
		priority int
		want     string
	}{
		{85, "critical business impact"},
		{70, "good alignment"},
		{40, "moderate priority"},
	}
	for _, tc := range cases {
		if got := buildReasoning(item, tc.priority); !strings.Contains(got, tc.want) {
			t.Fatalf("reasoning(%d) = %q, want mention of %q", tc.priority, got, tc.want)
		}
	}
}
