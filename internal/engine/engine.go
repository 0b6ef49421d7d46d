// Package engine decides whether a proposed initiative duplicates one
// already tracked and ranks the active pool into a bounded, ordered set
// of recommendations. It is synchronous, stateless between calls, and
// never mutates the initiatives it is given.
package engine

import (
	"context"

	"firecycle/internal/audit"
	"firecycle/internal/initiative"
)

// Source reads the existing initiative pool for a user.
type Source interface {
	ListByUser(ctx context.Context, userID string) ([]initiative.Initiative, error)
}

// Engine evaluates candidates and ranks initiatives against a Source.
type Engine struct {
	Source Source
	Audit  *audit.Logger
}

// New returns an engine reading from the given source. The audit logger
// may be nil.
func New(source Source, logger *audit.Logger) *Engine {
	return &Engine{Source: source, Audit: logger}
}

// pool fetches the current initiative pool. Fetch failures are recorded
// and degraded to an empty pool; they never reach the caller. With no
// source configured the caller-supplied snapshot is used instead.
func (e *Engine) pool(ctx context.Context, fc Context) []initiative.Initiative {
	if e == nil || e.Source == nil {
		return fc.CurrentInitiatives
	}
	items, err := e.Source.ListByUser(ctx, fc.UserID)
	if err != nil {
		if e.Audit != nil {
			_ = e.Audit.LogEvent("engine", "initiative_fetch_failed", map[string]any{
				"user_id": fc.UserID,
				"error":   err.Error(),
			})
		}
		return nil
	}
	return items
}
