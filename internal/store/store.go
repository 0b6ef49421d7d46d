// Package store persists initiatives in SQLite and serves as the
// engine's initiative pool source.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"firecycle/internal/initiative"
)

// Store manages initiative records in SQLite.
type Store struct {
	DBPath string
	db     *sql.DB
}

// Open opens or creates the initiative database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	s := &Store{
		DBPath: absPath,
		db:     db,
	}

	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS initiatives (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	action TEXT,
	reasoning TEXT,
	impact TEXT,
	confidence INTEGER NOT NULL DEFAULT 0,
	category TEXT,
	estimated_value TEXT,
	timeframe TEXT,
	difficulty TEXT,
	status TEXT NOT NULL,
	priority TEXT,
	progress INTEGER NOT NULL DEFAULT 0,
	dependencies_json TEXT,
	resources_json TEXT,
	tags_json TEXT,
	metadata_json TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	completed_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_initiatives_user_status ON initiatives(user_id, status);
CREATE INDEX IF NOT EXISTS idx_initiatives_user_created ON initiatives(user_id, created_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create store schema: %w", err)
	}
	return nil
}

// Create inserts a new initiative for a user, assigning an id and
// timestamps. The id is a fresh UUID; ids are never reused. An empty
// status defaults to concept.
func (s *Store) Create(ctx context.Context, userID string, item initiative.Initiative) (initiative.Initiative, error) {
	if userID == "" {
		return initiative.Initiative{}, fmt.Errorf("user id is required")
	}
	if item.Title == "" {
		return initiative.Initiative{}, fmt.Errorf("title is required")
	}

	item.ID = uuid.NewString()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = initiative.StatusConcept
	}

	dependenciesJSON, err := marshalList(item.Dependencies)
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("marshal dependencies: %w", err)
	}
	resourcesJSON, err := json.Marshal(item.Resources)
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("marshal resources: %w", err)
	}
	tagsJSON, err := marshalList(item.Tags)
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("marshal tags: %w", err)
	}
	metadataJSON, err := marshalMap(item.Metadata)
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO initiatives (
			id, user_id, title, description, action, reasoning,
			impact, confidence, category, estimated_value, timeframe,
			difficulty, status, priority, progress,
			dependencies_json, resources_json, tags_json, metadata_json,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID, userID, item.Title, item.Description, item.Action, item.Reasoning,
		string(item.Impact), item.Confidence, item.Category, item.EstimatedValue, item.Timeframe,
		string(item.Difficulty), string(item.Status), string(item.Priority), item.Progress,
		dependenciesJSON, string(resourcesJSON), tagsJSON, metadataJSON,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("insert initiative: %w", err)
	}

	return item, nil
}

// Get retrieves an initiative by id.
func (s *Store) Get(ctx context.Context, id string) (initiative.Initiative, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM initiatives WHERE id = ?", id)
	item, _, err := scanInitiative(row)
	if err == sql.ErrNoRows {
		return initiative.Initiative{}, fmt.Errorf("initiative not found: %s", id)
	}
	if err != nil {
		return initiative.Initiative{}, fmt.Errorf("get initiative: %w", err)
	}
	return item, nil
}

// ListByUser returns every initiative for a user, oldest first. It
// implements the engine's pool source.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]initiative.Initiative, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+" FROM initiatives WHERE user_id = ? ORDER BY created_at ASC, id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("query initiatives: %w", err)
	}
	defer rows.Close()

	var items []initiative.Initiative
	for rows.Next() {
		item, _, scanErr := scanInitiative(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan initiative: %w", scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate initiatives: %w", err)
	}
	return items, nil
}

// UpdateStatus moves an initiative to a new lifecycle status, enforcing
// the transition graph. Completing an initiative stamps completed_at.
func (s *Store) UpdateStatus(ctx context.Context, id string, to initiative.Status) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !initiative.CanTransition(item.Status, to) {
		return fmt.Errorf("cannot transition initiative %s from %s to %s", id, item.Status, to)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var completedAt any
	if to == initiative.StatusComplete {
		completedAt = now
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE initiatives
		SET status = ?, updated_at = ?, completed_at = COALESCE(?, completed_at)
		WHERE id = ?
	`, string(to), now, completedAt, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// UpdateProgress sets the progress percentage for an initiative.
func (s *Store) UpdateProgress(ctx context.Context, id string, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		"UPDATE initiatives SET progress = ?, updated_at = ? WHERE id = ?",
		progress, now, id)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("initiative not found: %s", id)
	}
	return nil
}

const selectColumns = `
	SELECT id, user_id, title, description, action, reasoning,
	       impact, confidence, category, estimated_value, timeframe,
	       difficulty, status, priority, progress,
	       dependencies_json, resources_json, tags_json, metadata_json,
	       created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInitiative(row rowScanner) (initiative.Initiative, string, error) {
	var item initiative.Initiative
	var userID string
	var description, action, reasoning sql.NullString
	var impact, category, estimatedValue, timeframe sql.NullString
	var difficulty, priority sql.NullString
	var dependenciesJSON, resourcesJSON, tagsJSON, metadataJSON sql.NullString
	var createdAt, updatedAt string
	var completedAt sql.NullString

	err := row.Scan(
		&item.ID, &userID, &item.Title, &description, &action, &reasoning,
		&impact, &item.Confidence, &category, &estimatedValue, &timeframe,
		&difficulty, (*string)(&item.Status), &priority, &item.Progress,
		&dependenciesJSON, &resourcesJSON, &tagsJSON, &metadataJSON,
		&createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return initiative.Initiative{}, "", err
	}

	item.Description = description.String
	item.Action = action.String
	item.Reasoning = reasoning.String
	item.Impact = initiative.Impact(impact.String)
	item.Category = category.String
	item.EstimatedValue = estimatedValue.String
	item.Timeframe = timeframe.String
	item.Difficulty = initiative.Difficulty(difficulty.String)
	item.Priority = initiative.PriorityLabel(priority.String)

	if dependenciesJSON.Valid && dependenciesJSON.String != "" {
		if err := json.Unmarshal([]byte(dependenciesJSON.String), &item.Dependencies); err != nil {
			return initiative.Initiative{}, "", fmt.Errorf("unmarshal dependencies: %w", err)
		}
	}
	if resourcesJSON.Valid && resourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(resourcesJSON.String), &item.Resources); err != nil {
			return initiative.Initiative{}, "", fmt.Errorf("unmarshal resources: %w", err)
		}
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Tags); err != nil {
			return initiative.Initiative{}, "", fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &item.Metadata); err != nil {
			return initiative.Initiative{}, "", fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if completedAt.Valid && completedAt.String != "" {
		t, parseErr := time.Parse(time.RFC3339, completedAt.String)
		if parseErr == nil {
			item.CompletedAt = &t
		}
	}

	return item, userID, nil
}

func marshalList(values []string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func marshalMap(values map[string]string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
