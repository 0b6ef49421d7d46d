package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"firecycle/internal/audit"
	"firecycle/internal/engine"
	"firecycle/internal/initiative"
	"firecycle/internal/profile"
	"firecycle/internal/store"
	"firecycle/internal/workspace"
)

const appName = "firecycle"

func main() {
	flag.String("workspace", "", "Path to workspace root")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: initiative deduplication and prioritization\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [command] [flags]\n\n", appName)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  init        Initialize a new workspace")
		fmt.Fprintln(os.Stderr, "  initiative  Manage tracked initiatives")
		fmt.Fprintln(os.Stderr, "  dedupe      Check a candidate initiative for duplicates")
		fmt.Fprintln(os.Stderr, "  recommend   Rank active initiatives into recommendations")
		fmt.Fprintln(os.Stderr, "  help        Show this help")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	workspacePath, remaining, err := extractWorkspaceFlag(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	args := remaining
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	switch args[0] {
	case "init":
		if err := runInit(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "initiative":
		if err := runInitiative(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "dedupe":
		if err := runDedupe(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "recommend":
		if err := runRecommend(args[1:], workspacePath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

func extractWorkspaceFlag(args []string) (string, []string, error) {
	var workspacePath string
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--workspace" {
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--workspace requires a value")
			}
			workspacePath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--workspace=") {
			workspacePath = strings.TrimPrefix(arg, "--workspace=")
			continue
		}
		remaining = append(remaining, arg)
	}
	return workspacePath, remaining, nil
}

func resolveWorkspace(root string) (*workspace.Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("--workspace is required")
	}
	return workspace.Resolve(root)
}

func runInit(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(workspacePath) == "" {
		return fmt.Errorf("--workspace is required")
	}

	root, err := workspace.ResolveRoot(workspacePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create workspace root: %w", err)
	}
	ws, err := workspace.Resolve(root)
	if err != nil {
		return err
	}

	logger := audit.NewLogger(ws.AuditDBPath)
	if err := logger.LogEvent("cli", "workspace_init_started", map[string]any{
		"workspace": ws.Root,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}
	var finishErr error
	defer func() {
		finishPayload := map[string]any{
			"workspace": ws.Root,
		}
		if finishErr != nil {
			finishPayload["error"] = finishErr.Error()
		}
		_ = logger.LogEvent("cli", "workspace_init_finished", finishPayload)
	}()

	if err := ws.EnsureDirs(); err != nil {
		finishErr = err
		return finishErr
	}
	if err := writeFileIfMissing(ws.ContextPath, minimalContextTemplate); err != nil {
		finishErr = err
		return finishErr
	}
	if err := writeFileIfMissing(filepath.Join(ws.ExamplesDir, "initiative.yml"), minimalInitiativeTemplate); err != nil {
		finishErr = err
		return finishErr
	}

	fmt.Fprintf(os.Stdout, "Initialized workspace: %s\n", ws.Root)
	fmt.Fprintln(os.Stdout, "Next steps:")
	fmt.Fprintf(os.Stdout, "  edit %s\n", ws.ContextPath)
	fmt.Fprintf(os.Stdout, "  %s initiative add --workspace %s --from examples/initiative.yml\n", appName, ws.Root)
	fmt.Fprintf(os.Stdout, "  %s recommend --workspace %s\n", appName, ws.Root)
	return nil
}

func runInitiative(args []string, workspacePath string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return fmt.Errorf("%s initiative: missing subcommand (add, list, show, set-status, set-progress)", appName)
	}

	switch args[0] {
	case "add":
		return runInitiativeAdd(args[1:], workspacePath)
	case "list":
		return runInitiativeList(args[1:], workspacePath)
	case "show":
		return runInitiativeShow(args[1:], workspacePath)
	case "set-status":
		return runInitiativeSetStatus(args[1:], workspacePath)
	case "set-progress":
		return runInitiativeSetProgress(args[1:], workspacePath)
	default:
		return fmt.Errorf("%s initiative: unknown subcommand %q", appName, args[0])
	}
}

func runInitiativeAdd(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("initiative add", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fromPath := fs.String("from", "", "Path to initiative YAML file")
	userID := fs.String("user", "", "User the initiative belongs to (default: context.yml user_id)")
	force := fs.Bool("force", false, "Insert even when the dedup verdict is skip or combine")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fromPath == "" {
		return fmt.Errorf("--from path is required")
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	candidate, fc, st, logger, err := loadDecisionInputs(ws, *fromPath, *userID)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := logger.LogEvent("cli", "initiative_add_started", map[string]any{
		"workspace": ws.Root,
		"from":      *fromPath,
		"user_id":   fc.UserID,
		"title":     candidate.Title,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}

	eng := engine.New(st, logger)
	ctx := context.Background()
	result := eng.CheckForDuplicates(ctx, candidate, fc)

	finishPayload := map[string]any{
		"user_id":    fc.UserID,
		"title":      candidate.Title,
		"duplicate":  result.IsDuplicate,
		"similarity": result.SimilarityScore,
		"action":     string(result.RecommendedAction),
	}

	blocked := result.RecommendedAction == engine.ActionSkip || result.RecommendedAction == engine.ActionCombine
	if blocked && !*force {
		printDedupeVerdict(result)
		finishPayload["inserted"] = false
		_ = logger.LogEvent("cli", "initiative_add_finished", finishPayload)
		return fmt.Errorf("duplicate of %q (similarity %.2f); re-run with --force to insert anyway",
			result.Existing.Title, result.SimilarityScore)
	}
	if result.IsDuplicate {
		printDedupeVerdict(result)
	}

	created, err := st.Create(ctx, fc.UserID, candidate)
	if err != nil {
		finishPayload["inserted"] = false
		finishPayload["error"] = err.Error()
		_ = logger.LogEvent("cli", "initiative_add_finished", finishPayload)
		return err
	}

	finishPayload["inserted"] = true
	finishPayload["id"] = created.ID
	_ = logger.LogEvent("cli", "initiative_add_finished", finishPayload)

	fmt.Fprintf(os.Stdout, "Added initiative %s: %s\n", created.ID, created.Title)
	return nil
}

func runInitiativeList(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("initiative list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	userID := fs.String("user", "", "User to list initiatives for (default: context.yml user_id)")
	statusFilter := fs.String("status", "", "Optional status filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}

	prof, err := profile.Load(ws.ContextPath)
	if err != nil {
		return err
	}
	user := *userID
	if user == "" {
		user = prof.UserID
	}
	if user == "" {
		return fmt.Errorf("--user is required (or set user_id in context.yml)")
	}

	var filter initiative.Status
	if *statusFilter != "" {
		filter, err = initiative.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
	}

	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.ListByUser(context.Background(), user)
	if err != nil {
		return err
	}

	shown := 0
	for _, item := range items {
		if filter != "" && item.Status != filter {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s  [%s]  %s (%d%%)\n", item.ID, item.Status, item.Title, item.Progress)
		shown++
	}
	fmt.Fprintf(os.Stdout, "%d initiative(s)\n", shown)
	return nil
}

func runInitiativeShow(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("initiative show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("initiative id is required")
	}
	id := fs.Arg(0)

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	item, err := st.Get(context.Background(), id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal initiative: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func runInitiativeSetStatus(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("initiative set-status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: %s initiative set-status <id> <status>", appName)
	}
	id := fs.Arg(0)
	status, err := initiative.ParseStatus(fs.Arg(1))
	if err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := audit.NewLogger(ws.AuditDBPath)
	if err := st.UpdateStatus(context.Background(), id, status); err != nil {
		_ = logger.LogEvent("cli", "initiative_status_change_failed", map[string]any{
			"id": id, "to": string(status), "error": err.Error(),
		})
		return err
	}
	_ = logger.LogEvent("cli", "initiative_status_changed", map[string]any{
		"id": id, "to": string(status),
	})

	fmt.Fprintf(os.Stdout, "Initiative %s moved to %s\n", id, status)
	return nil
}

func runInitiativeSetProgress(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("initiative set-progress", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: %s initiative set-progress <id> <percent>", appName)
	}
	id := fs.Arg(0)
	progress, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("parse progress: %w", err)
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpdateProgress(context.Background(), id, progress); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Initiative %s progress set to %d%%\n", id, progress)
	return nil
}

func runDedupe(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fromPath := fs.String("from", "", "Path to candidate initiative YAML file")
	userID := fs.String("user", "", "User whose pool to check against (default: context.yml user_id)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fromPath == "" {
		return fmt.Errorf("--from path is required")
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	candidate, fc, st, logger, err := loadDecisionInputs(ws, *fromPath, *userID)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := logger.LogEvent("cli", "dedupe_check_started", map[string]any{
		"workspace": ws.Root,
		"from":      *fromPath,
		"user_id":   fc.UserID,
		"title":     candidate.Title,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}

	eng := engine.New(st, logger)
	result := eng.CheckForDuplicates(context.Background(), candidate, fc)

	report := engine.DedupeReport{
		SchemaVersion: engine.DedupeReportSchemaVersion,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		UserID:        fc.UserID,
		Candidate:     candidate,
		Result:        result,
	}
	if result.Existing != nil {
		diff, diffErr := engine.DescriptionDiff(candidate, *result.Existing)
		if diffErr != nil {
			fmt.Fprintln(os.Stderr, "description diff failed:", diffErr)
		} else {
			report.DescriptionDiff = diff
		}
	}

	reportPath := filepath.Join(ws.ArtifactsDir, "dedupe",
		time.Now().UTC().Format("2006-01-02"), "report.json")
	if err := writeJSONReport(reportPath, report); err != nil {
		_ = logger.LogEvent("cli", "dedupe_check_finished", map[string]any{
			"user_id": fc.UserID, "error": err.Error(),
		})
		return err
	}

	_ = logger.LogEvent("cli", "dedupe_check_finished", map[string]any{
		"user_id":    fc.UserID,
		"duplicate":  result.IsDuplicate,
		"similarity": result.SimilarityScore,
		"action":     string(result.RecommendedAction),
		"report":     reportPath,
	})

	printDedupeVerdict(result)
	if report.DescriptionDiff != "" {
		fmt.Fprintln(os.Stdout, report.DescriptionDiff)
	}
	fmt.Fprintf(os.Stdout, "Wrote report: %s\n", reportPath)
	return nil
}

func runRecommend(args []string, workspacePath string) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	userID := fs.String("user", "", "User to rank initiatives for (default: context.yml user_id)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := resolveWorkspace(workspacePath)
	if err != nil {
		return err
	}
	if err := ws.EnsureDirs(); err != nil {
		return err
	}

	prof, err := profile.Load(ws.ContextPath)
	if err != nil {
		return err
	}
	fc := prof.Context(*userID)
	if fc.UserID == "" {
		return fmt.Errorf("--user is required (or set user_id in context.yml)")
	}

	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := audit.NewLogger(ws.AuditDBPath)
	if err := logger.LogEvent("cli", "recommend_started", map[string]any{
		"workspace": ws.Root,
		"user_id":   fc.UserID,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "audit log failed:", err)
	}

	ctx := context.Background()
	pool, poolErr := st.ListByUser(ctx, fc.UserID)
	poolSize := len(pool)
	if poolErr != nil {
		poolSize = 0
	}

	eng := engine.New(st, logger)
	recs := eng.Recommendations(ctx, fc)

	report := engine.RecommendationReport{
		SchemaVersion:   engine.RecommendationReportSchemaVersion,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		UserID:          fc.UserID,
		PoolSize:        poolSize,
		Recommendations: recs,
	}
	reportPath := filepath.Join(ws.ArtifactsDir, "recommendations",
		time.Now().UTC().Format("2006-01-02"), "report.json")
	if err := writeJSONReport(reportPath, report); err != nil {
		_ = logger.LogEvent("cli", "recommend_finished", map[string]any{
			"user_id": fc.UserID, "error": err.Error(),
		})
		return err
	}

	_ = logger.LogEvent("cli", "recommend_finished", map[string]any{
		"user_id":         fc.UserID,
		"pool_size":       poolSize,
		"recommendations": len(recs),
		"report":          reportPath,
	})

	if len(recs) == 0 {
		fmt.Fprintln(os.Stdout, "No active initiatives to recommend.")
	}
	for i, rec := range recs {
		fmt.Fprintf(os.Stdout, "%d. [%3d] %s (expected ROI %.0f)\n", i+1, rec.Priority, rec.Initiative.Title, rec.ExpectedROI)
		fmt.Fprintf(os.Stdout, "   %s\n", rec.Reasoning)
		for _, risk := range rec.RiskFactors {
			fmt.Fprintf(os.Stdout, "   risk: %s\n", risk)
		}
	}
	fmt.Fprintf(os.Stdout, "Wrote report: %s\n", reportPath)
	return nil
}

// loadDecisionInputs reads the candidate YAML, the context profile, and
// opens the store for commands that run the dedup gate.
func loadDecisionInputs(ws *workspace.Workspace, fromPath, userID string) (initiative.Initiative, engine.Context, *store.Store, *audit.Logger, error) {
	absFrom, err := ws.ResolvePath(fromPath)
	if err != nil {
		return initiative.Initiative{}, engine.Context{}, nil, nil, fmt.Errorf("resolve --from path: %w", err)
	}
	data, err := os.ReadFile(absFrom)
	if err != nil {
		return initiative.Initiative{}, engine.Context{}, nil, nil, fmt.Errorf("read candidate: %w", err)
	}
	candidate, err := initiative.ParseAndValidate(data, absFrom)
	if err != nil {
		return initiative.Initiative{}, engine.Context{}, nil, nil, err
	}

	prof, err := profile.Load(ws.ContextPath)
	if err != nil {
		return initiative.Initiative{}, engine.Context{}, nil, nil, err
	}
	fc := prof.Context(userID)
	if fc.UserID == "" {
		return initiative.Initiative{}, engine.Context{}, nil, nil, fmt.Errorf("--user is required (or set user_id in context.yml)")
	}

	st, err := store.Open(ws.StoreDBPath)
	if err != nil {
		return initiative.Initiative{}, engine.Context{}, nil, nil, err
	}

	return candidate, fc, st, audit.NewLogger(ws.AuditDBPath), nil
}

func printDedupeVerdict(result engine.DeduplicationResult) {
	if !result.IsDuplicate {
		fmt.Fprintf(os.Stdout, "No duplicate found (best similarity %.2f); proceed.\n", result.SimilarityScore)
		return
	}
	fmt.Fprintf(os.Stdout, "Duplicate of %q (similarity %.2f); recommended action: %s\n",
		result.Existing.Title, result.SimilarityScore, result.RecommendedAction)
	for _, opp := range result.ExpansionOpportunities {
		fmt.Fprintf(os.Stdout, "  expand: %s\n", opp)
	}
}

func writeJSONReport(path string, report any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeFileIfMissing(path string, contents string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", path, err)
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}

const minimalContextTemplate = `user_id: owner
business_context:
  industry: software
  company_size: small startup
  maturity: 40
  priorities:
    - revenue
    - customer retention
  constraints:
    - limited engineering time
available_resources:
  budget: 20000
  team_capacity: 4
  time_horizon_days: 90
`

const minimalInitiativeTemplate = `title: Improve lead conversion
description: Tighten the signup funnel to convert more trials into paying customers.
impact: High
confidence: 75
category: Revenue
estimated_value: "5000"
timeframe: 2-4 weeks
difficulty: Intermediate
status: concept
priority: high
resources:
  time_hours: 80
  cost: 4000
  people: 2
`
