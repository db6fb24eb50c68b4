package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shipdocs/shipdocs/config"
	"shipdocs/shipdocs/sources/psql"
	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/psql/models"
	"shipdocs/shipdocs/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupOrchestrator(t *testing.T, script string) (*dao.ScraperRunDAO, *Orchestrator, chan *models.ScraperRun) {
	logging.InitLogger() // ensures loggers aren't nil

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	runDAO := dao.NewScraperRunDAO(db)

	cfg := config.Config{
		PythonPath:      "/bin/sh",
		IngestScript:    writeScript(t, script),
		VectorStorePath: t.TempDir(),
	}
	orch := NewOrchestrator(runDAO, cfg, nil)

	done := make(chan *models.ScraperRun, 1)
	orch.OnComplete = func(run *models.ScraperRun) { done <- run }
	return runDAO, orch, done
}

func writeScript(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "ingest.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func awaitRun(t *testing.T, done chan *models.ScraperRun) *models.ScraperRun {
	select {
	case run := <-done:
		return run
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for run completion")
		return nil
	}
}

// --- Tests ---

func TestStart_RecordIsRunningImmediately(t *testing.T) {
	runDAO, orch, done := setupOrchestrator(t, "#!/bin/sh\nsleep 0.3\n")
	ctx := context.Background()

	run, err := orch.Start(ctx)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if run.Status != models.RunStatusRunning {
		t.Errorf("expected running, got %s", run.Status)
	}

	latest, err := runDAO.GetLatestRun(ctx)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest.ID != run.ID || latest.Status != models.RunStatusRunning {
		t.Errorf("status query before exit should see the running record")
	}

	awaitRun(t, done)
}

func TestRun_CompletedWithCounts(t *testing.T) {
	_, orch, done := setupOrchestrator(t,
		"#!/bin/sh\necho 'Loaded 42 pages'\necho 'Created 100 chunks'\nexit 0\n")

	if _, err := orch.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	run := awaitRun(t, done)

	if run.Status != models.RunStatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status)
	}
	if run.DocumentsFound == nil || *run.DocumentsFound != 42 {
		t.Errorf("expected documentsFound=42, got %v", run.DocumentsFound)
	}
	if run.ChunksCreated == nil || *run.ChunksCreated != 100 {
		t.Errorf("expected chunksCreated=100, got %v", run.ChunksCreated)
	}
	if run.CompletedAt == nil {
		t.Errorf("expected completion timestamp")
	}
	if run.ErrorMessage != nil {
		t.Errorf("completed run must have no error message")
	}
}

func TestRun_CompletedWithMissingMarkers(t *testing.T) {
	_, orch, done := setupOrchestrator(t, "#!/bin/sh\necho 'nothing to report'\nexit 0\n")

	if _, err := orch.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	run := awaitRun(t, done)

	if run.Status != models.RunStatusCompleted {
		t.Fatalf("expected completed, got %s", run.Status)
	}
	if run.DocumentsFound != nil || run.ChunksCreated != nil {
		t.Errorf("absent markers must leave counts null")
	}
}

func TestRun_FailedCapturesStderr(t *testing.T) {
	_, orch, done := setupOrchestrator(t,
		"#!/bin/sh\necho 'Loaded 42 pages'\necho 'could not reach docs host' >&2\nexit 1\n")

	if _, err := orch.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	run := awaitRun(t, done)

	if run.Status != models.RunStatusFailed {
		t.Fatalf("expected failed, got %s", run.Status)
	}
	if run.ErrorMessage == nil || *run.ErrorMessage != "could not reach docs host" {
		t.Errorf("expected stderr as error message, got %v", run.ErrorMessage)
	}
	if run.DocumentsFound != nil || run.ChunksCreated != nil {
		t.Errorf("failed run must keep counts null")
	}
}

func TestRun_FailedWithEmptyStderrGetsGenericMessage(t *testing.T) {
	_, orch, done := setupOrchestrator(t, "#!/bin/sh\nexit 3\n")

	if _, err := orch.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	run := awaitRun(t, done)

	if run.Status != models.RunStatusFailed {
		t.Fatalf("expected failed, got %s", run.Status)
	}
	if run.ErrorMessage == nil || *run.ErrorMessage != "Process exited with non-zero code" {
		t.Errorf("expected generic error message, got %v", run.ErrorMessage)
	}
}

func TestRun_SpawnFailureStillTerminates(t *testing.T) {
	runDAO, orch, done := setupOrchestrator(t, "#!/bin/sh\n")
	orch.python = "/nonexistent/interpreter"

	if _, err := orch.Start(context.Background()); err != nil {
		t.Fatalf("start itself should succeed: %v", err)
	}
	run := awaitRun(t, done)

	if run.Status != models.RunStatusFailed {
		t.Fatalf("spawn failure must end in failed, got %s", run.Status)
	}
	if run.ErrorMessage == nil || *run.ErrorMessage == "" {
		t.Errorf("expected a non-empty error message")
	}

	latest, _ := runDAO.GetLatestRun(context.Background())
	if latest.Status == models.RunStatusRunning {
		t.Errorf("run record stuck in running after spawn failure")
	}
}

func TestConcurrentStarts_IndependentRecords(t *testing.T) {
	runDAO, orch, done := setupOrchestrator(t, "#!/bin/sh\nexit 0\n")
	ctx := context.Background()

	a, err := orch.Start(ctx)
	if err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	b, err := orch.Start(ctx)
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("concurrent starts must get independent records")
	}

	awaitRun(t, done)
	awaitRun(t, done)

	runs, err := runDAO.ListRuns(ctx, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 run records, got %d", len(runs))
	}
	for _, run := range runs {
		if run.Status != models.RunStatusCompleted {
			t.Errorf("run %s expected completed, got %s", run.ID, run.Status)
		}
	}
}

func TestExtractCount(t *testing.T) {
	out := "starting\nLoaded 7 pages\nCreated 19 chunks\ndone\n"
	if n := extractCount(pagesRe, out); n == nil || *n != 7 {
		t.Errorf("expected 7 pages, got %v", n)
	}
	if n := extractCount(chunksRe, out); n == nil || *n != 19 {
		t.Errorf("expected 19 chunks, got %v", n)
	}
	if n := extractCount(pagesRe, "no markers here"); n != nil {
		t.Errorf("expected nil for missing marker, got %v", n)
	}
}
