// Package ingest launches the external document-ingestion process and
// tracks each attempt as a durable run record.
package ingest

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"shipdocs/shipdocs/config"
	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/psql/models"
	"shipdocs/shipdocs/sources/storage"
	"shipdocs/shipdocs/utils/logging"

	"go.uber.org/zap"
)

// The ingest script reports progress as human-readable lines; these are
// the only two markers we extract. Either may be absent.
var (
	pagesRe  = regexp.MustCompile(`Loaded (\d+) pages`)
	chunksRe = regexp.MustCompile(`Created (\d+) chunks`)
)

type Orchestrator struct {
	runs       *dao.ScraperRunDAO
	archive    *storage.MinIOClient
	python     string
	script     string
	persistDir string

	// OnComplete, when set, is invoked after the terminal store write for
	// a run. Tests use it to await completion without polling.
	OnComplete func(run *models.ScraperRun)
}

// NewOrchestrator wires the run store and process parameters. archive may
// be nil; run logs are then not persisted to object storage.
func NewOrchestrator(runs *dao.ScraperRunDAO, cfg config.Config, archive *storage.MinIOClient) *Orchestrator {
	return &Orchestrator{
		runs:       runs,
		archive:    archive,
		python:     cfg.PythonPath,
		script:     cfg.IngestScript,
		persistDir: cfg.VectorStorePath,
	}
}

// Start creates the run record synchronously and spawns the external
// process in the background. The caller gets the running record back
// immediately and observes completion by polling the run store.
// Concurrent starts each get an independent record; overlapping
// processes are not prevented.
func (o *Orchestrator) Start(ctx context.Context) (*models.ScraperRun, error) {
	run, err := o.runs.CreateRun(ctx)
	if err != nil {
		return nil, err
	}
	logging.AppLogger.Info("scraper run started",
		zap.String("run_id", run.ID),
		zap.String("script", o.script),
	)
	go o.execute(run.ID)
	return run, nil
}

// execute runs the ingest process to completion and records the outcome.
// It must always move the run out of the running state, including when
// the process cannot be spawned at all.
func (o *Orchestrator) execute(runID string) {
	ctx := context.Background()

	cmd := exec.Command(o.python, o.script)
	cmd.Env = append(os.Environ(), "PERSIST_DIR="+o.persistDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runErr == nil {
		docs := extractCount(pagesRe, stdout.String())
		chunks := extractCount(chunksRe, stdout.String())
		if err := o.runs.MarkCompleted(ctx, runID, docs, chunks); err != nil {
			logging.ErrorLogger.Error("failed to record scraper completion",
				zap.String("run_id", runID), zap.Error(err))
		}
	} else {
		msg := strings.TrimSpace(stderr.String())
		if _, exited := runErr.(*exec.ExitError); !exited {
			// spawn failure: no process output to report
			msg = runErr.Error()
		}
		if msg == "" {
			msg = "Process exited with non-zero code"
		}
		logging.ErrorLogger.Error("scraper run failed",
			zap.String("run_id", runID), zap.String("error_message", msg))
		if err := o.runs.MarkFailed(ctx, runID, msg); err != nil {
			logging.ErrorLogger.Error("failed to record scraper failure",
				zap.String("run_id", runID), zap.Error(err))
		}
	}

	o.archiveOutput(ctx, runID, stdout.String(), stderr.String())

	run, err := o.runs.GetRun(ctx, runID)
	if err != nil || run == nil {
		logging.ErrorLogger.Error("failed to reload scraper run",
			zap.String("run_id", runID), zap.Error(err))
		return
	}
	logging.AppLogger.Info("scraper run finished",
		zap.String("run_id", runID),
		zap.String("status", run.Status),
	)
	if o.OnComplete != nil {
		o.OnComplete(run)
	}
}

// archiveOutput is best effort; archival problems never affect the run record.
func (o *Orchestrator) archiveOutput(ctx context.Context, runID, stdout, stderr string) {
	if o.archive == nil {
		return
	}
	output := stdout
	if stderr != "" {
		output += "\n--- stderr ---\n" + stderr
	}
	if _, err := o.archive.UploadRunLog(ctx, runID, output); err != nil {
		logging.ErrorLogger.Error("failed to archive scraper run log",
			zap.String("run_id", runID), zap.Error(err))
	}
}

// extractCount pulls the first capture group as an int, or nil when the
// marker text is absent.
func extractCount(re *regexp.Regexp, output string) *int {
	match := re.FindStringSubmatch(output)
	if len(match) < 2 {
		return nil
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &n
}
