package controllers

import (
	"context"

	"shipdocs/shipdocs/services/ingest"
	"shipdocs/shipdocs/sources/psql/dao"
	"shipdocs/shipdocs/sources/psql/models"
	"shipdocs/shipdocs/sources/storage"
	"shipdocs/shipdocs/utils/types"
)

const runHistoryLimit = 20

type ScraperController struct {
	orchestrator *ingest.Orchestrator
	runs         *dao.ScraperRunDAO
	archive      *storage.MinIOClient
}

func NewScraperController(orchestrator *ingest.Orchestrator, runs *dao.ScraperRunDAO, archive *storage.MinIOClient) *ScraperController {
	return &ScraperController{
		orchestrator: orchestrator,
		runs:         runs,
		archive:      archive,
	}
}

// Start is fire-and-forget: the run record is created before this
// returns, the external process finishes on its own time.
func (c *ScraperController) Start(ctx context.Context) (*types.ScraperStartResponse, error) {
	run, err := c.orchestrator.Start(ctx)
	if err != nil {
		return nil, err
	}
	return &types.ScraperStartResponse{RunID: run.ID, Status: run.Status}, nil
}

// Status returns the most recently started run, or the never_run
// sentinel when no run record exists.
func (c *ScraperController) Status(ctx context.Context) (interface{}, error) {
	run, err := c.runs.GetLatestRun(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return types.ScraperNeverRun{Status: "never_run"}, nil
	}
	return run, nil
}

func (c *ScraperController) Runs(ctx context.Context) ([]models.ScraperRun, error) {
	return c.runs.ListRuns(ctx, runHistoryLimit)
}

// RunLog fetches the archived process output for a run. Returns empty
// when archival is not configured.
func (c *ScraperController) RunLog(ctx context.Context, runID string) (string, error) {
	if c.archive == nil {
		return "", nil
	}
	return c.archive.GetRunLog(ctx, runID)
}
