package dao

import (
	"context"
	"errors"
	"time"

	"shipdocs/shipdocs/sources/psql/models"

	"gorm.io/gorm"
)

type ScraperRunDAO struct {
	DB *gorm.DB
}

func NewScraperRunDAO(db *gorm.DB) *ScraperRunDAO {
	return &ScraperRunDAO{DB: db}
}

// CreateRun records a new run in the running state.
func (dao *ScraperRunDAO) CreateRun(ctx context.Context) (*models.ScraperRun, error) {
	run := &models.ScraperRun{
		Status:    models.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := dao.DB.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (dao *ScraperRunDAO) GetRun(ctx context.Context, id string) (*models.ScraperRun, error) {
	var run models.ScraperRun
	err := dao.DB.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// MarkCompleted transitions a running run to completed. Terminal runs are
// never touched; the status guard keeps them immutable.
func (dao *ScraperRunDAO) MarkCompleted(ctx context.Context, id string, documentsFound, chunksCreated *int) error {
	now := time.Now().UTC()
	return dao.DB.WithContext(ctx).
		Model(&models.ScraperRun{}).
		Where("id = ? AND status = ?", id, models.RunStatusRunning).
		Updates(map[string]interface{}{
			"status":          models.RunStatusCompleted,
			"documents_found": documentsFound,
			"chunks_created":  chunksCreated,
			"completed_at":    &now,
		}).Error
}

// MarkFailed transitions a running run to failed with the captured error text.
func (dao *ScraperRunDAO) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	now := time.Now().UTC()
	return dao.DB.WithContext(ctx).
		Model(&models.ScraperRun{}).
		Where("id = ? AND status = ?", id, models.RunStatusRunning).
		Updates(map[string]interface{}{
			"status":        models.RunStatusFailed,
			"error_message": errorMessage,
			"completed_at":  &now,
		}).Error
}

// GetLatestRun returns the most recently started run, or nil when the
// scraper has never run.
func (dao *ScraperRunDAO) GetLatestRun(ctx context.Context) (*models.ScraperRun, error) {
	var run models.ScraperRun
	err := dao.DB.WithContext(ctx).Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (dao *ScraperRunDAO) ListRuns(ctx context.Context, limit int) ([]models.ScraperRun, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []models.ScraperRun
	err := dao.DB.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
