package services

import (
	"fmt"

	"taskboard/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StatsService interface {
	GetStats(db *gorm.DB) (models.Stats, error)
}

type statsService struct{}

func NewStatsService() StatsService {
	return &statsService{}
}

// GetStats runs the four counts concurrently. The first failure cancels the
// queries still in flight.
func (s *statsService) GetStats(db *gorm.DB) (models.Stats, error) {
	g, ctx := errgroup.WithContext(db.Statement.Context)
	tx := db.WithContext(ctx)

	var total, completed, pending, users int64

	g.Go(func() error {
		return tx.Model(&models.Task{}).Count(&total).Error
	})
	g.Go(func() error {
		return tx.Model(&models.Task{}).Where("status = ?", models.TaskStatusCompleted).Count(&completed).Error
	})
	g.Go(func() error {
		return tx.Model(&models.Task{}).Where("status = ?", models.TaskStatusPending).Count(&pending).Error
	})
	g.Go(func() error {
		return tx.Model(&models.User{}).Count(&users).Error
	})

	if err := g.Wait(); err != nil {
		return models.Stats{}, fmt.Errorf("count stats: %w", err)
	}

	return models.NewStats(total, completed, pending, users), nil
}
