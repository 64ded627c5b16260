package services

import (
	"taskboard/internal/cache"
	"taskboard/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CachedTaskService struct {
	taskService TaskService
	cacheSupport
}

var _ TaskService = (*CachedTaskService)(nil)

func NewCachedTaskService(taskService TaskService, c cache.Cache, opts CacheOptions) *CachedTaskService {
	return &CachedTaskService{
		taskService:  taskService,
		cacheSupport: newCacheSupport(c, opts),
	}
}

func (s *CachedTaskService) GetTasks(db *gorm.DB) ([]models.Task, error) {
	var cached []models.Task
	token, hit := s.lookup(cache.KeyTasksAll, &cached)
	if hit {
		return cached, nil
	}

	tasks, err := s.taskService.GetTasks(db)
	if err != nil {
		return tasks, err
	}

	s.store(cache.KeyTasksAll, token, tasks, s.opts.ListTTL)
	return tasks, nil
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, task *models.Task) error {
	if err := s.taskService.CreateTask(db, task); err != nil {
		return err
	}
	s.invalidate(cache.KeyTasksAll, cache.KeyStats)
	return nil
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	return s.taskService.GetTaskByID(db, id)
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, update TaskUpdate) (models.Task, error) {
	task, err := s.taskService.UpdateTask(db, id, update)
	if err != nil {
		return task, err
	}
	s.invalidate(cache.KeyTasksAll, cache.KeyStats)
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	if err := s.taskService.DeleteTask(db, id); err != nil {
		return err
	}
	s.invalidate(cache.KeyTasksAll, cache.KeyStats)
	return nil
}
