package services

import (
	"fmt"

	"taskboard/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskUpdate carries the fields of a PUT body. Nil fields are left alone.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

func (u TaskUpdate) apply(task *models.Task) {
	if u.Title != nil {
		task.Title = *u.Title
	}
	if u.Description != nil {
		task.Description = *u.Description
	}
	if u.Status != nil {
		task.Status = *u.Status
	}
	if u.Priority != nil {
		task.Priority = *u.Priority
	}
}

type TaskService interface {
	GetTasks(db *gorm.DB) ([]models.Task, error)
	CreateTask(db *gorm.DB, task *models.Task) error
	GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	UpdateTask(db *gorm.DB, id uuid.UUID, update TaskUpdate) (models.Task, error)
	DeleteTask(db *gorm.DB, id uuid.UUID) error
}

type taskService struct{}

func NewTaskService() TaskService {
	return &taskService{}
}

func (s *taskService) GetTasks(db *gorm.DB) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) CreateTask(db *gorm.DB, task *models.Task) error {
	task.ApplyDefaults()
	if err := db.Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *taskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return task, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func (s *taskService) UpdateTask(db *gorm.DB, id uuid.UUID, update TaskUpdate) (models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return task, fmt.Errorf("update task %s: %w", id, err)
	}

	update.apply(&task)
	if err := db.Save(&task).Error; err != nil {
		return task, fmt.Errorf("update task %s: %w", id, err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete task %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete task %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
