package handlers_test

import (
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetTasks(db *gorm.DB) ([]models.Task, error) {
	args := m.Called()
	tasks, _ := args.Get(0).([]models.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskService) CreateTask(db *gorm.DB, task *models.Task) error {
	args := m.Called(task)
	if args.Error(0) == nil {
		task.ApplyDefaults()
		task.ID = uuid.Must(uuid.NewV4())
	}
	return args.Error(0)
}

func (m *MockTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	args := m.Called(id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, update services.TaskUpdate) (models.Task, error) {
	args := m.Called(id, update)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(db *gorm.DB) ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockUserService) CreateUser(db *gorm.DB, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ApplyDefaults()
		user.ID = uuid.Must(uuid.NewV4())
	}
	return args.Error(0)
}

func (m *MockUserService) GetUserByID(db *gorm.DB, id uuid.UUID) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(db *gorm.DB, id uuid.UUID, update services.UserUpdate) (models.User, error) {
	args := m.Called(id, update)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(db *gorm.DB, id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(db *gorm.DB) (models.Stats, error) {
	args := m.Called()
	return args.Get(0).(models.Stats), args.Error(1)
}
