package services

import (
	"fmt"

	"taskboard/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (u UserUpdate) apply(user *models.User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
}

type UserService interface {
	GetUsers(db *gorm.DB) ([]models.User, error)
	CreateUser(db *gorm.DB, user *models.User) error
	GetUserByID(db *gorm.DB, id uuid.UUID) (models.User, error)
	UpdateUser(db *gorm.DB, id uuid.UUID, update UserUpdate) (models.User, error)
	DeleteUser(db *gorm.DB, id uuid.UUID) error
}

type userService struct{}

func NewUserService() UserService {
	return &userService{}
}

func (s *userService) GetUsers(db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) CreateUser(db *gorm.DB, user *models.User) error {
	user.ApplyDefaults()
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) GetUserByID(db *gorm.DB, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return user, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) UpdateUser(db *gorm.DB, id uuid.UUID, update UserUpdate) (models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return user, fmt.Errorf("update user %s: %w", id, err)
	}

	update.apply(&user)
	if err := db.Save(&user).Error; err != nil {
		return user, fmt.Errorf("update user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) DeleteUser(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete user %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete user %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
