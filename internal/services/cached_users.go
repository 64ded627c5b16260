package services

import (
	"taskboard/internal/cache"
	"taskboard/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CachedUserService struct {
	userService UserService
	cacheSupport
}

var _ UserService = (*CachedUserService)(nil)

func NewCachedUserService(userService UserService, c cache.Cache, opts CacheOptions) *CachedUserService {
	return &CachedUserService{
		userService:  userService,
		cacheSupport: newCacheSupport(c, opts),
	}
}

func (s *CachedUserService) GetUsers(db *gorm.DB) ([]models.User, error) {
	var cached []models.User
	token, hit := s.lookup(cache.KeyUsersAll, &cached)
	if hit {
		return cached, nil
	}

	users, err := s.userService.GetUsers(db)
	if err != nil {
		return users, err
	}

	s.store(cache.KeyUsersAll, token, users, s.opts.ListTTL)
	return users, nil
}

func (s *CachedUserService) CreateUser(db *gorm.DB, user *models.User) error {
	if err := s.userService.CreateUser(db, user); err != nil {
		return err
	}
	s.invalidate(cache.KeyUsersAll, cache.KeyStats)
	return nil
}

func (s *CachedUserService) GetUserByID(db *gorm.DB, id uuid.UUID) (models.User, error) {
	return s.userService.GetUserByID(db, id)
}

func (s *CachedUserService) UpdateUser(db *gorm.DB, id uuid.UUID, update UserUpdate) (models.User, error) {
	user, err := s.userService.UpdateUser(db, id, update)
	if err != nil {
		return user, err
	}
	s.invalidate(cache.KeyUsersAll)
	return user, nil
}

func (s *CachedUserService) DeleteUser(db *gorm.DB, id uuid.UUID) error {
	if err := s.userService.DeleteUser(db, id); err != nil {
		return err
	}
	s.invalidate(cache.KeyUsersAll, cache.KeyStats)
	return nil
}
