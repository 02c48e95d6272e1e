package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"CityGeneral/cache"
	"CityGeneral/models"
)

const userCacheExpiry = 24 * time.Hour

// userCacheEntry is the redis encoding of a user. The model strips the
// password hash from client JSON, but the cache is server-side and must hand
// back the same identity the database would, hash included, or credential
// checks against a cache-resident user fail.
type userCacheEntry struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func encodeCachedUser(user *models.User) ([]byte, error) {
	return json.Marshal(userCacheEntry{User: *user, PasswordHash: user.PasswordHash})
}

func decodeCachedUser(data []byte) (*models.User, error) {
	var entry userCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	user := entry.User
	user.PasswordHash = entry.PasswordHash
	return &user, nil
}

type UserRepository interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(userID)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		if user, err := decodeCachedUser([]byte(cached)); err == nil {
			return user, nil
		}
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	if userJSON, err := encodeCachedUser(&user); err == nil {
		if err := r.cache.Set(ctx, cacheKey, userJSON, userCacheExpiry); err != nil {
			log.Printf("Failed to set user in cache: %v", err)
		}
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username or email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username/email existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getUserCacheKey(user.ID)); err != nil {
		log.Printf("Failed to invalidate user cache: %v", err)
	}
	return nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

func (r *userRepository) getUserCacheKey(userID int64) string {
	return fmt.Sprintf("user_cache:%d", userID)
}
