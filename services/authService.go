package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"CityGeneral/cache"
	"CityGeneral/config"
	"CityGeneral/database"
	"CityGeneral/models"
	"CityGeneral/repositories"
	"CityGeneral/utils"
)

// LoginResult is returned on a successful login: both tokens, the public
// profile, and the password-lifecycle advisories the client needs to route
// the user to a change-password flow.
type LoginResult struct {
	AccessToken         string               `json:"access_token"`
	RefreshToken        string               `json:"refresh_token"`
	TokenType           string               `json:"token_type"`
	ExpiresIn           int                  `json:"expires_in"`
	User                models.PublicProfile `json:"user"`
	DaysUntilExpiry     int                  `json:"days_until_password_expiry"`
	ForcePasswordChange bool                 `json:"force_password_change"`
}

// PasswordExpiryInfo reports the caller's password lifecycle state.
type PasswordExpiryInfo struct {
	IsExpired         bool       `json:"is_expired"`
	DaysUntilExpiry   int        `json:"days_until_expiry"`
	PasswordExpiresAt *time.Time `json:"password_expires_at"`
	ForceChange       bool       `json:"force_change"`
}

type UserService interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Register(ctx context.Context, in utils.RegistrationInput) (*models.User, error)
	ChangePassword(ctx context.Context, user *models.User, current, newPassword, confirm string) error
	PasswordExpiry(user *models.User) PasswordExpiryInfo
	ForcePasswordChange(ctx context.Context, targetID int64) (*models.User, error)
	ResetPasswordExpiry(ctx context.Context, targetID int64) (*models.User, error)
	SendResetCode(ctx context.Context, email string) error
	ResetPasswordWithCode(ctx context.Context, email, code, newPassword string) error
	UpdateProfile(ctx context.Context, user *models.User, firstName, lastName, phone string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	tokens   *utils.TokenMaker
	policy   *utils.PasswordPolicy
	cache    *cache.Cache
	cfg      *config.AppConfig

	// Lock acquisition is a seam so registration logic is testable without
	// a live redis.
	newLock     func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	releaseLock func(ctx context.Context, key, value string) error
}

func NewUserService(userRepo repositories.UserRepository, tokens *utils.TokenMaker, policy *utils.PasswordPolicy, cache *cache.Cache, cfg *config.AppConfig) UserService {
	return &userService{
		userRepo:    userRepo,
		tokens:      tokens,
		policy:      policy,
		cache:       cache,
		cfg:         cfg,
		newLock:     database.NewLock,
		releaseLock: database.ReleaseLock,
	}
}

// Login locates the identity by username or email and verifies the password.
// A correct password against a disabled account is reported as an inactive
// account, not as bad credentials.
func (s *userService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}
	if user == nil || !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	accessToken, err := s.tokens.Issue(user, utils.TokenKindAccess, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user, utils.TokenKindRefresh, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:         accessToken,
		RefreshToken:        refreshToken,
		TokenType:           "bearer",
		ExpiresIn:           int(s.cfg.AccessTokenExpiry.Seconds()),
		User:                user.Profile(),
		DaysUntilExpiry:     s.policy.DaysUntilExpiry(user),
		ForcePasswordChange: user.ForcePasswordChange,
	}, nil
}

// Refresh redeems a refresh token for a new access token. The identity must
// still exist and be active at redemption time.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, utils.TokenKindRefresh)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("refresh lookup failed: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}
	return s.tokens.Issue(user, utils.TokenKindAccess, s.cfg.AccessTokenExpiry)
}

// Register creates a new identity. New accounts start with the expiry clock
// already running. The admin-only gate is enforced at the route.
func (s *userService) Register(ctx context.Context, in utils.RegistrationInput) (*models.User, error) {
	if err := utils.ValidateRegistration(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	lockKey := fmt.Sprintf("user_lock:%s", in.Username)
	lockValue := uuid.New().String()
	locked, err := s.newLock(ctx, lockKey, lockValue, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: registration already in progress", ErrConflict)
	}
	defer func() {
		if err := s.releaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	exists, err := s.userRepo.UsernameOrEmailExists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("uniqueness check failed: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		IsActive:     true,
	}
	s.policy.ApplyExpiry(user)

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword is the self-service path; every rule failure is a
// validation error the caller can act on.
func (s *userService) ChangePassword(ctx context.Context, user *models.User, current, newPassword, confirm string) error {
	if !utils.CheckPassword(current, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}
	if newPassword != confirm {
		return fmt.Errorf("%w: new password and confirmation do not match", ErrValidation)
	}
	if newPassword == current {
		return fmt.Errorf("%w: new password must be different from current password", ErrValidation)
	}
	if err := utils.ValidateNewPassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	s.policy.ApplyExpiry(user)

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userService) PasswordExpiry(user *models.User) PasswordExpiryInfo {
	return PasswordExpiryInfo{
		IsExpired:         s.policy.IsExpired(user),
		DaysUntilExpiry:   s.policy.DaysUntilExpiry(user),
		PasswordExpiresAt: user.PasswordExpiresAt,
		ForceChange:       user.ForcePasswordChange,
	}
}

// ForcePasswordChange flags the target identity so it must replace its
// password before further access.
func (s *userService) ForcePasswordChange(ctx context.Context, targetID int64) (*models.User, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	target.ForcePasswordChange = true
	if err := s.userRepo.UpdateUser(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// ResetPasswordExpiry restarts the target's expiry clock and clears the
// forced-change flag.
func (s *userService) ResetPasswordExpiry(ctx context.Context, targetID int64) (*models.User, error) {
	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	s.policy.ApplyExpiry(target)
	if err := s.userRepo.UpdateUser(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// SendResetCode emails a short-lived reset code to the identity's address.
func (s *userService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, s.cache, user.Email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}
	if err := utils.SendResetCodeEmail(s.cfg, user.Email, code); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}

// ResetPasswordWithCode redeems an emailed reset code for a new password,
// restarting the expiry clock like any other password change.
func (s *userService) ResetPasswordWithCode(ctx context.Context, email, code, newPassword string) error {
	stored, err := utils.GetResetCode(ctx, s.cache, email)
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}
	if stored == nil || *stored != code {
		return ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	if err := utils.ValidateNewPassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	s.policy.ApplyExpiry(user)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return err
	}
	if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
		log.Printf("Failed to delete reset code: %v", err)
	}
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *models.User, firstName, lastName, phone string) error {
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phone != "" {
		user.Phone = phone
	}
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}
