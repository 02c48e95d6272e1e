package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CityGeneral/config"
	"CityGeneral/models"
	"CityGeneral/utils"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUserRepository struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, userID int64) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepository) GetUserByUsernameOrEmail(_ context.Context, identifier string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetAllUsers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

type userServiceFixture struct {
	repo    *fakeUserRepository
	service UserService
	tokens  *utils.TokenMaker
	policy  *utils.PasswordPolicy
	now     time.Time
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tokens, err := utils.NewTokenMaker(testSecret, clock)
	require.NoError(t, err)
	policy := utils.NewPasswordPolicy(90, clock)
	repo := newFakeUserRepository()
	cfg := &config.AppConfig{
		TokenSecret:        testSecret,
		AccessTokenExpiry:  30 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	service := NewUserService(repo, tokens, policy, nil, cfg).(*userService)
	service.newLock = func(_ context.Context, _, _ string, _ time.Duration) (bool, error) {
		return true, nil
	}
	service.releaseLock = func(_ context.Context, _, _ string) error { return nil }
	return &userServiceFixture{
		repo:    repo,
		service: service,
		tokens:  tokens,
		policy:  policy,
		now:     now,
	}
}

func (f *userServiceFixture) addUser(t *testing.T, username, password string, active bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         models.RoleNurse,
		IsActive:     active,
	}
	f.policy.ApplyExpiry(user)
	require.NoError(t, f.repo.CreateUser(context.Background(), user))
	return user
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	f := newUserServiceFixture(t)
	f.addUser(t, "nurse1", "Sup3rSecret", true)

	byUsername, err := f.service.Login(context.Background(), "nurse1", "Sup3rSecret")
	require.NoError(t, err)
	assert.NotEmpty(t, byUsername.AccessToken)
	assert.NotEmpty(t, byUsername.RefreshToken)
	assert.Equal(t, "bearer", byUsername.TokenType)
	assert.Equal(t, 1800, byUsername.ExpiresIn)
	assert.Equal(t, 90, byUsername.DaysUntilExpiry)

	byEmail, err := f.service.Login(context.Background(), "nurse1@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, byUsername.User.ID, byEmail.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newUserServiceFixture(t)
	f.addUser(t, "nurse1", "Sup3rSecret", true)

	_, err := f.service.Login(context.Background(), "nurse1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.service.Login(context.Background(), "nobody", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	f := newUserServiceFixture(t)
	f.addUser(t, "nurse1", "Sup3rSecret", false)

	_, err := f.service.Login(context.Background(), "nurse1", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	f := newUserServiceFixture(t)
	f.addUser(t, "nurse1", "Sup3rSecret", true)

	result, err := f.service.Login(context.Background(), "nurse1", "Sup3rSecret")
	require.NoError(t, err)

	access, err := f.service.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	claims, err := f.tokens.Verify(access, utils.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "nurse1", claims.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newUserServiceFixture(t)
	f.addUser(t, "nurse1", "Sup3rSecret", true)

	result, err := f.service.Login(context.Background(), "nurse1", "Sup3rSecret")
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), result.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	f := newUserServiceFixture(t)
	user := f.addUser(t, "nurse1", "Sup3rSecret", true)

	result, err := f.service.Login(context.Background(), "nurse1", "Sup3rSecret")
	require.NoError(t, err)

	user.IsActive = false
	_, err = f.service.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestChangePasswordRules(t *testing.T) {
	f := newUserServiceFixture(t)
	user := f.addUser(t, "nurse1", "Sup3rSecret", true)

	err := f.service.ChangePassword(context.Background(), user, "wrong", "NewSecret1", "NewSecret1")
	assert.ErrorIs(t, err, ErrValidation)

	err = f.service.ChangePassword(context.Background(), user, "Sup3rSecret", "NewSecret1", "Different1")
	assert.ErrorIs(t, err, ErrValidation)

	err = f.service.ChangePassword(context.Background(), user, "Sup3rSecret", "Sup3rSecret", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrValidation)

	err = f.service.ChangePassword(context.Background(), user, "Sup3rSecret", "weak", "weak")
	assert.ErrorIs(t, err, ErrValidation)

	err = f.service.ChangePassword(context.Background(), user, "Sup3rSecret", "NewSecret1", "NewSecret1")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("NewSecret1", user.PasswordHash))
	assert.False(t, user.ForcePasswordChange)
}

func TestForcePasswordChangeAndReset(t *testing.T) {
	f := newUserServiceFixture(t)
	user := f.addUser(t, "nurse1", "Sup3rSecret", true)

	flagged, err := f.service.ForcePasswordChange(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, flagged.ForcePasswordChange)

	reset, err := f.service.ResetPasswordExpiry(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, reset.ForcePasswordChange)
	require.NotNil(t, reset.PasswordExpiresAt)
	assert.Equal(t, f.now.AddDate(0, 0, 90), *reset.PasswordExpiresAt)

	_, err = f.service.ForcePasswordChange(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func validRegistrationInput() utils.RegistrationInput {
	return utils.RegistrationInput{
		Username:  "reception1",
		Email:     "reception1@example.com",
		Password:  "Sup3rSecret",
		Role:      models.RoleReceptionist,
		FirstName: "Amina",
		LastName:  "Okafor",
	}
}

func TestRegisterStartsExpiryClock(t *testing.T) {
	f := newUserServiceFixture(t)

	user, err := f.service.Register(context.Background(), validRegistrationInput())
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.False(t, user.ForcePasswordChange)
	assert.True(t, utils.CheckPassword("Sup3rSecret", user.PasswordHash))
	assert.Equal(t, f.now, user.PasswordChangedAt)
	require.NotNil(t, user.PasswordExpiresAt)
	assert.Equal(t, f.now.AddDate(0, 0, 90), *user.PasswordExpiresAt)

	stored, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleReceptionist, stored.Role)
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	f := newUserServiceFixture(t)

	_, err := f.service.Register(context.Background(), validRegistrationInput())
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), validRegistrationInput())
	assert.ErrorIs(t, err, ErrConflict)

	byEmail := validRegistrationInput()
	byEmail.Username = "reception2"
	_, err = f.service.Register(context.Background(), byEmail)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	f := newUserServiceFixture(t)

	in := validRegistrationInput()
	in.Password = "weak"
	_, err := f.service.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)

	in = validRegistrationInput()
	in.Role = models.Role("janitor")
	_, err = f.service.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterContendedLockConflicts(t *testing.T) {
	f := newUserServiceFixture(t)
	svc := f.service.(*userService)
	svc.newLock = func(_ context.Context, _, _ string, _ time.Duration) (bool, error) {
		return false, nil
	}

	_, err := f.service.Register(context.Background(), validRegistrationInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPasswordExpiryReport(t *testing.T) {
	f := newUserServiceFixture(t)
	user := f.addUser(t, "nurse1", "Sup3rSecret", true)

	info := f.service.PasswordExpiry(user)
	assert.False(t, info.IsExpired)
	assert.Equal(t, 90, info.DaysUntilExpiry)
	assert.False(t, info.ForceChange)
}
