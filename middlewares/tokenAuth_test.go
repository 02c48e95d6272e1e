package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CityGeneral/models"
	"CityGeneral/utils"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUserFinder struct {
	users map[int64]*models.User
	err   error
}

func (f *fakeUserFinder) GetUserByID(_ context.Context, userID int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[userID], nil
}

type authFixture struct {
	maker  *utils.TokenMaker
	finder *fakeUserFinder
	policy *utils.PasswordPolicy
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker, err := utils.NewTokenMaker(testSecret, func() time.Time { return now })
	require.NoError(t, err)
	return &authFixture{
		maker:  maker,
		finder: &fakeUserFinder{users: map[int64]*models.User{}},
		policy: utils.NewPasswordPolicy(90, func() time.Time { return now }),
		now:    now,
	}
}

func (f *authFixture) addUser(t *testing.T, id int64, role models.Role) *models.User {
	t.Helper()
	expires := f.now.AddDate(0, 0, 60)
	user := &models.User{
		ID:                id,
		Username:          "user",
		Role:              role,
		IsActive:          true,
		PasswordExpiresAt: &expires,
	}
	f.finder.users[id] = user
	return user
}

func (f *authFixture) token(t *testing.T, user *models.User, kind utils.TokenKind) string {
	t.Helper()
	token, err := f.maker.Issue(user, kind, 30*time.Minute)
	require.NoError(t, err)
	return token
}

func performRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func protectedRouter(f *authFixture, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(f.maker, f.finder, f.policy)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/protected", chain...)
	return router
}

func TestRequireAuthMissingToken(t *testing.T) {
	f := newAuthFixture(t)
	w := performRequest(protectedRouter(f), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	f := newAuthFixture(t)
	w := performRequest(protectedRouter(f), "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindRefresh))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthUnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	ghost := &models.User{ID: 99, Username: "ghost", Role: models.RoleNurse}
	w := performRequest(protectedRouter(f), f.token(t, ghost, utils.TokenKindAccess))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestRequireAuthPassesValidUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthExpiredPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	past := f.now.Add(-time.Hour)
	user.PasswordExpiresAt = &past

	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "password_expired")
}

func TestRequireAuthForcePasswordChange(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	user.ForcePasswordChange = true

	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "password_change_required")
}

func TestRequireAuthInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	user.IsActive = false

	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "inactive_account")
}

func TestRequireAuthExpiringSoonHeader(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	soon := f.now.AddDate(0, 0, 5)
	user.PasswordExpiresAt = &soon

	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Password-Expires-Soon"))
}

func TestRequireAuthNoHeaderWhenFarFromExpiry(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)

	w := performRequest(protectedRouter(f), f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Password-Expires-Soon"))
}

func TestRequireRoleMatch(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleDoctor)

	router := protectedRouter(f, RequireRole(models.RoleDoctor))
	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleMismatch(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleReceptionist)

	router := protectedRouter(f, RequireRole(models.RoleDoctor))
	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_role")
}

func TestRequireRoleAdminBypass(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleAdmin)

	router := protectedRouter(f, RequireRole(models.RoleDoctor))
	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsOtherRoles(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleDoctor)

	router := protectedRouter(f, RequireAdmin())
	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleAdmin)

	router := protectedRouter(f, RequireAdmin())
	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	f := newAuthFixture(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", OptionalAuth(f.maker, f.finder), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := performRequest(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}

func TestOptionalAuthWithValidToken(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addUser(t, 1, models.RoleNurse)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", OptionalAuth(f.maker, f.finder), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := performRequest(router, f.token(t, user, utils.TokenKindAccess))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}
