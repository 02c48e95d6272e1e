package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CityGeneral/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "drjones",
		Role:     models.RoleDoctor,
	}
}

func TestNewTokenMakerRejectsShortSecret(t *testing.T) {
	_, err := NewTokenMaker("too-short", nil)
	require.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker, err := NewTokenMaker(testSecret, func() time.Time { return now })
	require.NoError(t, err)

	token, err := maker.Issue(testUser(), TokenKindAccess, 30*time.Minute)
	require.NoError(t, err)

	claims, err := maker.Verify(token, TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "drjones", claims.Username)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
	assert.Equal(t, TokenKindAccess, claims.Kind)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	maker, err := NewTokenMaker(testSecret, func() time.Time { return clock })
	require.NoError(t, err)

	token, err := maker.Issue(testUser(), TokenKindAccess, 30*time.Minute)
	require.NoError(t, err)

	clock = now.Add(31 * time.Minute)
	_, err = maker.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	maker, err := NewTokenMaker(testSecret, nil)
	require.NoError(t, err)

	refresh, err := maker.Issue(testUser(), TokenKindRefresh, time.Hour)
	require.NoError(t, err)

	_, err = maker.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	maker, err := NewTokenMaker(testSecret, nil)
	require.NoError(t, err)

	token, err := maker.Issue(testUser(), TokenKindAccess, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = maker.Verify(tampered, TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	maker, err := NewTokenMaker(testSecret, nil)
	require.NoError(t, err)
	other, err := NewTokenMaker("ffffffffffffffffffffffffffffffff", nil)
	require.NoError(t, err)

	token, err := maker.Issue(testUser(), TokenKindAccess, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	maker, err := NewTokenMaker(testSecret, nil)
	require.NoError(t, err)

	_, err = maker.Verify("not.a.token", TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = maker.Verify("", TokenKindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
