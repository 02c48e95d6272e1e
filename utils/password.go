package utils

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"CityGeneral/models"
)

// HashPassword hashes a password with bcrypt. Two calls on the same input
// produce different stored values; both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash. A
// malformed hash is a mismatch, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordPolicy carries the password-lifecycle rules. The validity window
// and the clock are fixed at construction so expiry math is deterministic in
// tests.
type PasswordPolicy struct {
	ValidityDays int
	Now          func() time.Time
}

// NewPasswordPolicy builds a policy. Zero validity days falls back to 90,
// a nil clock to time.Now.
func NewPasswordPolicy(validityDays int, now func() time.Time) *PasswordPolicy {
	if validityDays <= 0 {
		validityDays = 90
	}
	if now == nil {
		now = time.Now
	}
	return &PasswordPolicy{ValidityDays: validityDays, Now: now}
}

// ApplyExpiry restarts the user's expiry clock: changed_at becomes now,
// expires_at now plus the validity window, and the forced-change flag clears.
func (p *PasswordPolicy) ApplyExpiry(user *models.User) {
	now := p.Now()
	expires := now.AddDate(0, 0, p.ValidityDays)
	user.PasswordChangedAt = now
	user.PasswordExpiresAt = &expires
	user.ForcePasswordChange = false
}

// IsExpired reports whether the user's password has passed its expiry. A
// user without an expiry timestamp never expires.
func (p *PasswordPolicy) IsExpired(user *models.User) bool {
	if user.PasswordExpiresAt == nil {
		return false
	}
	return p.Now().After(*user.PasswordExpiresAt)
}

// DaysUntilExpiry returns the whole days left before expiry, never negative.
// The -1 sentinel means no expiry is set.
func (p *PasswordPolicy) DaysUntilExpiry(user *models.User) int {
	if user.PasswordExpiresAt == nil {
		return -1
	}
	days := int(user.PasswordExpiresAt.Sub(p.Now()).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
