package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of staff roles. Authorization treats Admin as an
// implicit superuser for every role-gated operation except admin-only ones.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist:
		return true
	}
	return false
}

// User represents a staff identity with its password lifecycle state.
type User struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	Username     string `gorm:"size:50;not null;unique;index;column:username" json:"username"`
	Email        string `gorm:"size:100;not null;unique;index;column:email" json:"email"`
	PasswordHash string `gorm:"size:255;not null;column:password_hash" json:"-"`
	Role         Role   `gorm:"size:20;not null;column:role" json:"role"`
	FirstName    string `gorm:"size:50;not null;column:first_name" json:"first_name"`
	LastName     string `gorm:"size:50;not null;column:last_name" json:"last_name"`
	Phone        string `gorm:"size:20;column:phone" json:"phone"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"is_active"`

	PasswordChangedAt   time.Time  `gorm:"column:password_changed_at;autoCreateTime" json:"password_changed_at"`
	PasswordExpiresAt   *time.Time `gorm:"column:password_expires_at" json:"password_expires_at"`
	ForcePasswordChange bool       `gorm:"column:force_password_change;default:false" json:"force_password_change"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicProfile is the subset of identity fields returned to clients.
type PublicProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
}

// Profile returns the user's public profile fields.
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
	}
}

// SeedAdminUser creates the bootstrap administrator when no user exists yet.
// The seeded account must change its password on first login.
func SeedAdminUser(db *gorm.DB, passwordHash string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		admin := User{
			Username:            "admin",
			Email:               "admin@citygeneral.example",
			PasswordHash:        passwordHash,
			Role:                RoleAdmin,
			FirstName:           "System",
			LastName:            "Administrator",
			IsActive:            true,
			ForcePasswordChange: true,
		}
		return tx.Create(&admin).Error
	})
}
