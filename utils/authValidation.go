package utils

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"CityGeneral/models"
)

var (
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
)

// RegistrationInput is the payload for creating a new identity.
type RegistrationInput struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     string      `json:"phone"`
}

// ValidateRegistration validates a registration payload with ozzo-validation.
func ValidateRegistration(in RegistrationInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePasswordStrength)),
		validation.Field(&in.Role, validation.Required, validation.By(validateRole)),
		validation.Field(&in.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.LastName, validation.Required, validation.Length(1, 50)),
	)
}

// ValidateNewPassword applies the strength rules to a candidate password.
func ValidateNewPassword(candidate string) error {
	return validation.Validate(candidate,
		validation.Required.Error("password cannot be blank"),
		validation.By(validatePasswordStrength),
	)
}

// validatePasswordStrength enforces length >= 8 plus at least one uppercase
// letter, one lowercase letter and one digit. Every missing rule is named.
func validatePasswordStrength(value interface{}) error {
	password, _ := value.(string)

	var violations []string
	if len(password) < 8 {
		violations = append(violations, "must be at least 8 characters long")
	}
	if !uppercaseRegex.MatchString(password) {
		violations = append(violations, "must contain at least one uppercase letter")
	}
	if !lowercaseRegex.MatchString(password) {
		violations = append(violations, "must contain at least one lowercase letter")
	}
	if !digitRegex.MatchString(password) {
		violations = append(violations, "must contain at least one digit")
	}
	if len(violations) > 0 {
		return errors.New(strings.Join(violations, "; "))
	}
	return nil
}

func validateRole(value interface{}) error {
	role, _ := value.(models.Role)
	if !role.Valid() {
		return errors.New("must be one of admin, doctor, nurse, receptionist")
	}
	return nil
}
