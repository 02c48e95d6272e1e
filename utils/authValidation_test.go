package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"CityGeneral/models"
)

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Username:  "nurse1",
		Email:     "nurse1@example.com",
		Password:  "Sup3rSecret",
		Role:      models.RoleNurse,
		FirstName: "Amina",
		LastName:  "Okafor",
	}
}

func TestValidateRegistrationPasses(t *testing.T) {
	assert.NoError(t, ValidateRegistration(validRegistration()))
}

func TestValidateRegistrationRejectsBadFields(t *testing.T) {
	in := validRegistration()
	in.Username = "ab"
	assert.Error(t, ValidateRegistration(in))

	in = validRegistration()
	in.Email = "not-an-email"
	assert.Error(t, ValidateRegistration(in))

	in = validRegistration()
	in.Role = models.Role("janitor")
	assert.Error(t, ValidateRegistration(in))

	in = validRegistration()
	in.FirstName = ""
	assert.Error(t, ValidateRegistration(in))
}

func TestValidateNewPasswordStrength(t *testing.T) {
	assert.NoError(t, ValidateNewPassword("Sup3rSecret"))

	assert.Error(t, ValidateNewPassword(""))
	assert.Error(t, ValidateNewPassword("Sh0rt"))
	assert.Error(t, ValidateNewPassword("alllowercase1"))
	assert.Error(t, ValidateNewPassword("ALLUPPERCASE1"))
	assert.Error(t, ValidateNewPassword("NoDigitsHere"))
}

func TestValidateNewPasswordNamesEveryViolation(t *testing.T) {
	err := ValidateNewPassword("abc")
	if assert.Error(t, err) {
		msg := err.Error()
		assert.Contains(t, msg, "at least 8 characters")
		assert.Contains(t, msg, "uppercase")
		assert.Contains(t, msg, "digit")
	}
}
