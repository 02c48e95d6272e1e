package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CityGeneral/middlewares"
	"CityGeneral/models"
	"CityGeneral/services"
	"CityGeneral/utils"
)

type AuthHandler struct {
	service services.UserService
}

func NewAuthHandler(service services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type profileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type sendResetCodeRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// Login accepts a username or an email in the username field.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	accessToken, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "token_type": "bearer"})
}

// Register creates a staff account. The route is admin-gated.
func (h *AuthHandler) Register(c *gin.Context) {
	var req utils.RegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Profile())
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.RespondError(c, services.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.RespondError(c, services.ErrInvalidCredentials)
		return
	}
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.UpdateProfile(c.Request.Context(), user, req.FirstName, req.LastName, req.Phone); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.RespondError(c, services.ErrInvalidCredentials)
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), user, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) PasswordExpiry(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.RespondError(c, services.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, h.service.PasswordExpiry(user))
}

// ForcePasswordChange flags another account for mandatory password rotation.
func (h *AuthHandler) ForcePasswordChange(c *gin.Context) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	target, err := h.service.ForcePasswordChange(c.Request.Context(), targetID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password change required on next login", "user": target.Profile()})
}

// ResetPasswordExpiry restarts another account's expiry clock.
func (h *AuthHandler) ResetPasswordExpiry(c *gin.Context) {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	target, err := h.service.ResetPasswordExpiry(c.Request.Context(), targetID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password expiry reset", "user": target.Profile()})
}

func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var req sendResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.SendResetCode(c.Request.Context(), req.Email); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.ResetPasswordWithCode(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	c.JSON(http.StatusOK, profiles)
}
