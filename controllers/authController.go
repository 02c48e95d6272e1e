package controllers

import (
	"github.com/gin-gonic/gin"

	"CityGeneral/handlers"
	"CityGeneral/middlewares"
	"CityGeneral/utils"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router.
// The change-password route bypasses the remediation gates so a caller with
// an expired or flagged password can still rotate it.
func (ac *AuthController) RegisterRoutes(router *gin.Engine, maker *utils.TokenMaker, users middlewares.UserFinder, policy *utils.PasswordPolicy) {
	// Public routes: no authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/refresh", ac.Handler.Refresh)
	router.POST("/auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/reset-password", ac.Handler.ResetPassword)

	// Change-password uses OptionalAuth plus its own presence check so the
	// expired-password and force-change gates do not lock the caller out of
	// the one route that fixes them.
	router.POST("/auth/change-password",
		middlewares.OptionalAuth(maker, users),
		func(c *gin.Context) {
			if _, ok := middlewares.CurrentUser(c); !ok {
				c.AbortWithStatusJSON(401, gin.H{"error": "Missing access token", "code": "unauthenticated"})
				return
			}
			c.Next()
		},
		ac.Handler.ChangePassword,
	)

	// Protected routes: requires a valid token and a healthy password
	authGroup := router.Group("/auth").Use(middlewares.RequireAuth(maker, users, policy))
	{
		authGroup.GET("/user/profile", ac.Handler.GetProfile)
		authGroup.PUT("/user/update-profile", ac.Handler.UpdateProfile)
		authGroup.GET("/password-expiry", ac.Handler.PasswordExpiry)
	}

	// Admin routes: requires a valid token and the admin role
	adminGroup := router.Group("/auth/admin").Use(
		middlewares.RequireAuth(maker, users, policy),
		middlewares.RequireAdmin(),
	)
	{
		adminGroup.POST("/register", ac.Handler.Register)
		adminGroup.GET("/manage-users", ac.Handler.GetAllUsers)
		adminGroup.POST("/users/:user_id/force-password-change", ac.Handler.ForcePasswordChange)
		adminGroup.POST("/users/:user_id/reset-password-expiry", ac.Handler.ResetPasswordExpiry)
	}
}
