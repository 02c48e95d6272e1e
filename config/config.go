package config

import "time"

// AppConfig holds the application configuration. It is loaded once in main
// and threaded explicitly into the pieces that need it; the token secret and
// password policy never come from ambient globals.
type AppConfig struct {
	DBURL        string
	RedisAddress string

	TokenSecret        string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	PasswordValidityDays int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	AllowedOrigins []string
}

// GetTokenSecret returns the signing secret for the token maker.
func (c *AppConfig) GetTokenSecret() string {
	return c.TokenSecret
}
