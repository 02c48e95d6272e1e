package utils

import (
	"gopkg.in/gomail.v2"

	"CityGeneral/config"
)

// SendResetCodeEmail delivers a password reset code to the given address.
func SendResetCodeEmail(cfg *config.AppConfig, email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Reset Code")
	m.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<html>
	<body style="font-family: Arial, sans-serif;">
		<h1>Password Reset Code</h1>
		<p>Your password reset code is:</p>
		<p style="font-weight: bold; color: #007bff;">` + code + `</p>
		<p>If you did not request a password reset, please ignore this email.</p>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return d.DialAndSend(m)
}
