package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// SendEmail delivers a plain-text message through the configured SMTP relay.
// Fire-and-forget from the caller's perspective: failures are returned for
// logging only, never retried.
func SendEmail(toAddress, subject, body string) error {
	host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	port := strings.TrimSpace(os.Getenv("SMTP_PORT"))
	from := strings.TrimSpace(os.Getenv("SMTP_FROM"))
	if host == "" || port == "" || from == "" {
		return fmt.Errorf("SMTP_HOST, SMTP_PORT and SMTP_FROM are required")
	}

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + toAddress + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	return smtp.SendMail(host+":"+port, auth, from, []string{toAddress}, msg)
}
