package mailing

import (
	"Recipe-Website/internal/utils"
	"fmt"
	"html"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	// Mailer delivers a single message. Moderation uses it for user warnings.
	Mailer interface {
		Enabled() bool
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) Enabled() bool {
	return m.config.SMTPHost != "" && m.config.SMTPEmail != ""
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// WarningBody renders the HTML body of a moderator warning.
func WarningBody(displayName, message, appURL string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>A moderator has sent you a warning:</p><blockquote>%s</blockquote><p>Please review the community guidelines at <a href=\"%s\">%s</a>.</p>",
		html.EscapeString(displayName),
		html.EscapeString(message),
		appURL,
		appURL,
	)
}
