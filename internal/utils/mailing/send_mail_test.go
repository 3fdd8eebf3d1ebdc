package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailerEnabled(t *testing.T) {
	assert.False(t, NewMailer(MailConfig{}).Enabled())
	assert.True(t, NewMailer(MailConfig{SMTPHost: "smtp.test", SMTPEmail: "noreply@test"}).Enabled())
}

func TestSendMailRejectsBadPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "smtp.test", SMTPPort: "not-a-port", SMTPEmail: "noreply@test"})
	assert.Error(t, m.SendMail("user@test", "subject", "body"))
}

func TestWarningBodyEscapes(t *testing.T) {
	body := WarningBody("Eve <script>", "stop <b>spamming</b>", "http://localhost:8080")
	assert.Contains(t, body, "Eve &lt;script&gt;")
	assert.Contains(t, body, "stop &lt;b&gt;spamming&lt;/b&gt;")
	assert.Contains(t, body, "http://localhost:8080")
}
