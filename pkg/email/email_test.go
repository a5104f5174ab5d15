package email

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-marketplace-backend/config"
)

func TestRenderApplicationStatus(t *testing.T) {
	body, err := RenderApplicationStatus(ApplicationStatusEmailData{
		FullName: "Ana <script>",
		JobTitle: "Logo design",
		Status:   "accepted",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Logo design")
	assert.Contains(t, body, "accepted")
	assert.Contains(t, body, "Ana &lt;script&gt;")
}

func TestSendApplicationStatus(t *testing.T) {
	svc := NewEmailService(&config.Config{
		SMTPHost:      "smtp.example.com",
		SMTPPort:      "587",
		SMTPUsername:  "user",
		SMTPPassword:  "secret",
		SMTPFromEmail: "noreply@example.com",
	})

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		assert.Equal(t, "noreply@example.com", from)
		return nil
	}

	err := svc.SendApplicationStatus("worker@example.com", ApplicationStatusEmailData{FullName: "Ana", JobTitle: "Logo", Status: "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"worker@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Your application for Logo")
}

func TestSendRequiresConfiguration(t *testing.T) {
	svc := NewEmailService(&config.Config{})
	assert.False(t, svc.IsConfigured())
	assert.Error(t, svc.SendWelcome("a@example.com", WelcomeEmailData{FullName: "A", Role: "worker"}))
}
