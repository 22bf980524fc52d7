package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendInvoice_BuildsMessage(t *testing.T) {
	svc := NewEmailService(EmailConfig{SMTPHost: "mail.local", SMTPPort: 25, FromName: "Front Desk", FromEmail: "desk@resort.test"})

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Nil(t, a, "no credentials configured")
		return nil
	}

	err := svc.SendInvoice("guest@example.com", "Asha <VIP>", "R-12", "Sea Breeze", "TOTAL   1180")
	require.NoError(t, err)

	assert.Equal(t, "mail.local:25", gotAddr)
	assert.Equal(t, []string{"guest@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Your bill R-12 - Sea Breeze\r\n")
	assert.Contains(t, gotMsg, "<pre")
	assert.Contains(t, gotMsg, "TOTAL   1180")
	assert.Contains(t, gotMsg, "Asha &lt;VIP&gt;")
}

func TestSendInvoice_NotConfigured(t *testing.T) {
	svc := NewEmailService(EmailConfig{})

	assert.Error(t, svc.SendInvoice("guest@example.com", "Asha", "R-1", "Sea Breeze", "x"))
}

func TestSendInvoice_WrapsTransportError(t *testing.T) {
	svc := NewEmailService(EmailConfig{SMTPHost: "mail.local", SMTPPort: 25, FromEmail: "desk@resort.test"})
	svc.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("550 rejected") }

	err := svc.SendInvoice("guest@example.com", "Asha", "R-1", "Sea Breeze", "x")

	assert.ErrorContains(t, err, "550 rejected")
}
