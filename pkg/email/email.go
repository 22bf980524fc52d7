package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService sends invoices to guests over SMTP
type EmailService struct {
	config   EmailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, sendMail: smtp.SendMail}
}

// Configured reports whether a sender address and host are set
func (s *EmailService) Configured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendInvoice mails the fixed-width invoice text inside a <pre> block so it
// keeps its column layout in mail clients.
func (s *EmailService) SendInvoice(toEmail, guestName, billNo, resortName, invoiceText string) error {
	if !s.Configured() {
		return fmt.Errorf("email: SMTP is not configured")
	}

	htmlContent, err := renderInvoiceEmail(guestName, billNo, resortName, invoiceText)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your bill %s - %s", billNo, resortName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.sendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceTemplate))

func renderInvoiceEmail(guestName, billNo, resortName, invoiceText string) (string, error) {
	data := struct {
		GuestName  string
		BillNo     string
		ResortName string
		Invoice    string
	}{
		GuestName:  guestName,
		BillNo:     billNo,
		ResortName: resortName,
		Invoice:    invoiceText,
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Bill {{.BillNo}}</title>
</head>
<body style="margin: 0; padding: 24px; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <p style="color: #4a5568; font-size: 16px;">Dear {{.GuestName}},</p>
    <p style="color: #4a5568; font-size: 16px;">Thank you for staying with {{.ResortName}}. Your bill <strong>{{.BillNo}}</strong> is below.</p>
    <pre style="font-family: 'Courier New', monospace; font-size: 13px; background-color: #ffffff; padding: 16px; border: 1px solid #e2e8f0;">{{.Invoice}}</pre>
    <p style="color: #a0aec0; font-size: 12px;">This email was sent by {{.ResortName}}</p>
</body>
</html>
`
