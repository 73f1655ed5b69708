package services

import (
	"bytes"
	"dental_care_app_go/config"
	"dental_care_app_go/templates/emails"
	"fmt"
	"html/template"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders templateName.html and templateName.txt from the
// embedded email templates
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	htmlTmpl, err := template.ParseFS(emails.FS, templateName+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %w", templateName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %w", templateName, err)
	}

	textTmpl, err := texttemplate.ParseFS(emails.FS, templateName+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %w", templateName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email asynchronously using a goroutine
// so lead submissions never wait on the mail provider
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// LeadNotificationData contains data for the clinic lead notification
type LeadNotificationData struct {
	SourceLabel string
	Name        string
	Phone       string
	Email       string
	Message     string
	ReceivedAt  string
}

// BuildLeadNotificationEmail creates the email the front desk receives for every new lead
func BuildLeadNotificationEmail(clinicEmail string, lead LeadPayload, receivedAt time.Time) (*Email, error) {
	sourceLabel := "callback request"
	if lead.Variant == "modal" {
		sourceLabel = "appointment booking"
	}

	data := LeadNotificationData{
		SourceLabel: sourceLabel,
		Name:        lead.Name,
		Phone:       NormalizePhone(lead.Phone),
		Email:       lead.Email,
		Message:     lead.Message,
		ReceivedAt:  receivedAt.Format("02 Jan 2006 15:04"),
	}

	htmlBody, textBody, err := loadTemplate("lead_notification", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       []string{clinicEmail},
		Subject:  fmt.Sprintf("New %s: %s", sourceLabel, lead.Name),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// LeadDigestRow is one line of the daily lead digest
type LeadDigestRow struct {
	ReceivedAt string
	Name       string
	Phone      string
	Source     string
	Status     string
}

// LeadDigestData contains data for the daily lead digest
type LeadDigestData struct {
	Count int
	Leads []LeadDigestRow
}

// BuildLeadDigestEmail creates the daily summary of leads not yet reported
func BuildLeadDigestEmail(clinicEmail string, rows []LeadDigestRow) (*Email, error) {
	data := LeadDigestData{Count: len(rows), Leads: rows}

	htmlBody, textBody, err := loadTemplate("lead_digest", data)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:       []string{clinicEmail},
		Subject:  fmt.Sprintf("Daily lead digest: %d new lead(s)", len(rows)),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}
