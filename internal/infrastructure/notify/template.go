package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/addisco/consulting-api/internal/core/domain"
)

// statusMessages maps a new status to the sentence shown in the client's
// status-update email. Unknown statuses fall back to a generic line.
var statusMessages = map[domain.Status]string{
	domain.StatusContacted:  "Our team has reached out to you regarding your request.",
	domain.StatusInProgress: "Your consultation is now in progress. Our team is working on your requirements.",
	domain.StatusCompleted:  "Your consultation has been completed. Thank you for choosing Addisco.",
	domain.StatusCancelled:  "Your consultation request has been cancelled as per your request.",
}

const genericStatusMessage = "Your request status has been updated."

// emailShell wraps rendered content in the branded HTML frame. Rendering is a
// pure function of its inputs; nothing here touches the store or the clock
// beyond the copyright year.
const emailShell = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Addisco &amp; Company</title>
  <style>
    body { font-family: Arial, Helvetica, sans-serif; line-height: 1.6; color: #333; margin: 0; background-color: #f4f4f4; }
    .email-wrapper { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #00356B; color: #ffffff; padding: 30px; text-align: center; }
    .header h1 { margin: 0; font-family: Georgia, serif; font-size: 28px; }
    .content { padding: 40px 30px; }
    .content h2 { color: #00356B; font-family: Georgia, serif; font-size: 24px; margin: 0 0 20px; }
    .info-box { background-color: #f9f9f9; border-left: 4px solid #00356B; padding: 20px; margin: 25px 0; }
    .info-box strong { color: #00356B; display: inline-block; min-width: 120px; }
    .footer { background-color: #00356B; color: #ffffff; padding: 30px; text-align: center; font-size: 13px; }
  </style>
</head>
<body>
  <div class="email-wrapper">
    <div class="header"><h1>Addisco</h1><p>&amp; COMPANY</p></div>
    <div class="content">%s</div>
    <div class="footer">
      <p><strong>Addisco &amp; Company</strong></p>
      <p>Management Consulting</p>
      <p>&copy; %d Addisco &amp; Company. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`

func wrapShell(content string) string {
	return fmt.Sprintf(emailShell, content, time.Now().Year())
}

// esc escapes a user-supplied value for interpolation into the HTML body.
func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// titleCase uppercases the first letter and replaces dashes, turning
// "in-progress" into "In progress".
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return esc(s)
}

// renderSubmittedAdminEmail is the internal alert sent to the administrative
// address for every new submission.
func renderSubmittedAdminEmail(c *domain.Consultation) (subject, body string) {
	subject = fmt.Sprintf("New Consultation Request - %s", c.Service)
	content := fmt.Sprintf(`<h2>New Consultation Request</h2>
<p>A new consultation request has been submitted through the Addisco website.</p>
<div class="info-box">
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Phone:</strong> %s</p>
  <p><strong>Organization:</strong> %s</p>
  <p><strong>Service:</strong> %s</p>
  <p><strong>Request ID:</strong> %s</p>
  <p><strong>Date:</strong> %s</p>
</div>
<p><strong>Message:</strong></p>
<div class="info-box"><p>%s</p></div>
<p>Please review and respond to this request within 24 hours.</p>`,
		esc(c.Name), esc(c.Email), esc(c.Phone), orNotSpecified(c.Organization),
		titleCase(string(c.Service)), c.ID, c.CreatedAt.Format(time.RFC1123),
		esc(c.Message))
	return subject, wrapShell(content)
}

// renderSubmittedClientEmail is the confirmation sent back to the requester.
func renderSubmittedClientEmail(c *domain.Consultation) (subject, body string) {
	subject = "Consultation Request Received - Addisco & Company"
	content := fmt.Sprintf(`<h2>Thank You for Contacting Addisco</h2>
<p>Dear %s,</p>
<p>We have received your consultation request and truly appreciate your interest in working with Addisco &amp; Company.</p>
<div class="info-box">
  <p><strong>Service Requested:</strong> %s</p>
  <p><strong>Request ID:</strong> %s</p>
  <p><strong>Status:</strong> Pending Review</p>
</div>
<p>Our team of experts will carefully review your requirements and reach out to you within <strong>24 hours</strong>.</p>
<p>Best regards,<br><strong>The Addisco Team</strong></p>`,
		esc(c.Name), titleCase(string(c.Service)), c.ID)
	return subject, wrapShell(content)
}

// renderStatusUpdateEmail tells the requester about a status change. The body
// line is keyed by the new status with a generic fallback for anything
// unrecognised.
func renderStatusUpdateEmail(c *domain.Consultation) (subject, body string) {
	subject = fmt.Sprintf("Consultation Update - %s", strings.ReplaceAll(string(c.Status), "-", " "))

	message, ok := statusMessages[c.Status]
	if !ok {
		message = genericStatusMessage
	}

	content := fmt.Sprintf(`<h2>Consultation Request Update</h2>
<p>Dear %s,</p>
<p>We wanted to update you on the status of your consultation request.</p>
<div class="info-box">
  <p><strong>Request ID:</strong> %s</p>
  <p><strong>Service:</strong> %s</p>
  <p><strong>New Status:</strong> %s</p>
</div>
<p>%s</p>
<p>If you have any questions, please don't hesitate to contact us.</p>
<p>Best regards,<br><strong>The Addisco Team</strong></p>`,
		esc(c.Name), c.ID, titleCase(string(c.Service)), titleCase(string(c.Status)), message)
	return subject, wrapShell(content)
}

// renderSubmittedWhatsApp is the short plain-text ping sent to the admin's
// messaging app for each new submission.
func renderSubmittedWhatsApp(c *domain.Consultation) string {
	msg := c.Message
	if runes := []rune(msg); len(runes) > 100 {
		msg = string(runes[:100]) + "..."
	}
	org := c.Organization
	if org == "" {
		org = "N/A"
	}
	return strings.TrimSpace(fmt.Sprintf(`NEW CONSULTATION REQUEST

Name: %s
Service: %s
Email: %s
Phone: %s
Organization: %s

Message: %s

Request ID: %s`, c.Name, c.Service, c.Email, c.Phone, org, msg, c.ID))
}
