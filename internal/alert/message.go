package alert

import (
	"fmt"

	"vessel-alert-service/internal/models"
)

// Urgency colors used in the HTML email body.
const (
	colorGreen  = "#28a745"
	colorOrange = "#ffc107"
	colorRed    = "#dc3545"
)

const expiryDateLayout = "02 Jan 2006"

// Content is the rendered alert for one trigger: the in-app message, the
// email subject and HTML body. The in-app message doubles as the text for
// the messaging channels.
type Content struct {
	Subject string
	Message string
	HTML    string
}

// BuildContent renders the alert texts for a triggered certificate.
func BuildContent(cert models.Certificate, trig Trigger) Content {
	expiry := cert.ExpiryDate.Format(expiryDateLayout)

	var subject, message, color string
	switch trig.Threshold {
	case models.ThresholdExpired:
		subject = fmt.Sprintf("URGENT: Certificate for %s (%s) has expired!", cert.VesselName, cert.Name)
		message = fmt.Sprintf("Certificate '%s' for vessel '%s' expired on %s. Please renew immediately.",
			cert.Name, cert.VesselName, expiry)
		color = colorRed
	case models.Threshold1Day:
		if trig.DiffDays == 0 {
			subject = fmt.Sprintf("ACTION REQUIRED: Certificate for %s (%s) expires TODAY!", cert.VesselName, cert.Name)
			message = fmt.Sprintf("Certificate '%s' for vessel '%s' expires today, %s.",
				cert.Name, cert.VesselName, expiry)
		} else {
			subject = fmt.Sprintf("URGENT: Certificate for %s (%s) expires in 1 day!", cert.VesselName, cert.Name)
			message = fmt.Sprintf("Certificate '%s' for vessel '%s' expires in 1 day on %s.",
				cert.Name, cert.VesselName, expiry)
		}
		color = colorRed
	case models.Threshold2Days, models.Threshold3Days, models.Threshold7Days:
		subject = fmt.Sprintf("REMINDER: Certificate for %s (%s) expires in %d days.", cert.VesselName, cert.Name, trig.DiffDays)
		message = fmt.Sprintf("Certificate '%s' for vessel '%s' expires in %d days on %s.",
			cert.Name, cert.VesselName, trig.DiffDays, expiry)
		color = colorOrange
	case models.Threshold30Days:
		subject = fmt.Sprintf("Heads Up: Certificate for %s (%s) expires in %d days.", cert.VesselName, cert.Name, trig.DiffDays)
		message = fmt.Sprintf("Certificate '%s' for vessel '%s' expires in %d days on %s.",
			cert.Name, cert.VesselName, trig.DiffDays, expiry)
		color = colorGreen
	}

	html := fmt.Sprintf(`
	<div style="font-family: sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #eee; border-radius: 8px;">
		<h1 style="color: #007bff; text-align: center;">Certificate Expiry Alert</h1>
		<p>Dear User,</p>
		<p>This is an automated alert regarding a certificate for your vessel <strong>%s</strong>.</p>
		<p>The certificate <strong>%s</strong> is expiring on <strong>%s</strong>.</p>
		<p style="font-weight: bold; color: %s;">%s</p>
		<p>Please log in to review and update your certificates to ensure compliance.</p>
	</div>`, cert.VesselName, cert.Name, expiry, color, daysPhrase(trig.DiffDays))

	return Content{Subject: subject, Message: message, HTML: html}
}

// daysPhrase is the days-remaining/overdue sentence in the email body.
func daysPhrase(diff int) string {
	switch {
	case diff > 1:
		return fmt.Sprintf("It expires in %d days.", diff)
	case diff == 1:
		return "It expires in 1 day."
	case diff == 0:
		return "It expires today."
	case diff == -1:
		return "It expired 1 day ago."
	default:
		return fmt.Sprintf("It expired %d days ago.", -diff)
	}
}
