package alert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"vessel-alert-service/internal/alert"
	"vessel-alert-service/internal/models"
)

func TestBuildContentSubjects(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		threshold models.Threshold
		wantIn    string
	}{
		{"thirty days", 30, models.Threshold30Days, "Heads Up"},
		{"seven days", 7, models.Threshold7Days, "REMINDER"},
		{"three days", 3, models.Threshold3Days, "REMINDER"},
		{"two days", 2, models.Threshold2Days, "REMINDER"},
		{"one day", 1, models.Threshold1Day, "URGENT"},
		{"expires today", 0, models.Threshold1Day, "ACTION REQUIRED"},
		{"expired", -4, models.ThresholdExpired, "URGENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cert := certExpiring(tt.days, models.AlertFlags{})
			content := alert.BuildContent(cert, alert.Trigger{Threshold: tt.threshold, DiffDays: tt.days})
			assert.Contains(t, content.Subject, tt.wantIn)
			assert.Contains(t, content.Subject, cert.VesselName)
			assert.Contains(t, content.Subject, cert.Name)
		})
	}
}

func TestBuildContentMessage(t *testing.T) {
	cert := certExpiring(7, models.AlertFlags{})
	content := alert.BuildContent(cert, alert.Trigger{Threshold: models.Threshold7Days, DiffDays: 7})

	assert.Contains(t, content.Message, "expires in 7 days")
	assert.Contains(t, content.Message, cert.ExpiryDate.Format("02 Jan 2006"))
	assert.Contains(t, content.Message, cert.Name)
	assert.Contains(t, content.Message, cert.VesselName)
}

func TestBuildContentExpiredMessage(t *testing.T) {
	cert := certExpiring(-3, models.AlertFlags{})
	content := alert.BuildContent(cert, alert.Trigger{Threshold: models.ThresholdExpired, DiffDays: -3})

	assert.Contains(t, content.Message, "expired on")
	assert.Contains(t, content.Message, "renew immediately")
	assert.Contains(t, content.HTML, "It expired 3 days ago.")
}

func TestBuildContentHTML(t *testing.T) {
	cert := certExpiring(30, models.AlertFlags{})
	content := alert.BuildContent(cert, alert.Trigger{Threshold: models.Threshold30Days, DiffDays: 30})

	assert.Contains(t, content.HTML, "<strong>"+cert.VesselName+"</strong>")
	assert.Contains(t, content.HTML, "<strong>"+cert.Name+"</strong>")
	assert.Contains(t, content.HTML, "It expires in 30 days.")
}
