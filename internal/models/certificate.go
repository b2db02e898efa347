package models

import (
	"time"

	"github.com/google/uuid"
)

// Threshold identifies one expiry-proximity alert window. The value doubles
// as the notification type tag stored with each in-app notification.
type Threshold string

const (
	Threshold30Days  Threshold = "expiry_30_days"
	Threshold7Days   Threshold = "expiry_7_days"
	Threshold3Days   Threshold = "expiry_3_days"
	Threshold2Days   Threshold = "expiry_2_days"
	Threshold1Day    Threshold = "expiry_1_day"
	ThresholdExpired Threshold = "expired"
)

// AlertFlags records which thresholds have already been dispatched for a
// certificate. Flags only ever move from false to true.
type AlertFlags struct {
	Days30  bool `json:"alert_30_days_sent"`
	Days7   bool `json:"alert_7_days_sent"`
	Days3   bool `json:"alert_3_days_sent"`
	Days2   bool `json:"alert_2_days_sent"`
	Day1    bool `json:"alert_1_day_sent"`
	Expired bool `json:"alert_expired_sent"`
}

// Sent reports whether the alert for the given threshold was already
// dispatched.
func (f AlertFlags) Sent(t Threshold) bool {
	switch t {
	case Threshold30Days:
		return f.Days30
	case Threshold7Days:
		return f.Days7
	case Threshold3Days:
		return f.Days3
	case Threshold2Days:
		return f.Days2
	case Threshold1Day:
		return f.Day1
	case ThresholdExpired:
		return f.Expired
	default:
		return false
	}
}

// Certificate is one compliance certificate joined with its owning vessel,
// as loaded for an alert run.
type Certificate struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ExpiryDate time.Time  `json:"expiry_date"`
	VesselID   uuid.UUID  `json:"vessel_id"`
	VesselName string     `json:"vessel_name"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Alerts     AlertFlags `json:"alerts"`
}

// Vessel is read-only from the alerting core's perspective.
type Vessel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IMONumber string    `json:"imo_number"`
	OwnerID   uuid.UUID `json:"owner_id"`
}
