package alert

import (
	"math"
	"time"

	"vessel-alert-service/internal/models"
)

// Trigger is the evaluator's verdict for one certificate: the single most
// urgent threshold whose alert has not been sent yet.
type Trigger struct {
	Threshold models.Threshold
	DiffDays  int
}

// DiffDays returns the number of calendar days from today until expiry,
// negative once expired. Both dates are normalized to midnight UTC before
// the ceil division, so the time-of-day of either input never shifts the
// result.
func DiffDays(today, expiry time.Time) int {
	t := midnight(today)
	e := midnight(expiry)
	return int(math.Ceil(e.Sub(t).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Evaluate picks at most one threshold for a certificate, most urgent first.
// A threshold fires only while its flag is unset, so a certificate never
// receives the same alert twice and never two alerts in one run.
//
// Matching is exact-day (1_day additionally covers expiry today): if the
// batch job skips a calendar day a threshold can be passed over entirely and
// its alert is never sent. Accepted limitation of the exact-day policy.
func Evaluate(today time.Time, cert models.Certificate) (Trigger, bool) {
	diff := DiffDays(today, cert.ExpiryDate)

	var threshold models.Threshold
	switch {
	case diff < 0:
		threshold = models.ThresholdExpired
	case diff == 0 || diff == 1:
		threshold = models.Threshold1Day
	case diff == 2:
		threshold = models.Threshold2Days
	case diff == 3:
		threshold = models.Threshold3Days
	case diff == 7:
		threshold = models.Threshold7Days
	case diff == 30:
		threshold = models.Threshold30Days
	default:
		return Trigger{}, false
	}

	if cert.Alerts.Sent(threshold) {
		return Trigger{}, false
	}
	return Trigger{Threshold: threshold, DiffDays: diff}, true
}
