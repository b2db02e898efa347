package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"vessel-alert-service/internal/models"
)

// alertFlagColumns maps a threshold to the certificate column recording its
// dispatch. The whitelist keeps the dynamic column name out of user reach.
var alertFlagColumns = map[models.Threshold]string{
	models.Threshold30Days:  "alert_30_days_sent",
	models.Threshold7Days:   "alert_7_days_sent",
	models.Threshold3Days:   "alert_3_days_sent",
	models.Threshold2Days:   "alert_2_days_sent",
	models.Threshold1Day:    "alert_1_day_sent",
	models.ThresholdExpired: "alert_expired_sent",
}

// ListCertificatesForAlerting loads every certificate joined with its
// vessel's name and owner, including the current alert flags.
func (d *DB) ListCertificatesForAlerting(ctx context.Context) ([]models.Certificate, error) {
	query := `
	SELECT
		c.id, c.name, c.expiry_date, c.vessel_id, v.name, v.owner_id,
		c.alert_30_days_sent, c.alert_7_days_sent, c.alert_3_days_sent,
		c.alert_2_days_sent, c.alert_1_day_sent, c.alert_expired_sent
	FROM certificates c
	JOIN vessels v ON v.id = c.vessel_id`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certs []models.Certificate
	for rows.Next() {
		var cert models.Certificate
		err := rows.Scan(
			&cert.ID,
			&cert.Name,
			&cert.ExpiryDate,
			&cert.VesselID,
			&cert.VesselName,
			&cert.OwnerID,
			&cert.Alerts.Days30,
			&cert.Alerts.Days7,
			&cert.Alerts.Days3,
			&cert.Alerts.Days2,
			&cert.Alerts.Day1,
			&cert.Alerts.Expired,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read certificates: %w", err)
	}

	return certs, nil
}

// MarkAlertSent sets the flag for one threshold on one certificate. Flags are
// never cleared; the update is a targeted single-row single-column write.
func (d *DB) MarkAlertSent(ctx context.Context, certID uuid.UUID, threshold models.Threshold) error {
	column, ok := alertFlagColumns[threshold]
	if !ok {
		return fmt.Errorf("unknown alert threshold %q", threshold)
	}

	query := fmt.Sprintf(`UPDATE certificates SET %s = TRUE WHERE id = $1`, column)
	result, err := d.Pool.Exec(ctx, query, certID)
	if err != nil {
		return fmt.Errorf("failed to mark %s sent for certificate %s: %w", threshold, certID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no certificate found with id %s", certID)
	}
	return nil
}
