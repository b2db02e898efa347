package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/models"
)

// CertificateSource is the read side of the certificate store.
type CertificateSource interface {
	ListCertificatesForAlerting(ctx context.Context) ([]models.Certificate, error)
}

// Runner orchestrates one alert run over the full certificate set. There is
// no cursor: every run re-scans all certificates.
type Runner struct {
	mu         sync.Mutex
	source     CertificateSource
	dispatcher *Dispatcher
	logger     *logrus.Logger
	now        func() time.Time
}

func NewRunner(source CertificateSource, dispatcher *Dispatcher, logger *logrus.Logger) *Runner {
	return &Runner{
		source:     source,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Run scans every certificate, evaluates thresholds, and dispatches the
// triggered alerts. Only a store read failure is fatal; everything else is
// counted in the report and the run continues. Runs within one process are
// serialized by a mutex; overlapping runs across processes can still
// double-send the same threshold (accepted at-least-once delivery — keep
// the schedule frequency low enough that runs never overlap).
func (r *Runner) Run(ctx context.Context) (models.RunReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := models.RunReport{StartedAt: r.now()}

	certs, err := r.source.ListCertificatesForAlerting(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load certificates: %w", err)
	}

	today := r.now()
	for _, cert := range certs {
		report.Scanned++

		trig, ok := Evaluate(today, cert)
		if !ok {
			continue
		}
		report.Triggered++
		r.logger.Infof("Certificate %s (%s / %s) crossed threshold %s (diff_days=%d)",
			cert.ID, cert.VesselName, cert.Name, trig.Threshold, trig.DiffDays)

		res := r.dispatcher.Dispatch(ctx, cert, trig)
		report.StoreFailures += res.StoreErrors
		if res.FlagSet {
			report.Dispatched++
		}
		if !res.ExternalSent {
			report.SendFailures++
		}
	}

	report.FinishedAt = r.now()
	r.logger.Infof("Alert run complete: scanned=%d triggered=%d dispatched=%d send_failures=%d store_failures=%d",
		report.Scanned, report.Triggered, report.Dispatched, report.SendFailures, report.StoreFailures)
	return report, nil
}
