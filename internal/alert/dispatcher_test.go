package alert_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vessel-alert-service/internal/alert"
	"vessel-alert-service/internal/models"
	"vessel-alert-service/internal/utils"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeStore struct {
	mu            sync.Mutex
	notifications []models.Notification
	flags         map[uuid.UUID][]models.Threshold
	contacts      map[uuid.UUID]models.UserContact
	insertErr     error
	contactErr    error
	markErr       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		flags:    make(map[uuid.UUID][]models.Threshold),
		contacts: make(map[uuid.UUID]models.UserContact),
	}
}

func (s *fakeStore) CreateNotification(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeStore) MarkAlertSent(_ context.Context, certID uuid.UUID, threshold models.Threshold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	s.flags[certID] = append(s.flags[certID], threshold)
	return nil
}

func (s *fakeStore) GetUserContact(_ context.Context, userID uuid.UUID) (models.UserContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contactErr != nil {
		return models.UserContact{}, s.contactErr
	}
	contact, ok := s.contacts[userID]
	if !ok {
		return models.UserContact{}, errors.New("no user found")
	}
	return contact, nil
}

type sentEmail struct {
	to      string
	subject string
	html    string
}

type fakeEmail struct {
	mu    sync.Mutex
	calls int
	errs  []error // consumed one per call, nil entries mean success
	sent  []sentEmail
}

func (f *fakeEmail) Send(_ context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}

type fakeText struct {
	mu    sync.Mutex
	calls int
	err   error
	sent  []string
}

func (f *fakeText) Send(_ context.Context, to, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, to)
	return "wamid.TEST", nil
}

func testCertificate(days int) models.Certificate {
	return models.Certificate{
		ID:         uuid.New(),
		Name:       "Load Line Certificate",
		ExpiryDate: time.Now().UTC().AddDate(0, 0, days),
		VesselID:   uuid.New(),
		VesselName: "MV Meridian",
		OwnerID:    uuid.New(),
	}
}

func newTestDispatcher(store *fakeStore, email *fakeEmail, text *fakeText) *alert.Dispatcher {
	return alert.NewDispatcher(store, email, text, testLogger(), 3, time.Millisecond)
}

func TestDispatchSuccessSetsFlag(t *testing.T) {
	store := newFakeStore()
	email := &fakeEmail{}
	text := &fakeText{}
	cert := testCertificate(30)
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "owner@example.com", Phone: "+4790000000"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold30Days, DiffDays: 30})

	assert.True(t, res.NotificationCreated)
	assert.True(t, res.ExternalSent)
	assert.True(t, res.FlagSet)
	assert.Zero(t, res.StoreErrors)

	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, cert.OwnerID, n.UserID)
	assert.Equal(t, cert.ID, n.CertificateID)
	assert.Equal(t, models.Threshold30Days, n.Type)
	assert.False(t, n.IsRead)
	assert.Contains(t, n.Message, "expires in 30 days")

	require.Len(t, email.sent, 1)
	assert.Equal(t, "owner@example.com", email.sent[0].to)
	assert.Equal(t, []string{"+4790000000"}, text.sent)
	assert.Equal(t, []models.Threshold{models.Threshold30Days}, store.flags[cert.ID])
}

func TestDispatchSendFailureLeavesFlagUnset(t *testing.T) {
	store := newFakeStore()
	email := &fakeEmail{errs: []error{utils.Permanent(errors.New("mailbox rejected"))}}
	text := &fakeText{}
	cert := testCertificate(7)
	// Email-only contact: the failed channel is the only channel.
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "owner@example.com"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold7Days, DiffDays: 7})

	// In-app row exists even though external delivery failed.
	assert.True(t, res.NotificationCreated)
	assert.False(t, res.ExternalSent)
	assert.False(t, res.FlagSet)
	assert.Len(t, store.notifications, 1)
	assert.Empty(t, store.flags[cert.ID])
	assert.Zero(t, text.calls)
}

func TestDispatchContactResolutionFailure(t *testing.T) {
	store := newFakeStore()
	store.contactErr = errors.New("auth service unavailable")
	email := &fakeEmail{}
	text := &fakeText{}
	cert := testCertificate(0)

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold1Day, DiffDays: 0})

	assert.True(t, res.NotificationCreated)
	assert.False(t, res.ExternalSent)
	assert.False(t, res.FlagSet)
	assert.Zero(t, email.calls)
	assert.Zero(t, text.calls)
	assert.Empty(t, store.flags[cert.ID])
}

func TestDispatchInsertFailureStillSends(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("connection reset")
	email := &fakeEmail{}
	text := &fakeText{}
	cert := testCertificate(2)
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "owner@example.com"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold2Days, DiffDays: 2})

	assert.False(t, res.NotificationCreated)
	assert.Equal(t, 1, res.StoreErrors)
	assert.True(t, res.ExternalSent)
	assert.True(t, res.FlagSet)
}

func TestDispatchRetriesRateLimitThenSucceeds(t *testing.T) {
	store := newFakeStore()
	rateLimited := errors.New("email API rate limited (status 429)")
	email := &fakeEmail{errs: []error{rateLimited, rateLimited, nil}}
	text := &fakeText{}
	cert := testCertificate(3)
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "owner@example.com"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold3Days, DiffDays: 3})

	assert.Equal(t, 3, email.calls)
	assert.True(t, res.ExternalSent)
	assert.True(t, res.FlagSet)
}

func TestDispatchWhatsAppAloneCountsAsDelivery(t *testing.T) {
	store := newFakeStore()
	email := &fakeEmail{errs: []error{utils.Permanent(errors.New("bad address"))}}
	text := &fakeText{}
	cert := testCertificate(1)
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "broken", Phone: "+4790000000"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold1Day, DiffDays: 1})

	assert.True(t, res.ExternalSent)
	assert.True(t, res.FlagSet)
	assert.Equal(t, []string{"+4790000000"}, text.sent)
}

func TestDispatchFlagWriteFailure(t *testing.T) {
	store := newFakeStore()
	store.markErr = errors.New("deadlock detected")
	email := &fakeEmail{}
	text := &fakeText{}
	cert := testCertificate(30)
	store.contacts[cert.OwnerID] = models.UserContact{ID: cert.OwnerID, Email: "owner@example.com"}

	d := newTestDispatcher(store, email, text)
	res := d.Dispatch(context.Background(), cert, alert.Trigger{Threshold: models.Threshold30Days, DiffDays: 30})

	assert.True(t, res.ExternalSent)
	assert.False(t, res.FlagSet)
	assert.Equal(t, 1, res.StoreErrors)
	assert.Empty(t, store.flags[cert.ID])
}
