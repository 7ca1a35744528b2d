package application

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvribas/order-freight-service/internal/domain"
)

type stubSource struct {
	ds       domain.Dataset
	rejected int
	err      error
}

func (s stubSource) Read() (domain.Dataset, int, error) { return s.ds, s.rejected, s.err }

type recordingNotifier struct {
	reports   []string
	alerts    []int
	reportErr error
	alertErr  error
}

func (n *recordingNotifier) SendReport(_ context.Context, _ string, path string) error {
	n.reports = append(n.reports, path)
	return n.reportErr
}

func (n *recordingNotifier) SendUrgentAlert(_ context.Context, _ string, count int) error {
	n.alerts = append(n.alerts, count)
	return n.alertErr
}

type recordingPublisher struct {
	completed int
	urgent    int
	err       error
}

func (p *recordingPublisher) PublishRunCompleted(context.Context, *domain.RunResult) error {
	p.completed++
	return p.err
}

func (p *recordingPublisher) PublishUrgentAlert(context.Context, *domain.RunResult) error {
	p.urgent++
	return p.err
}

func acmeSource() stubSource {
	return stubSource{
		ds: domain.Dataset{
			{ID: "P1", Customer: "Acme", DeliveryDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), Quantity: 2, UnitPrice: 100},
			{ID: "P2", Customer: "Acme", DeliveryDate: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), Quantity: 1, UnitPrice: 50},
		},
		rejected: 1,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService(t *testing.T, src DatasetSource, n *recordingNotifier, ev EventPublisher, now time.Time) *PipelineService {
	t.Helper()
	return NewPipelineService(src, n, ev, Options{
		OutputDir:    t.TempDir(),
		LeadTimeDays: 3,
		ReportEmail:  "reports@example.com",
		AlertEmail:   "ops@example.com",
		Now:          fixedClock(now),
	})
}

func TestRun_FullCycle(t *testing.T) {
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	now := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, acmeSource(), notifier, publisher, now)

	run, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.Equal(t, 2, run.Summary.TotalOrders)
	assert.Equal(t, 1, run.RejectedRows)
	require.Len(t, run.Customers, 1)
	assert.Equal(t, 250.0, run.Customers[0].TotalValue)

	require.Len(t, run.Freights, 2)
	assert.Equal(t, "P2", run.Freights[0].OrderID)
	assert.Equal(t, domain.StatusUrgent, run.Freights[0].Status)
	assert.Equal(t, 1, run.UrgentCount)

	// Both report files are on disk before anyone is notified.
	_, err = os.Stat(run.ExcelReport)
	assert.NoError(t, err)
	text, err := os.ReadFile(run.TextReport)
	require.NoError(t, err)
	assert.Contains(t, string(text), "URGENT FREIGHTS (1)")

	assert.Equal(t, []string{run.ExcelReport}, notifier.reports)
	assert.Equal(t, []int{1}, notifier.alerts)
	assert.Equal(t, 1, publisher.completed)
	assert.Equal(t, 1, publisher.urgent)

	assert.Same(t, run, svc.LastRun())
}

func TestRun_NoUrgentMeansNoAlert(t *testing.T) {
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	// Well before any dispatch date: everything stays scheduled.
	now := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(t, acmeSource(), notifier, publisher, now)

	run, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, run.UrgentCount)
	assert.Empty(t, notifier.alerts)
	assert.Equal(t, 1, publisher.completed)
	assert.Zero(t, publisher.urgent)
	assert.Len(t, notifier.reports, 1)
}

func TestRun_EmptyDataset(t *testing.T) {
	notifier := &recordingNotifier{}
	src := stubSource{ds: domain.Dataset{}, rejected: 3}
	svc := newTestService(t, src, notifier, nil, time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC))

	run, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, run.Summary.TotalOrders)
	assert.Equal(t, 3, run.RejectedRows)
	assert.Nil(t, run.Summary.FirstDelivery)

	text, err := os.ReadFile(run.TextReport)
	require.NoError(t, err)
	assert.Contains(t, string(text), "No customer data.")
}

func TestRun_IngestFailureAbortsRun(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(t, stubSource{err: errors.New("file vanished")}, notifier, nil,
		time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))

	run, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, run)
	assert.Nil(t, svc.LastRun())
	assert.Empty(t, notifier.reports)
}

func TestRun_NotificationFailureDoesNotFailRun(t *testing.T) {
	notifier := &recordingNotifier{
		reportErr: errors.New("smtp down"),
		alertErr:  errors.New("smtp down"),
	}
	now := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, acmeSource(), notifier, nil, now)

	run, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, run, svc.LastRun())
}

func TestRun_PublishFailureDoesNotFailRun(t *testing.T) {
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{err: errors.New("broker unreachable")}
	now := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
	svc := newTestService(t, acmeSource(), notifier, publisher, now)

	run, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, 1, publisher.completed)
}

func TestRun_ReproducibleWithFixedClock(t *testing.T) {
	now := time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	svc := newTestService(t, acmeSource(), notifier, nil, now)

	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Freights, second.Freights)
	assert.Same(t, second, svc.LastRun())
}

func TestLastRun_NilBeforeFirstRun(t *testing.T) {
	svc := newTestService(t, acmeSource(), &recordingNotifier{}, nil, time.Now())
	assert.Nil(t, svc.LastRun())
}
