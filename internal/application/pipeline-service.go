package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvribas/order-freight-service/internal/domain"
	"github.com/mvribas/order-freight-service/internal/logger"
	"github.com/mvribas/order-freight-service/internal/notify"
	"github.com/mvribas/order-freight-service/internal/processing"
	"github.com/mvribas/order-freight-service/internal/report"
)

// DatasetSource produces the dataset for one run plus the count of rows it
// had to reject.
type DatasetSource interface {
	Read() (domain.Dataset, int, error)
}

// EventPublisher pushes run events to the message bus. Optional.
type EventPublisher interface {
	PublishRunCompleted(ctx context.Context, run *domain.RunResult) error
	PublishUrgentAlert(ctx context.Context, run *domain.RunResult) error
}

type Options struct {
	OutputDir    string
	LeadTimeDays int
	ReportEmail  string
	AlertEmail   string
	Now          func() time.Time
}

// PipelineService executes one ingest-process-report cycle per Run call and
// keeps the latest result for the HTTP layer. Runs never mutate each other's
// results; every run builds fresh values.
type PipelineService struct {
	source   DatasetSource
	notifier notify.Notifier
	events   EventPublisher
	excel    report.ExcelWriter

	outputDir string
	leadDays  int
	reportTo  string
	alertTo   string
	now       func() time.Time

	mu   sync.RWMutex
	last *domain.RunResult
}

func NewPipelineService(source DatasetSource, notifier notify.Notifier, events EventPublisher, opts Options) *PipelineService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PipelineService{
		source:    source,
		notifier:  notifier,
		events:    events,
		outputDir: opts.OutputDir,
		leadDays:  opts.LeadTimeDays,
		reportTo:  opts.ReportEmail,
		alertTo:   opts.AlertEmail,
		now:       opts.Now,
	}
}

// Run executes one full pipeline cycle. Ingestion and derivation failures
// abort the run; notification and event-publish failures are logged and do
// not, the reports are already on disk by then.
func (s *PipelineService) Run(ctx context.Context) (*domain.RunResult, error) {
	started := s.now()
	run := &domain.RunResult{
		RunID:     uuid.New(),
		StartedAt: started,
	}
	logger.Info("pipeline run started", "run_id", run.RunID.String())

	ds, rejected, err := s.source.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest dataset: %w", err)
	}
	run.RejectedRows = rejected

	var g errgroup.Group
	g.Go(func() error {
		run.Customers = processing.CustomerTotals(ds)
		return nil
	})
	g.Go(func() error {
		queue, err := processing.FreightQueue(ds, s.leadDays, started)
		if err != nil {
			return err
		}
		run.Freights = queue
		return nil
	})
	g.Go(func() error {
		run.Summary = processing.Summarize(ds, started)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("derive views: %w", err)
	}
	run.UrgentCount = processing.UrgentCount(run.Freights)

	if err := s.writeReports(run, started); err != nil {
		return nil, err
	}

	if run.UrgentCount > 0 {
		if err := s.notifier.SendUrgentAlert(ctx, s.alertTo, run.UrgentCount); err != nil {
			logger.Warn("urgent alert delivery failed", "run_id", run.RunID.String(), "error", err.Error())
		}
	}
	if err := s.notifier.SendReport(ctx, s.reportTo, run.ExcelReport); err != nil {
		logger.Warn("report delivery failed", "run_id", run.RunID.String(), "error", err.Error())
	}

	run.Duration = s.now().Sub(started)
	s.publishEvents(ctx, run)

	s.mu.Lock()
	s.last = run
	s.mu.Unlock()

	logger.Info("pipeline run completed",
		"run_id", run.RunID.String(),
		"orders", run.Summary.TotalOrders,
		"rejected", run.RejectedRows,
		"urgent", run.UrgentCount,
		"duration", run.Duration.String(),
	)
	return run, nil
}

// LastRun returns the most recent completed run, or nil before the first one.
func (s *PipelineService) LastRun() *domain.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *PipelineService) writeReports(run *domain.RunResult, started time.Time) error {
	stamp := started.Format("20060102_150405")
	run.ExcelReport = filepath.Join(s.outputDir, fmt.Sprintf("report_%s.xlsx", stamp))
	run.TextReport = filepath.Join(s.outputDir, fmt.Sprintf("report_%s.txt", stamp))

	if err := s.excel.Write(run.ExcelReport, run); err != nil {
		return fmt.Errorf("write spreadsheet report: %w", err)
	}
	if err := os.WriteFile(run.TextReport, []byte(report.Text(run)), 0o644); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func (s *PipelineService) publishEvents(ctx context.Context, run *domain.RunResult) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRunCompleted(ctx, run); err != nil {
		logger.Warn("run event publish failed", "run_id", run.RunID.String(), "error", err.Error())
	}
	if run.UrgentCount == 0 {
		return
	}
	if err := s.events.PublishUrgentAlert(ctx, run); err != nil {
		logger.Warn("urgent event publish failed", "run_id", run.RunID.String(), "error", err.Error())
	}
}
