package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"
	"gopkg.in/gomail.v2"

	"github.com/mvribas/order-freight-service/internal/logger"
)

const (
	defaultSendRetries = 3
	defaultRetryBase   = 500 * time.Millisecond
)

// EmailNotifier sends reports and alerts over SMTP (STARTTLS). Transient
// delivery failures are retried with exponential backoff.
type EmailNotifier struct {
	from      string
	send      func(*gomail.Message) error
	retries   uint64
	retryBase time.Duration
}

func NewEmailNotifier(host string, port int, from, password string) (*EmailNotifier, error) {
	if host == "" || from == "" {
		return nil, errors.New("smtp host and sender address are required")
	}
	if password == "" {
		return nil, errors.New("smtp password is required")
	}

	d := gomail.NewDialer(host, port, from, password)
	return &EmailNotifier{
		from:      from,
		send:      func(m *gomail.Message) error { return d.DialAndSend(m) },
		retries:   defaultSendRetries,
		retryBase: defaultRetryBase,
	}, nil
}

func (e *EmailNotifier) SendReport(ctx context.Context, to, reportPath string) error {
	if _, err := os.Stat(reportPath); err != nil {
		return fmt.Errorf("report attachment: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Order and freight report: "+filepath.Base(reportPath))
	m.SetBody("text/plain", "The latest order and freight report is attached.\n")
	m.Attach(reportPath)

	if err := e.deliver(ctx, m); err != nil {
		return fmt.Errorf("send report to %s: %w", to, err)
	}
	logger.Info("report email sent", "to", to, "attachment", reportPath)
	return nil
}

func (e *EmailNotifier) SendUrgentAlert(ctx context.Context, to string, urgentCount int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("URGENT: %d freight entries require dispatch", urgentCount))
	m.SetBody("text/plain", fmt.Sprintf(
		"URGENT FREIGHT ALERT\n\n"+
			"%d freight entries must be dispatched today or are already overdue.\n\n"+
			"Review the freight queue in the latest report and prioritize these dispatches.\n",
		urgentCount))

	if err := e.deliver(ctx, m); err != nil {
		return fmt.Errorf("send urgent alert to %s: %w", to, err)
	}
	logger.Info("urgent alert email sent", "to", to, "urgent_count", urgentCount)
	return nil
}

func (e *EmailNotifier) deliver(ctx context.Context, m *gomail.Message) error {
	backoff := retry.WithMaxRetries(e.retries, retry.NewExponential(e.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := e.send(m); err != nil {
			logger.Warn("smtp delivery failed, retrying", "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
}
