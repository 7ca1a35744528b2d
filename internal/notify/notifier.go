package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/mvribas/order-freight-service/internal/logger"
)

// Notifier delivers run outcomes to people. The urgent alert carries only the
// count; the full picture lives in the attached report.
type Notifier interface {
	SendReport(ctx context.Context, to, reportPath string) error
	SendUrgentAlert(ctx context.Context, to string, urgentCount int) error
}

// LogNotifier is the simulated delivery channel used when SMTP is not
// configured. It logs what would have been sent. A missing attachment is
// still an error, the report must exist before it can be announced.
type LogNotifier struct{}

func (LogNotifier) SendReport(_ context.Context, to, reportPath string) error {
	if _, err := os.Stat(reportPath); err != nil {
		return fmt.Errorf("report attachment: %w", err)
	}
	logger.Info("simulated report email", "to", to, "attachment", reportPath)
	return nil
}

func (LogNotifier) SendUrgentAlert(_ context.Context, to string, urgentCount int) error {
	logger.Info("simulated urgent freight alert", "to", to, "urgent_count", urgentCount)
	return nil
}
