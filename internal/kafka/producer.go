package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mvribas/order-freight-service/internal/domain"
)

const (
	EventRunCompleted  = "run.completed"
	EventUrgentFreight = "alert.urgent_freight"
)

// Producer publishes pipeline run events for downstream consumers. Events are
// advisory: the run's reports are already on disk when they are emitted.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

type runEvent struct {
	Event          string    `json:"event"`
	RunID          string    `json:"run_id"`
	StartedAt      time.Time `json:"started_at"`
	DurationMS     int64     `json:"duration_ms"`
	TotalOrders    int       `json:"total_orders"`
	TotalCustomers int       `json:"total_customers"`
	RejectedRows   int       `json:"rejected_rows"`
	UrgentCount    int       `json:"urgent_count"`
}

func (p *Producer) PublishRunCompleted(ctx context.Context, run *domain.RunResult) error {
	return p.publish(ctx, newRunEvent(EventRunCompleted, run))
}

func (p *Producer) PublishUrgentAlert(ctx context.Context, run *domain.RunResult) error {
	return p.publish(ctx, newRunEvent(EventUrgentFreight, run))
}

func newRunEvent(event string, run *domain.RunResult) runEvent {
	return runEvent{
		Event:          event,
		RunID:          run.RunID.String(),
		StartedAt:      run.StartedAt,
		DurationMS:     run.Duration.Milliseconds(),
		TotalOrders:    run.Summary.TotalOrders,
		TotalCustomers: run.Summary.TotalCustomers,
		RejectedRows:   run.RejectedRows,
		UrgentCount:    run.UrgentCount,
	}
}

func (p *Producer) publish(ctx context.Context, ev runEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.RunID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
