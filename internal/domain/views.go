package domain

import (
	"time"
)

// CustomerTotal is the per-customer rollup: one entry per distinct customer
// name in the dataset. The slice is ordered by TotalValue descending; ties
// keep the order customers first appear in the dataset.
type CustomerTotal struct {
	Customer      string    `json:"customer"`
	OrderCount    int       `json:"order_count"`
	TotalQuantity float64   `json:"total_quantity"`
	TotalValue    float64   `json:"total_value"`
	FirstDelivery time.Time `json:"first_delivery"`
}

// FreightStatus classifies a freight entry's urgency.
type FreightStatus string

const (
	StatusUrgent    FreightStatus = "URGENT"
	StatusScheduled FreightStatus = "SCHEDULED"
)

func (s FreightStatus) String() string { return string(s) }

func (s FreightStatus) IsValid() bool {
	switch s {
	case StatusUrgent, StatusScheduled:
		return true
	}
	return false
}

// FreightEntry is one order projected into the dispatch queue. Seq is the
// 1-based rank after sorting by DispatchDate ascending. Status is derived
// from (DispatchDate, now) at generation time and is never stored: a run on
// a later date may reclassify the same order.
type FreightEntry struct {
	Seq          int           `json:"seq"`
	OrderID      string        `json:"order_id"`
	Customer     string        `json:"customer"`
	Quantity     float64       `json:"quantity"`
	DeliveryDate time.Time     `json:"delivery_date"`
	DispatchDate time.Time     `json:"dispatch_date"`
	Status       FreightStatus `json:"status"`
}

// Summary holds the process-wide metrics for one run. FirstDelivery and
// LastDelivery are nil when the dataset is empty.
type Summary struct {
	GeneratedAt    time.Time  `json:"generated_at"`
	TotalOrders    int        `json:"total_orders"`
	TotalCustomers int        `json:"total_customers"`
	TotalQuantity  float64    `json:"total_quantity"`
	TotalValue     float64    `json:"total_value"`
	MeanOrderValue float64    `json:"mean_order_value"`
	FirstDelivery  *time.Time `json:"first_delivery,omitempty"`
	LastDelivery   *time.Time `json:"last_delivery,omitempty"`
}
