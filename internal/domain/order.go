package domain

import (
	"time"
)

// Order is one validated row of the input dataset. Quantity and UnitPrice
// are guaranteed numeric and non-negative, DeliveryDate a valid calendar
// date; the ingest layer rejects anything else before it gets here.
type Order struct {
	ID           string    `json:"order_id"`
	Customer     string    `json:"customer"`
	DeliveryDate time.Time `json:"delivery_date"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
}

// Total is the line total for the order.
func (o Order) Total() float64 {
	return o.Quantity * o.UnitPrice
}

// Dataset is the full set of validated orders for one pipeline run, in file
// order. It is read-only for the lifetime of the run; the derivations never
// mutate it.
type Dataset []Order
