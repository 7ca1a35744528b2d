// Package processing holds the order-to-freight derivations: per-customer
// totals, the dispatch queue, and the run summary. All three are pure
// functions over the same read-only dataset; the reference time is always a
// parameter, never the ambient clock, so runs are reproducible.
package processing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mvribas/order-freight-service/internal/domain"
)

// ErrNegativeLeadTime rejects lead-time windows that would place dispatch
// after delivery.
var ErrNegativeLeadTime = errors.New("lead time days must not be negative")

// CustomerTotals groups the dataset by exact customer name and rolls up
// order count, quantity, value and earliest delivery per customer. The
// result is sorted by total value descending; the sort is stable, so
// customers with equal totals keep first-seen order.
func CustomerTotals(ds domain.Dataset) []domain.CustomerTotal {
	byName := make(map[string]*domain.CustomerTotal, len(ds))
	seen := make([]string, 0, len(ds))

	for _, o := range ds {
		t, ok := byName[o.Customer]
		if !ok {
			t = &domain.CustomerTotal{Customer: o.Customer, FirstDelivery: o.DeliveryDate}
			byName[o.Customer] = t
			seen = append(seen, o.Customer)
		}
		t.OrderCount++
		t.TotalQuantity += o.Quantity
		t.TotalValue += o.Total()
		if o.DeliveryDate.Before(t.FirstDelivery) {
			t.FirstDelivery = o.DeliveryDate
		}
	}

	totals := make([]domain.CustomerTotal, 0, len(seen))
	for _, name := range seen {
		totals = append(totals, *byName[name])
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalValue > totals[j].TotalValue
	})
	return totals
}

// FreightQueue projects every order into a freight entry with its dispatch
// date (delivery minus leadTimeDays calendar days) and urgency status, sorted
// by dispatch date ascending. Seq is assigned after the sort, so entry N
// never dispatches later than entry N+1. The sort is stable: entries sharing
// a dispatch date keep dataset order.
//
// An entry is URGENT when its dispatch date is on or before now's calendar
// date; the comparison drops time of day on both sides.
func FreightQueue(ds domain.Dataset, leadTimeDays int, now time.Time) ([]domain.FreightEntry, error) {
	if leadTimeDays < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeLeadTime, leadTimeDays)
	}

	today := dateOnly(now)
	queue := make([]domain.FreightEntry, 0, len(ds))
	for _, o := range ds {
		dispatch := o.DeliveryDate.AddDate(0, 0, -leadTimeDays)
		status := domain.StatusScheduled
		if !dateOnly(dispatch).After(today) {
			status = domain.StatusUrgent
		}
		queue = append(queue, domain.FreightEntry{
			OrderID:      o.ID,
			Customer:     o.Customer,
			Quantity:     o.Quantity,
			DeliveryDate: o.DeliveryDate,
			DispatchDate: dispatch,
			Status:       status,
		})
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].DispatchDate.Before(queue[j].DispatchDate)
	})
	for i := range queue {
		queue[i].Seq = i + 1
	}
	return queue, nil
}

// Summarize computes the run-wide metrics in one pass. An empty dataset
// yields zero counts, a zero mean and nil delivery bounds rather than an
// error.
func Summarize(ds domain.Dataset, now time.Time) domain.Summary {
	s := domain.Summary{GeneratedAt: now, TotalOrders: len(ds)}
	if len(ds) == 0 {
		return s
	}

	customers := make(map[string]struct{}, len(ds))
	first, last := ds[0].DeliveryDate, ds[0].DeliveryDate
	for _, o := range ds {
		customers[o.Customer] = struct{}{}
		s.TotalQuantity += o.Quantity
		s.TotalValue += o.Total()
		if o.DeliveryDate.Before(first) {
			first = o.DeliveryDate
		}
		if o.DeliveryDate.After(last) {
			last = o.DeliveryDate
		}
	}
	s.TotalCustomers = len(customers)
	s.MeanOrderValue = s.TotalValue / float64(len(ds))
	s.FirstDelivery = &first
	s.LastDelivery = &last
	return s
}

// UrgentCount is the notification signal: how many queue entries are URGENT.
func UrgentCount(queue []domain.FreightEntry) int {
	n := 0
	for _, f := range queue {
		if f.Status == domain.StatusUrgent {
			n++
		}
	}
	return n
}

// dateOnly reduces t to its calendar date. Zone offsets and time of day are
// deliberately discarded.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
