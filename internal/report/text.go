package report

import (
	"fmt"
	"strings"

	"github.com/mvribas/order-freight-service/internal/domain"
)

const (
	lineWidth = 80
	topN      = 5
)

// Text renders the run as a fixed-width plain text report, suitable for log
// archives and email bodies.
func Text(run *domain.RunResult) string {
	var b strings.Builder
	heavy := strings.Repeat("=", lineWidth)
	light := strings.Repeat("-", lineWidth)

	b.WriteString(heavy + "\n")
	b.WriteString(center("ORDER AND FREIGHT PROCESSING REPORT") + "\n")
	b.WriteString(heavy + "\n\n")

	s := run.Summary
	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString(light + "\n")
	fmt.Fprintf(&b, "%-22s %d\n", "Total orders:", s.TotalOrders)
	fmt.Fprintf(&b, "%-22s %d\n", "Distinct customers:", s.TotalCustomers)
	fmt.Fprintf(&b, "%-22s %.2f\n", "Total quantity:", s.TotalQuantity)
	fmt.Fprintf(&b, "%-22s %.2f\n", "Total value:", s.TotalValue)
	fmt.Fprintf(&b, "%-22s %.2f\n", "Mean order value:", s.MeanOrderValue)
	fmt.Fprintf(&b, "%-22s %s\n", "First delivery:", optDate(s.FirstDelivery))
	fmt.Fprintf(&b, "%-22s %s\n", "Last delivery:", optDate(s.LastDelivery))
	fmt.Fprintf(&b, "%-22s %d\n", "Rejected rows:", run.RejectedRows)
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d CUSTOMERS BY TOTAL VALUE\n", topN)
	b.WriteString(light + "\n")
	if len(run.Customers) == 0 {
		b.WriteString("No customer data.\n")
	}
	for i, c := range run.Customers {
		if i == topN {
			break
		}
		fmt.Fprintf(&b, "%2d. %-40s %4d orders %14.2f\n",
			i+1, c.Customer, c.OrderCount, round2(c.TotalValue))
	}
	b.WriteString("\n")

	urgent := run.FreightsByStatus(domain.StatusUrgent)
	fmt.Fprintf(&b, "URGENT FREIGHTS (%d)\n", len(urgent))
	b.WriteString(light + "\n")
	if len(urgent) == 0 {
		b.WriteString("No urgent freights.\n")
	}
	for _, fr := range urgent {
		fmt.Fprintf(&b, "%4d. %-12s %-30s dispatch %s qty %.2f\n",
			fr.Seq, fr.OrderID, fr.Customer, fr.DispatchDate.Format(dateLayout), fr.Quantity)
	}
	b.WriteString("\n")

	b.WriteString(heavy + "\n")
	fmt.Fprintf(&b, "Generated at %s (run %s)\n", s.GeneratedAt.Format(dateTimeLayout), run.RunID)
	b.WriteString(heavy + "\n")

	return b.String()
}

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	return strings.Repeat(" ", (lineWidth-len(s))/2) + s
}
