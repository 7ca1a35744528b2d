package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mvribas/order-freight-service/internal/domain"
)

const (
	sheetSummary   = "Summary"
	sheetCustomers = "Customer_Totals"
	sheetFreights  = "Freight_Queue"

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// ExcelWriter renders a run into a three-sheet workbook. All numbers are
// rounded to two decimals here; the views themselves are never rounded.
type ExcelWriter struct{}

func (w ExcelWriter) Write(path string, run *domain.RunResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, sheet := range []string{sheetCustomers, sheetFreights} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := w.writeSummary(f, bold, run); err != nil {
		return err
	}
	if err := w.writeCustomers(f, bold, run.Customers); err != nil {
		return err
	}
	if err := w.writeFreights(f, bold, run.Freights); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

func (w ExcelWriter) writeSummary(f *excelize.File, bold int, run *domain.RunResult) error {
	s := run.Summary
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Generated at", s.GeneratedAt.Format(dateTimeLayout)},
		{"Total orders", s.TotalOrders},
		{"Distinct customers", s.TotalCustomers},
		{"Total quantity", round2(s.TotalQuantity)},
		{"Total value", round2(s.TotalValue)},
		{"Mean order value", round2(s.MeanOrderValue)},
		{"First delivery", optDate(s.FirstDelivery)},
		{"Last delivery", optDate(s.LastDelivery)},
		{"Rejected rows", run.RejectedRows},
		{"Urgent freights", run.UrgentCount},
	}
	if err := writeRows(f, sheetSummary, rows); err != nil {
		return err
	}
	return f.SetCellStyle(sheetSummary, "A1", "B1", bold)
}

func (w ExcelWriter) writeCustomers(f *excelize.File, bold int, totals []domain.CustomerTotal) error {
	rows := [][]interface{}{
		{"Customer", "Orders", "Total Quantity", "Total Value", "First Delivery"},
	}
	for _, t := range totals {
		rows = append(rows, []interface{}{
			t.Customer,
			t.OrderCount,
			round2(t.TotalQuantity),
			round2(t.TotalValue),
			t.FirstDelivery.Format(dateLayout),
		})
	}
	if err := writeRows(f, sheetCustomers, rows); err != nil {
		return err
	}
	return f.SetCellStyle(sheetCustomers, "A1", "E1", bold)
}

func (w ExcelWriter) writeFreights(f *excelize.File, bold int, queue []domain.FreightEntry) error {
	rows := [][]interface{}{
		{"Seq", "Order", "Customer", "Quantity", "Delivery Date", "Dispatch Date", "Status"},
	}
	for _, fr := range queue {
		rows = append(rows, []interface{}{
			fr.Seq,
			fr.OrderID,
			fr.Customer,
			round2(fr.Quantity),
			fr.DeliveryDate.Format(dateLayout),
			fr.DispatchDate.Format(dateLayout),
			fr.Status.String(),
		})
	}
	if err := writeRows(f, sheetFreights, rows); err != nil {
		return err
	}
	return f.SetCellStyle(sheetFreights, "A1", "G1", bold)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func optDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(dateLayout)
}
