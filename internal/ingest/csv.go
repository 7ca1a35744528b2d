package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mvribas/order-freight-service/internal/domain"
	"github.com/mvribas/order-freight-service/internal/logger"
)

const dateLayout = "02/01/2006"

// Column names follow the upstream ERP export.
var requiredColumns = []string{"C6_NUM", "C6_CLIENTE", "C6_ENTREG", "Qtd", "Preço"}

var (
	ErrEmptyFile      = errors.New("csv file has no data rows")
	ErrMissingColumns = errors.New("csv file is missing required columns")
)

// CSVReader loads the order dataset from a CSV export. Rows that fail
// validation are dropped and counted, never passed downstream.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) (*CSVReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}
	return &CSVReader{path: path}, nil
}

// Read parses the bound file and returns the valid orders plus the number of
// rejected rows. A file with a header but no data rows at all is an error; a
// file whose rows are all rejected is not.
func (r *CSVReader) Read() (domain.Dataset, int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: %s", ErrEmptyFile, r.path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header of %q: %w", r.path, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		ds       domain.Dataset
		rejected int
		line     = 1
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				rejected++
				logger.Warn("rejected malformed row", "file", r.path, "line", line)
				continue
			}
			return nil, 0, fmt.Errorf("read row %d of %q: %w", line, r.path, err)
		}

		order, err := parseOrder(record, idx)
		if err != nil {
			rejected++
			logger.Warn("rejected invalid row", "file", r.path, "line", line, "reason", err.Error())
			continue
		}
		ds = append(ds, order)
	}

	if len(ds) == 0 && rejected == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrEmptyFile, r.path)
	}
	if rejected > 0 {
		logger.Warn("ingestion dropped rows", "file", r.path, "rejected", rejected, "accepted", len(ds))
	}
	return ds, rejected, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			// Excel exports tend to prefix a BOM.
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseOrder(record []string, idx map[string]int) (domain.Order, error) {
	field := func(col string) string { return strings.TrimSpace(record[idx[col]]) }

	id := field("C6_NUM")
	customer := field("C6_CLIENTE")
	if id == "" || customer == "" {
		return domain.Order{}, errors.New("empty order id or customer")
	}

	delivery, err := time.Parse(dateLayout, field("C6_ENTREG"))
	if err != nil {
		return domain.Order{}, fmt.Errorf("delivery date: %w", err)
	}
	qty, err := parseNumber(field("Qtd"))
	if err != nil {
		return domain.Order{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := parseNumber(field("Preço"))
	if err != nil {
		return domain.Order{}, fmt.Errorf("unit price: %w", err)
	}
	if qty < 0 || price < 0 {
		return domain.Order{}, errors.New("negative quantity or price")
	}

	return domain.Order{
		ID:           id,
		Customer:     customer,
		DeliveryDate: delivery,
		Quantity:     qty,
		UnitPrice:    price,
	}, nil
}

// parseNumber accepts both "1234.56" and the ERP's "1.234,56" form.
func parseNumber(s string) (float64, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
