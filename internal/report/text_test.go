package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvribas/order-freight-service/internal/domain"
)

func TestText_Sections(t *testing.T) {
	out := Text(fixtureRun())
	lines := strings.Split(out, "\n")

	require.NotEmpty(t, lines)
	assert.Equal(t, strings.Repeat("=", 80), lines[0])

	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "Total orders:")
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "Rejected rows:")
	assert.Contains(t, out, "TOP 5 CUSTOMERS BY TOTAL VALUE")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "URGENT FREIGHTS (1)")
	assert.Contains(t, out, "P2")
	assert.Contains(t, out, "dispatch 02/01/2024")
	assert.Contains(t, out, "Generated at 03/01/2024 08:00:00")
	assert.Contains(t, out, "3f1d7a48-9f0e-4a7b-8f71-2c54a1f0b9ad")
}

func TestText_TopFiveOnly(t *testing.T) {
	run := fixtureRun()
	run.Customers = nil
	for i := 1; i <= 7; i++ {
		run.Customers = append(run.Customers, domain.CustomerTotal{
			Customer:   fmt.Sprintf("Customer%02d", i),
			OrderCount: 1,
			TotalValue: float64(800 - i*100),
		})
	}

	out := Text(run)
	assert.Contains(t, out, "Customer01")
	assert.Contains(t, out, "Customer05")
	assert.NotContains(t, out, "Customer06")
	assert.NotContains(t, out, "Customer07")
}

func TestText_NoUrgentFreights(t *testing.T) {
	run := fixtureRun()
	for i := range run.Freights {
		run.Freights[i].Status = domain.StatusScheduled
	}
	run.UrgentCount = 0

	out := Text(run)
	assert.Contains(t, out, "URGENT FREIGHTS (0)")
	assert.Contains(t, out, "No urgent freights.")
}

func TestText_EmptyRun(t *testing.T) {
	out := Text(emptyRun())

	assert.Contains(t, out, "No customer data.")
	assert.Contains(t, out, "No urgent freights.")
	assert.Contains(t, out, "N/A")
}

func TestText_LinesFitWidth(t *testing.T) {
	for _, line := range strings.Split(Text(fixtureRun()), "\n") {
		assert.LessOrEqual(t, len(line), 80, "line %q", line)
	}
}

func TestCenter(t *testing.T) {
	centered := center("TITLE")
	assert.True(t, strings.HasSuffix(centered, "TITLE"))
	assert.Equal(t, (80-len("TITLE"))/2, strings.Index(centered, "T"))
}
