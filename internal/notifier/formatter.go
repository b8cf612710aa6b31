package notifier

import (
	"fmt"
	"strings"

	"PulseBoard/internal/model"
)

// FormatRevenueAlert formats the below-target revenue alert.
func FormatRevenueAlert(m *model.DashboardMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚠️ <b>PulseBoard revenue alert</b> | %s\n\n", m.LastUpdate.UTC().Format("2006-01-02 15:04")))

	pct := 0.0
	if m.Target > 0 {
		pct = m.Revenue / m.Target * 100
	}
	b.WriteString(fmt.Sprintf("Revenue: $%.0f of $%.0f target (%.1f%%)\n", m.Revenue, m.Target, pct))
	b.WriteString(fmt.Sprintf("Conversion rate: %.2f%%\n", m.ConversionRate))
	b.WriteString(fmt.Sprintf("Active campaigns: %d | Clients: %d\n", m.Campaigns, m.Clients))
	b.WriteString(fmt.Sprintf("Alerts raised: %d\n", m.Alerts))

	if n := len(m.RevenueData); n > 0 {
		last := m.RevenueData[n-1]
		b.WriteString(fmt.Sprintf("\nLatest daily point: %s = $%d\n", last.Date, last.Revenue))
	}
	return b.String()
}

// FormatRevenueRecovered formats the message sent when revenue climbs back over the threshold.
func FormatRevenueRecovered(m *model.DashboardMetrics) string {
	return fmt.Sprintf("✅ <b>PulseBoard revenue recovered</b>\n\nRevenue: $%.0f of $%.0f target", m.Revenue, m.Target)
}
