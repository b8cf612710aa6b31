package model

import "time"

// RevenuePoint is one calendar day of the revenue chart.
type RevenuePoint struct {
	Date    string `json:"date"` // YYYY-MM-DD, UTC
	Revenue int    `json:"revenue"`
}

// DashboardMetrics is the aggregate view the front-end polls.
type DashboardMetrics struct {
	Revenue        float64        `json:"revenue"`
	Target         float64        `json:"target"`
	Campaigns      int            `json:"campaigns"`
	Content        int            `json:"content"`
	Clients        int            `json:"clients"`
	Alerts         int            `json:"alerts"`
	ConversionRate float64        `json:"conversionRate"`
	RevenueData    []RevenuePoint `json:"revenueData"`
	LastUpdate     time.Time      `json:"lastUpdate"`
}

// Clone returns a deep copy so callers never share the revenue slice.
func (m DashboardMetrics) Clone() DashboardMetrics {
	out := m
	out.RevenueData = append([]RevenuePoint(nil), m.RevenueData...)
	return out
}
