package calculator

import (
	"fmt"
	"math"
	"time"

	"PulseBoard/internal/model"
)

// MaxSeriesDays caps the revenue chart length.
const MaxSeriesDays = 30

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SeedRevenueSeries builds a plausible chart of the `days` calendar days ending at end.
// noise must return values in [0, 1).
func SeedRevenueSeries(end time.Time, days int, noise func() float64) []model.RevenuePoint {
	if days <= 0 {
		return nil
	}
	const base = 120.0
	series := make([]model.RevenuePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		variation := math.Sin(float64(i)*0.2) * 50
		revenue := math.Max(50, base+variation+(noise()*100-50))
		series = append(series, model.RevenuePoint{
			Date:    DateKey(end.AddDate(0, 0, -i)),
			Revenue: int(math.Floor(revenue)),
		})
	}
	return series
}

// UpsertRevenuePoint overwrites the last point when it is for date, otherwise appends
// a new point, then keeps only the most recent limit points. A date older than the last
// point is rejected so the series stays chronological.
func UpsertRevenuePoint(series []model.RevenuePoint, date string, revenue, limit int) ([]model.RevenuePoint, error) {
	if n := len(series); n > 0 {
		last := series[n-1]
		switch {
		case last.Date == date:
			series[n-1].Revenue = revenue
			return TrimSeries(series, limit), nil
		case date < last.Date:
			return series, fmt.Errorf("date %s precedes last entry %s", date, last.Date)
		}
	}
	series = append(series, model.RevenuePoint{Date: date, Revenue: revenue})
	return TrimSeries(series, limit), nil
}

// TrimSeries drops the oldest points so at most limit remain.
func TrimSeries(series []model.RevenuePoint, limit int) []model.RevenuePoint {
	if limit <= 0 || len(series) <= limit {
		return series
	}
	return append([]model.RevenuePoint(nil), series[len(series)-limit:]...)
}
