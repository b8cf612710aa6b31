package calculator

import (
	"errors"
	"math"
)

// AlertThreshold is the revenue-to-target percentage below which analytics raises an alert.
const AlertThreshold = 70.0

// CalculateRevenuePercentage returns revenue as a percentage of target.
func CalculateRevenuePercentage(revenue, target float64) (float64, error) {
	if target <= 0 {
		return 0, errors.New("target must be positive")
	}
	return revenue / target * 100, nil
}

// CalculateConversionRate returns conversions per email as a percentage, rounded to 2 decimals.
func CalculateConversionRate(conversions, emails int) (float64, error) {
	if emails <= 0 {
		return 0, errors.New("no emails sent")
	}
	return RoundTo(float64(conversions)/float64(emails)*100, 2), nil
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// IsBelowTarget reports whether revenue sits under AlertThreshold percent of target.
// A non-positive target never alerts.
func IsBelowTarget(revenue, target float64) bool {
	pct, err := CalculateRevenuePercentage(revenue, target)
	if err != nil {
		return false
	}
	return pct < AlertThreshold
}
