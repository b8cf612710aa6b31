package commerce

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// orderTotalFields are checked in order. Missing, null, false, empty-string
// and numeric zero values fall through to the next field.
var orderTotalFields = []string{"total_price_usd", "total_price"}

// OrderTotal extracts an order's total price. Shopify sends prices as decimal
// strings; a missing or unparsable total counts as 0.
func OrderTotal(order json.RawMessage) float64 {
	for _, field := range orderTotalFields {
		v := gjson.GetBytes(order, field)
		if !v.Exists() || v.Type == gjson.Null || v.Type == gjson.False || v.String() == "" {
			continue
		}
		if v.Type == gjson.Number && v.Num == 0 {
			continue
		}
		return v.Float()
	}
	return 0
}

// SumOrderTotals adds up OrderTotal across orders.
func SumOrderTotals(orders []json.RawMessage) float64 {
	var sum float64
	for _, o := range orders {
		sum += OrderTotal(o)
	}
	return sum
}
