package supplier

import (
	"github.com/shopspring/decimal"

	"github.com/stockroom/replenish-backend/internal/domain"
)

var (
	maxScore       = decimal.NewFromInt(5)
	deliveryWeight = decimal.RequireFromString("0.7")
	onTimeWeight   = decimal.RequireFromString("0.3")
)

// Score rates a supplier in [0, 5] with two decimals. Seventy percent of
// the score is the share of closed orders that were delivered, thirty
// percent the share of deliveries that arrived on time. A history with
// no closed orders has no score.
func Score(h domain.SupplierHistory) (decimal.Decimal, bool) {
	total := h.Total()
	if total <= 0 {
		return decimal.Zero, false
	}

	delivered := decimal.NewFromInt(int64(h.Delivered))
	ratio := delivered.Div(decimal.NewFromInt(int64(total))).Mul(deliveryWeight)
	if h.Delivered > 0 {
		onTime := decimal.NewFromInt(int64(min(h.OnTime, h.Delivered)))
		ratio = ratio.Add(onTime.Div(delivered).Mul(onTimeWeight))
	}

	score := ratio.Mul(maxScore).Round(2)
	if score.IsNegative() {
		score = decimal.Zero
	}
	if score.GreaterThan(maxScore) {
		score = maxScore
	}
	return score, true
}
