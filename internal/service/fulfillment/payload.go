package fulfillment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
)

func productIDs(lines []domain.StockLine) []uuid.UUID {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	return ids
}

func describeLines(lines []domain.StockLine) string {
	if len(lines) == 0 {
		return "no catalog lines"
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%s x%d", l.ProductID, l.Quantity)
	}
	return strings.Join(parts, ", ")
}

func linePayload(lines []domain.StockLine) []map[string]any {
	out := make([]map[string]any, len(lines))
	for i, l := range lines {
		out[i] = map[string]any{"productId": l.ProductID.String(), "quantity": l.Quantity}
	}
	return out
}

// alertPayload lists only the products that crossed into LOW or OUT.
func alertPayload(changes []domain.StockChange) []map[string]any {
	var out []map[string]any
	for _, c := range changes {
		if !c.Status.NeedsAlert() {
			continue
		}
		out = append(out, map[string]any{
			"productId": c.ProductID.String(),
			"current":   c.Current,
			"threshold": c.Threshold,
			"status":    c.Status.String(),
		})
	}
	return out
}
