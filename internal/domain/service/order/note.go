package order

import (
	"fmt"
	"strings"

	"dealsync/internal/domain/entity"
)

const noteHeader = "CUSTOM ITEMS (from Pipedrive):"

// RenderNote lists custom items for the order's free-text field. It returns
// an empty string when there is nothing to list.
func RenderNote(items []entity.CustomItemNote) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, noteHeader)

	for _, item := range items {
		stockCode := ""
		if item.StockCode != "" {
			stockCode = fmt.Sprintf(" (Pipedrive SKU: %s)", item.StockCode)
		}

		lines = append(lines, fmt.Sprintf(
			"  - Row %d: %s%s (Qty: %d, Price: %s)",
			item.RowIndex,
			item.Name,
			stockCode,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
		))
	}

	return strings.Join(lines, "\n")
}
