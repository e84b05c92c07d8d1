// Package report builds the aggregate, filtered, and paginated views served
// by the resale endpoints. Everything here operates on rows already fetched
// from the store; nothing in this package touches the database.
package report

import (
	"sort"

	"rfid-inventory-api/internal/categorize"
	"rfid-inventory-api/internal/models"
)

// CategorySummary is one row of the category-level rollup.
type CategorySummary struct {
	Category    string `json:"category"`
	TotalAmount int    `json:"total_amount"`
	OnContract  int    `json:"on_contract"`
}

// CommonNameCount is one row of the per-category common-name rollup.
type CommonNameCount struct {
	CommonName string `json:"common_name"`
	Total      int    `json:"total"`
}

// Aggregate groups items by category and, within each category, by raw
// common name. The summary is sorted lexicographically by category label;
// the common-name slices keep first-seen order, which is what the UI shows
// by default.
func Aggregate(items []models.Item) ([]CategorySummary, map[string][]CommonNameCount) {
	totals := map[string]*CategorySummary{}
	names := map[string][]CommonNameCount{}
	nameIdx := map[string]map[string]int{}

	for _, it := range items {
		cat := categorize.Categorize(it.CommonName)

		sum, ok := totals[cat]
		if !ok {
			sum = &CategorySummary{Category: cat}
			totals[cat] = sum
		}
		sum.TotalAmount++
		if models.OnContract(it.Status) {
			sum.OnContract++
		}

		idx, ok := nameIdx[cat]
		if !ok {
			idx = map[string]int{}
			nameIdx[cat] = idx
		}
		if i, seen := idx[it.CommonName]; seen {
			names[cat][i].Total++
		} else {
			idx[it.CommonName] = len(names[cat])
			names[cat] = append(names[cat], CommonNameCount{CommonName: it.CommonName, Total: 1})
		}
	}

	summary := make([]CategorySummary, 0, len(totals))
	for _, sum := range totals {
		summary = append(summary, *sum)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Category < summary[j].Category
	})

	return summary, names
}
