package report

import (
	"sort"

	"rfid-inventory-api/internal/models"
)

// DefaultPageSize is the page size used when config does not override it.
const DefaultPageSize = 20

// Page is one page of items plus the bookkeeping the UI needs to render a
// pager.
type Page struct {
	Items      []models.Item `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

// Paginate sorts items by tag id (the stable key) and slices out the
// requested page. The page number is clamped to [1, totalPages]; with no
// items the only valid page is 1 and the slice is empty. Never errors.
func Paginate(items []models.Item, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TagID < sorted[j].TagID
	})

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      sorted[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
