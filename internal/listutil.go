package internal

import (
	"net/http"
	"strconv"
	"strings"

	"rfid-inventory-api/internal/report"
)

// parseResaleParams reads the recognized filter and page query parameters
// for the item list. Parsing is lenient: a missing or non-numeric page
// becomes page 1 rather than an error, and unknown parameters are ignored.
//
// Recognized: common_name (substring), tag_id (substring),
// last_contract_num (substring), rental_class_num (comma list),
// page (positive int).
func parseResaleParams(r *http.Request) (report.Filters, int) {
	values := r.URL.Query()

	filters := report.Filters{
		CommonName:    strings.TrimSpace(values.Get("common_name")),
		TagID:         strings.TrimSpace(values.Get("tag_id")),
		LastContract:  strings.TrimSpace(values.Get("last_contract_num")),
		RentalClasses: report.ParseClassList(values.Get("rental_class_num")),
	}

	page := 1
	if s := strings.TrimSpace(values.Get("page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}

	return filters, page
}
