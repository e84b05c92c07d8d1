package report

import (
	"strings"

	"rfid-inventory-api/internal/models"
)

// Filters narrows an item set. All predicates are optional and AND-combined:
// substring matches are case-insensitive, RentalClasses is exact membership.
type Filters struct {
	CommonName    string
	TagID         string
	LastContract  string
	RentalClasses []string
}

// ParseClassList splits a comma-separated rental class list, trimming
// whitespace and dropping empty elements.
func ParseClassList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsZero reports whether no predicate is set.
func (f Filters) IsZero() bool {
	return f.CommonName == "" && f.TagID == "" && f.LastContract == "" && len(f.RentalClasses) == 0
}

// Match reports whether an item satisfies every set predicate.
func (f Filters) Match(it models.Item) bool {
	if f.CommonName != "" && !containsFold(it.CommonName, f.CommonName) {
		return false
	}
	if f.TagID != "" && !containsFold(it.TagID, f.TagID) {
		return false
	}
	if f.LastContract != "" && !containsFold(it.LastContractNum, f.LastContract) {
		return false
	}
	if len(f.RentalClasses) > 0 {
		found := false
		for _, c := range f.RentalClasses {
			if it.RentalClassNum == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the items matching every set predicate, preserving input
// order. A zero Filters returns the input unchanged.
func (f Filters) Apply(items []models.Item) []models.Item {
	if f.IsZero() {
		return items
	}
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
