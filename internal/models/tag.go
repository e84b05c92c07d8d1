package models

import "time"

// Tag record statuses. The tag table mirrors a subset of item state and is
// allowed to drift; the reconciler converges it back on every read.
const (
	TagStatusActive  = "active"
	TagStatusOutUsed = "out/used"
	TagStatusSold    = "sold"
)

// Tag item types. Only resale tags may be marked sold.
const (
	ItemTypeResale = "resale"
)

// TagRecord is the secondary per-tag status record. ReuseCount tracks how
// many times the physical tag has been repurposed across items.
type TagRecord struct {
	TagID           string     `json:"tag_id"`
	Status          string     `json:"status"`
	ItemType        string     `json:"item_type"`
	ReuseCount      int        `json:"reuse_count"`
	LastContractNum string     `json:"last_contract_num,omitempty"`
	DateUpdated     *time.Time `json:"date_updated,omitempty"`
	DateSold        *time.Time `json:"date_sold,omitempty"`
}

// ResaleItem is the merged read model served by the item list endpoint:
// the item master row joined with its (reconciled) tag record and the
// derived category label.
type ResaleItem struct {
	Item
	Category   string `json:"category"`
	TagStatus  string `json:"tag_status,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
	ReuseCount int    `json:"reuse_count,omitempty"`
}
