package models

import "time"

// Item statuses used by the item master. The scanner writes these verbatim,
// so the strings match the vocabulary of the upstream POS system.
const (
	StatusReadyToRent = "Ready to Rent"
	StatusOnRent      = "On Rent"
	StatusDelivered   = "Delivered"
	StatusSold        = "Sold"
)

// Item is the authoritative inventory record for a physical asset, keyed by
// its RFID tag. Items are never hard-deleted; a retired item transitions to
// the terminal "Sold" status instead.
type Item struct {
	TagID           string     `json:"tag_id"`
	CommonName      string     `json:"common_name"`
	BinLocation     string     `json:"bin_location,omitempty"`
	Status          string     `json:"status"`
	LastContractNum string     `json:"last_contract_num,omitempty"`
	RentalClassNum  string     `json:"rental_class_num,omitempty"`
	ScanDate        *time.Time `json:"scan_date,omitempty"`
	ScanBy          string     `json:"scan_by,omitempty"`
}

// OnContract reports whether a status means the item is currently deployed
// with a customer.
func OnContract(status string) bool {
	return status == StatusOnRent || status == StatusDelivered
}

// BinCount is a distinct bin location with the number of items stored there.
type BinCount struct {
	BinLocation string `json:"bin_location"`
	ItemCount   int    `json:"item_count"`
}
