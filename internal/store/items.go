package store

import (
	"context"

	"rfid-inventory-api/internal/models"
)

// ListItems fetches the full item master, ordered by tag id. The read path
// re-fetches on every request; there is no cross-request caching of item
// state.
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT tag_id, common_name, bin_location, status, last_contract_num,
		       rental_class_num, scan_date, scan_by
		FROM items
		ORDER BY tag_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(
			&it.TagID, &it.CommonName, &it.BinLocation, &it.Status,
			&it.LastContractNum, &it.RentalClassNum, &it.ScanDate, &it.ScanBy,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListBins returns distinct bin locations with item counts, skipping items
// with no bin assigned.
func (s *Store) ListBins(ctx context.Context) ([]models.BinCount, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT bin_location, COUNT(*) AS item_count
		FROM items
		WHERE bin_location <> ''
		GROUP BY bin_location
		ORDER BY bin_location`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bins := []models.BinCount{}
	for rows.Next() {
		var b models.BinCount
		if err := rows.Scan(&b.BinLocation, &b.ItemCount); err != nil {
			return nil, err
		}
		bins = append(bins, b)
	}
	return bins, rows.Err()
}
