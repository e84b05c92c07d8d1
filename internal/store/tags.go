package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rfid-inventory-api/internal/models"
	"rfid-inventory-api/internal/reconcile"
)

// ListTags fetches every tag record, ordered by tag id.
func (s *Store) ListTags(ctx context.Context) ([]models.TagRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT tag_id, status, item_type, reuse_count, last_contract_num,
		       date_updated, date_sold
		FROM tags
		ORDER BY tag_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.TagRecord{}
	for rows.Next() {
		var t models.TagRecord
		if err := rows.Scan(
			&t.TagID, &t.Status, &t.ItemType, &t.ReuseCount,
			&t.LastContractNum, &t.DateUpdated, &t.DateSold,
		); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ApplyCorrection writes one reconciliation transition. The WHERE clause
// pins both the tag id and the status the reconciler observed, so a
// concurrent mutation of the same tag (a sell, another reconcile pass)
// makes this a zero-row update instead of a lost-update overwrite.
func (s *Store) ApplyCorrection(ctx context.Context, c reconcile.Correction) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE tags
		SET status = $1, last_contract_num = $2, date_updated = $3
		WHERE tag_id = $4 AND status = $5`,
		c.ToStatus, c.ContractNum, c.At, c.TagID, c.FromStatus)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkTagSold performs the terminal sell transition for a resale tag.
// Preconditions are checked in order inside one transaction with the row
// locked, so the whole check-then-update is atomic per tag:
//
//	missing tag          -> ErrNotFound
//	item_type != resale  -> ErrInvalidState
//	rows affected != 1   -> ErrPersistenceFailure
//
// On success the tag is sold, both timestamps are stamped, and the reuse
// counter is incremented.
func (s *Store) MarkTagSold(ctx context.Context, tagID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistenceFailure, err)
	}
	defer tx.Rollback()

	var itemType string
	err = tx.QueryRowContext(ctx,
		`SELECT item_type FROM tags WHERE tag_id = $1 FOR UPDATE`, tagID,
	).Scan(&itemType)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: tag %s", ErrNotFound, tagID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if itemType != models.ItemTypeResale {
		return fmt.Errorf("%w: tag %s is not a resale item", ErrInvalidState, tagID)
	}

	now := s.now()
	res, err := tx.ExecContext(ctx, `
		UPDATE tags
		SET status = $1, date_sold = $2, date_updated = $2,
		    reuse_count = reuse_count + 1
		WHERE tag_id = $3`,
		models.TagStatusSold, now, tagID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if n != 1 {
		return fmt.Errorf("%w: expected 1 row, got %d", ErrPersistenceFailure, n)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistenceFailure, err)
	}
	return nil
}
