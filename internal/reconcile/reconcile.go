// Package reconcile converges tag records toward the authoritative item
// master. Drift is corrected as a side effect of reading: the item list
// handler runs a pass over every (item, tag) pair it fetched, and each
// correction is written back immediately as its own unit of work.
package reconcile

import (
	"context"
	"log/slog"
	"time"

	"rfid-inventory-api/internal/models"
)

// Correction is one planned tag-state transition. ContractNum is the value
// the tag's last_contract_num should take; empty clears it.
type Correction struct {
	TagID       string    `json:"tag_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ContractNum string    `json:"contract_num,omitempty"`
	At          time.Time `json:"at"`
}

// Writer persists a single correction. Implementations must scope the write
// to the tag row and its observed status (compare-and-swap), returning the
// number of rows affected so a lost race shows up as zero.
type Writer interface {
	ApplyCorrection(ctx context.Context, c Correction) (int64, error)
}

// Reconciler applies the two-rule tag state machine against a Writer.
type Reconciler struct {
	writer Writer
	log    *slog.Logger
	now    func() time.Time
}

// New builds a Reconciler. A nil logger falls back to slog.Default and a
// nil clock to time.Now; tests inject a fixed clock.
func New(writer Writer, log *slog.Logger, now func() time.Time) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Reconciler{writer: writer, log: log, now: now}
}

// Plan decides the transition for one (item, tag) pair. The item status is
// authoritative:
//
//	A: item On Rent/Delivered, tag not out/used  -> out/used, copy contract
//	B: item Ready to Rent, tag out/used          -> active, clear contract
//
// Every other combination is a deliberate no-op; the source system leaves
// them unspecified and we do not invent transitions for them.
func Plan(item models.Item, tag models.TagRecord, now time.Time) (Correction, bool) {
	switch {
	case models.OnContract(item.Status) && tag.Status != models.TagStatusOutUsed:
		return Correction{
			TagID:       tag.TagID,
			FromStatus:  tag.Status,
			ToStatus:    models.TagStatusOutUsed,
			ContractNum: item.LastContractNum,
			At:          now,
		}, true
	case item.Status == models.StatusReadyToRent && tag.Status == models.TagStatusOutUsed:
		return Correction{
			TagID:      tag.TagID,
			FromStatus: tag.Status,
			ToStatus:   models.TagStatusActive,
			At:         now,
		}, true
	}
	return Correction{}, false
}

// Reconcile runs one pass over the tag records, writing each planned
// correction through the Writer. Failures are isolated per tag: a failed or
// lost write is logged and the caller gets the tag's last known (still
// drifted) state back, never an error. The returned corrections are only
// those that actually persisted.
func (r *Reconciler) Reconcile(ctx context.Context, tags []models.TagRecord, itemsByTag map[string]models.Item) ([]models.TagRecord, []Correction) {
	out := make([]models.TagRecord, len(tags))
	var applied []Correction

	for i, tag := range tags {
		out[i] = tag

		item, ok := itemsByTag[tag.TagID]
		if !ok {
			continue
		}
		c, ok := Plan(item, tag, r.now())
		if !ok {
			continue
		}

		n, err := r.writer.ApplyCorrection(ctx, c)
		if err != nil {
			r.log.Warn("tag correction failed",
				"tag_id", c.TagID, "to_status", c.ToStatus, "error", err)
			continue
		}
		if n == 0 {
			// Concurrent mutation won the row; next read re-plans.
			r.log.Debug("tag correction lost race", "tag_id", c.TagID)
			continue
		}

		out[i].Status = c.ToStatus
		out[i].LastContractNum = c.ContractNum
		at := c.At
		out[i].DateUpdated = &at
		applied = append(applied, c)
	}

	return out, applied
}
