package internal

import (
	"errors"
	"log/slog"
	"net/http"

	"rfid-inventory-api/internal/categorize"
	"rfid-inventory-api/internal/models"
	"rfid-inventory-api/internal/report"
	"rfid-inventory-api/internal/store"

	"github.com/go-chi/chi/v5"
)

// listResponse is the envelope for the paginated item list.
type listResponse struct {
	Items      []models.ResaleItem `json:"items"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalItems int                 `json:"total_items"`
	TotalPages int                 `json:"total_pages"`
}

// listResaleItems serves the filtered, paginated item list. Reconciliation
// runs here as a side effect of the read: every fetched tag is converged
// toward its item before the response is built. A reconcile write failure
// never fails the request; the caller gets the best-known state.
func (s *Server) listResaleItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.Store.ListItems(ctx)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	itemsByTag := make(map[string]models.Item, len(items))
	for _, it := range items {
		itemsByTag[it.TagID] = it
	}

	// Tag fetch failure degrades to items without tag detail.
	tagsByID := map[string]models.TagRecord{}
	if tags, err := s.Store.ListTags(ctx); err != nil {
		slog.Warn("tag fetch failed, serving unreconciled items", "error", err)
	} else {
		reconciled, applied := s.Reconciler.Reconcile(ctx, tags, itemsByTag)
		s.Metrics.ObserveCorrections(applied)
		for _, t := range reconciled {
			tagsByID[t.TagID] = t
		}
	}

	filters, page := parseResaleParams(r)
	p := report.Paginate(filters.Apply(items), page, s.PageSize)

	out := make([]models.ResaleItem, 0, len(p.Items))
	for _, it := range p.Items {
		ri := models.ResaleItem{
			Item:     it,
			Category: categorize.Categorize(it.CommonName),
		}
		if tag, ok := tagsByID[it.TagID]; ok {
			ri.TagStatus = tag.Status
			ri.ItemType = tag.ItemType
			ri.ReuseCount = tag.ReuseCount
		}
		out = append(out, ri)
	}

	sendJSON(w, http.StatusOK, listResponse{
		Items:      out,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	})
}

// listResaleCategories serves the category-level rollup, sorted by label.
func (s *Server) listResaleCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.ListItems(r.Context())
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary, _ := report.Aggregate(items)
	sendJSON(w, http.StatusOK, map[string]any{"categories": summary})
}

// listCommonNames serves the per-category common-name counts. With a
// category parameter the response is that category's slice (empty for an
// unknown label); without one it is the full index.
func (s *Server) listCommonNames(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.ListItems(r.Context())
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_, names := report.Aggregate(items)

	if category := r.URL.Query().Get("category"); category != "" {
		counts := names[category]
		if counts == nil {
			counts = []report.CommonNameCount{}
		}
		sendJSON(w, http.StatusOK, map[string]any{"category": category, "common_names": counts})
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"common_names": names})
}

// sellTag performs the terminal sell transition for one tag. Errors map to
// status codes here and nowhere deeper: NotFound 404, InvalidState 400,
// anything else 500.
func (s *Server) sellTag(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "tagID")
	if tagID == "" {
		sendError(w, http.StatusBadRequest, "tag id is required")
		return
	}

	err := s.Store.MarkTagSold(r.Context(), tagID)
	switch {
	case err == nil:
		s.Metrics.ItemSold()
		sendMessage(w, "tag "+tagID+" marked sold")
	case errors.Is(err, store.ErrNotFound):
		sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidState):
		sendError(w, http.StatusBadRequest, err.Error())
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

// getResaleGoals serves the cached per-category goals; refresh=true forces
// a reload.
func (s *Server) getResaleGoals(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	goals, err := s.Goals.Get(r.Context(), refresh)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{"goals": goals})
}
