package api

import (
	"net/http"
	"strconv"

	"inventory/m/domain"
)

func (h *Handler) listRevenue(w http.ResponseWriter, r *http.Request) {
	revs, err := h.svc.Revenue(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, revs)
}

func (h *Handler) getRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	rev, err := h.svc.SaleRevenue(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rev)
}

func (h *Handler) revenueSummary(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			fail(w, r, domain.Validationf("year must be a number"))
			return
		}
		year = y
	}
	summary, err := h.svc.RevenueSummary(r.Context(), year)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) revenueTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.svc.ProductTrends(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trends)
}
