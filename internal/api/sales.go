package api

import (
	"net/http"

	"inventory/m/domain"
)

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req domain.SaleInput
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	s, err := h.svc.CreateSale(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, s)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	s, err := h.svc.GetSale(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
