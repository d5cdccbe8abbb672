package api

import (
	"net/http"

	"inventory/m/domain"
)

func (h *Handler) createBudget(w http.ResponseWriter, r *http.Request) {
	var req domain.BudgetInput
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	b, err := h.svc.CreateBudget(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.ListBudgets(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (h *Handler) getBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	b, err := h.svc.GetBudget(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var req domain.BudgetInput
	if err := decodeJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	b, err := h.svc.UpdateBudget(r.Context(), id, req)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	respondDeleted(w, "Budget")
}
