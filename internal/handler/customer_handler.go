package handler

import (
	"encoding/json"
	"net/http"

	service "github.com/Vinay9897/postpaid-billing-system/internal/services"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type customerResponse struct {
	CustomerID  int64  `json:"customer_id"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type serviceResponse struct {
	ServiceID   int64  `json:"service_id"`
	CustomerID  int64  `json:"customer_id"`
	ServiceType string `json:"service_type"`
	StartDate   string `json:"start_date"`
	Status      string `json:"status"`
}

// Self-service customer profile routes. Owner only; admins use the
// /admin/customers family instead.

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeOwner(w, r, id) {
		return
	}

	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, customerResponse{
		CustomerID:  customer.ID,
		UserID:      customer.UserID,
		FullName:    customer.FullName,
		PhoneNumber: customer.PhoneNumber,
		Address:     customer.Address,
	})
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeOwner(w, r, id) {
		return
	}

	var req struct {
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.customers.UpdateCustomer(r.Context(), id, service.UpdateCustomerInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeOwner(w, r, id) {
		return
	}

	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListOwnServices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeOwner(w, r, id) {
		return
	}

	services, err := h.customers.ListServices(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]serviceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, serviceResponse{
			ServiceID:   s.ID,
			CustomerID:  s.CustomerID,
			ServiceType: s.ServiceType,
			StartDate:   s.StartDate.Format("2006-01-02"),
			Status:      s.Status,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
