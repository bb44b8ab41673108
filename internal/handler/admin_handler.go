package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	service "github.com/Vinay9897/postpaid-billing-system/internal/services"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type userResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	userID, err := h.adminUsers.CreateUser(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"user_id": userID})
}

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	users, err := h.adminUsers.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	user, err := h.adminUsers.GetUser(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.adminUsers.UpdateUser(r.Context(), id, service.UpdateUserInput{
		Email: req.Email,
		Role:  req.Role,
	}); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) AdminSetPassword(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.adminUsers.SetPassword(r.Context(), id, req.Password); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if err := h.adminUsers.DeleteUser(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminCreateCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	var req struct {
		UserID      int64  `json:"user_id"`
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	customerID, err := h.customers.CreateCustomer(r.Context(), &models.Customer{
		UserID:      req.UserID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"customer_id": customerID})
}

func (h *Handler) AdminListCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, customerResponse{
			CustomerID:  c.ID,
			UserID:      c.UserID,
			FullName:    c.FullName,
			PhoneNumber: c.PhoneNumber,
			Address:     c.Address,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminGetCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
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

func (h *Handler) AdminUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
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

func (h *Handler) AdminDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminCreateService(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	var req struct {
		ServiceType string `json:"service_type"`
		StartDate   string `json:"start_date"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	svc := &models.Service{
		ServiceType: req.ServiceType,
		Status:      req.Status,
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
			return
		}
		svc.StartDate = start
	}

	serviceID, err := h.customers.CreateService(r.Context(), id, svc)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"service_id": serviceID})
}

func (h *Handler) AdminListServices(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(w, r) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
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
			StartDate:   s.StartDate.Format(dateLayout),
			Status:      s.Status,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
