package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/auth"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	service "github.com/Vinay9897/postpaid-billing-system/internal/services"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"github.com/gorilla/mux"
)

type Handler struct {
	auth       service.AuthService
	adminUsers service.AdminUserService
	customers  service.CustomerService
	billing    service.BillingService
}

func NewHandler(
	authSvc service.AuthService,
	adminUsers service.AdminUserService,
	customers service.CustomerService,
	billing service.BillingService,
) *Handler {
	return &Handler{
		auth:       authSvc,
		adminUsers: adminUsers,
		customers:  customers,
		billing:    billing,
	}
}

// RegisterRoutes wires every endpoint onto the router. Authorization is
// composed per handler, not per subtree: the self-service customer
// routes and the back-office admin routes are deliberately separate
// families, and an admin gets no ownership bypass on the former.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")

	r.HandleFunc("/customers/{id}", h.GetCustomer).Methods("GET")
	r.HandleFunc("/customers/{id}", h.UpdateCustomer).Methods("PUT")
	r.HandleFunc("/customers/{id}", h.DeleteCustomer).Methods("DELETE")
	r.HandleFunc("/customers/{id}/services", h.ListOwnServices).Methods("GET")

	r.HandleFunc("/customers/{id}/invoices", h.ListInvoices).Methods("GET")
	r.HandleFunc("/customers/{id}/invoices", h.CreateInvoice).Methods("POST")
	r.HandleFunc("/invoices/{id}/payments", h.ListPayments).Methods("GET")
	r.HandleFunc("/invoices/{id}/payments", h.RecordPayment).Methods("POST")
	r.HandleFunc("/services/{id}/usage", h.ListUsageRecords).Methods("GET")
	r.HandleFunc("/services/{id}/usage", h.CreateUsageRecord).Methods("POST")

	r.HandleFunc("/admin/users", h.AdminCreateUser).Methods("POST")
	r.HandleFunc("/admin/users", h.AdminListUsers).Methods("GET")
	r.HandleFunc("/admin/users/{id}", h.AdminGetUser).Methods("GET")
	r.HandleFunc("/admin/users/{id}", h.AdminUpdateUser).Methods("PUT")
	r.HandleFunc("/admin/users/{id}", h.AdminDeleteUser).Methods("DELETE")
	r.HandleFunc("/admin/users/{id}/password", h.AdminSetPassword).Methods("POST")

	r.HandleFunc("/admin/customers", h.AdminCreateCustomer).Methods("POST")
	r.HandleFunc("/admin/customers", h.AdminListCustomers).Methods("GET")
	r.HandleFunc("/admin/customers/{id}", h.AdminGetCustomer).Methods("GET")
	r.HandleFunc("/admin/customers/{id}", h.AdminUpdateCustomer).Methods("PUT")
	r.HandleFunc("/admin/customers/{id}", h.AdminDeleteCustomer).Methods("DELETE")
	r.HandleFunc("/admin/customers/{id}/services", h.AdminCreateService).Methods("POST")
	r.HandleFunc("/admin/customers/{id}/services", h.AdminListServices).Methods("GET")
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeServiceError maps domain sentinels onto status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, pkgerrors.ErrUnauthorized)
	case errors.Is(err, pkgerrors.ErrForbidden):
		h.writeError(w, http.StatusForbidden, pkgerrors.ErrForbidden)
	case errors.Is(err, pkgerrors.ErrUserNotFound),
		errors.Is(err, pkgerrors.ErrCustomerNotFound),
		errors.Is(err, pkgerrors.ErrServiceNotFound),
		errors.Is(err, pkgerrors.ErrInvoiceNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, pkgerrors.ErrUsernameExists),
		errors.Is(err, pkgerrors.ErrEmailExists):
		h.writeError(w, http.StatusConflict, err)
	case errors.Is(err, pkgerrors.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, pkgerrors.ErrInvalidInput),
		errors.Is(err, pkgerrors.ErrInvalidRole):
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.writeError(w, http.StatusInternalServerError, pkgerrors.ErrInternal)
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// authorizeOwner enforces the self-service rule: only the user owning
// customer profile customerID may proceed. Admins are not exempt; they
// have their own route family. Writes the response itself on failure.
func (h *Handler) authorizeOwner(w http.ResponseWriter, r *http.Request, customerID int64) bool {
	principal := auth.PrincipalFromContext(r.Context())
	if err := auth.RequireAuthenticated(principal); err != nil {
		h.writeServiceError(w, err)
		return false
	}

	ownerID, err := h.customers.OwnerUserID(r.Context(), customerID)
	if err != nil {
		h.writeServiceError(w, err)
		return false
	}

	if err := auth.RequireOwner(principal, strconv.FormatInt(ownerID, 10)); err != nil {
		h.writeServiceError(w, err)
		return false
	}
	return true
}

// authorizeAdmin enforces the back-office rule.
func (h *Handler) authorizeAdmin(w http.ResponseWriter, r *http.Request) bool {
	principal := auth.PrincipalFromContext(r.Context())
	if err := auth.RequireRole(principal, models.RoleAdmin); err != nil {
		h.writeServiceError(w, err)
		return false
	}
	return true
}
