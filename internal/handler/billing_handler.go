package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/auth"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type invoiceResponse struct {
	InvoiceID          int64   `json:"invoice_id"`
	CustomerID         int64   `json:"customer_id"`
	BillingPeriodStart string  `json:"billing_period_start"`
	BillingPeriodEnd   string  `json:"billing_period_end"`
	TotalAmount        float64 `json:"total_amount"`
	Status             string  `json:"status"`
}

type paymentResponse struct {
	PaymentID     int64   `json:"payment_id"`
	InvoiceID     int64   `json:"invoice_id"`
	PaymentDate   string  `json:"payment_date"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

type usageResponse struct {
	UsageID   int64   `json:"usage_id"`
	ServiceID int64   `json:"service_id"`
	UsageDate string  `json:"usage_date"`
	Amount    float64 `json:"usage_amount"`
	Unit      string  `json:"unit"`
}

const dateLayout = "2006-01-02"

// ListInvoices is reachable by the owning customer or by an admin; the
// only endpoint where both route families meet.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	principal := auth.PrincipalFromContext(r.Context())
	if err := auth.RequireAuthenticated(principal); err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !principal.IsAdmin() && !h.authorizeOwner(w, r, id) {
		return
	}

	invoices, err := h.billing.ListInvoices(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, invoiceResponse{
			InvoiceID:          inv.ID,
			CustomerID:         inv.CustomerID,
			BillingPeriodStart: inv.BillingPeriodStart.Format(dateLayout),
			BillingPeriodEnd:   inv.BillingPeriodEnd.Format(dateLayout),
			TotalAmount:        inv.TotalAmount,
			Status:             inv.Status,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeAdmin(w, r) {
		return
	}

	var req struct {
		BillingPeriodStart string  `json:"billing_period_start"`
		BillingPeriodEnd   string  `json:"billing_period_end"`
		TotalAmount        float64 `json:"total_amount"`
		Status             string  `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	start, err := time.Parse(dateLayout, req.BillingPeriodStart)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	end, err := time.Parse(dateLayout, req.BillingPeriodEnd)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	invoice := &models.Invoice{
		BillingPeriodStart: start,
		BillingPeriodEnd:   end,
		TotalAmount:        req.TotalAmount,
		Status:             req.Status,
	}
	invoiceID, err := h.billing.CreateInvoice(r.Context(), id, invoice)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"invoice_id": invoiceID})
}

// Payment routes need a principal but no particular role or ownership.

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	principal := auth.PrincipalFromContext(r.Context())
	if err := auth.RequireAuthenticated(principal); err != nil {
		h.writeServiceError(w, err)
		return
	}

	payments, err := h.billing.ListPayments(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, paymentResponse{
			PaymentID:     p.ID,
			InvoiceID:     p.InvoiceID,
			PaymentDate:   p.PaymentDate.Format(dateLayout),
			Amount:        p.Amount,
			PaymentMethod: p.PaymentMethod,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	principal := auth.PrincipalFromContext(r.Context())
	if err := auth.RequireAuthenticated(principal); err != nil {
		h.writeServiceError(w, err)
		return
	}

	var req struct {
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"payment_method"`
		PaymentDate   string  `json:"payment_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	payment := &models.Payment{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if req.PaymentDate != "" {
		date, err := time.Parse(dateLayout, req.PaymentDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
			return
		}
		payment.PaymentDate = date
	}

	paymentID, err := h.billing.RecordPayment(r.Context(), id, payment)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"payment_id": paymentID})
}

// ListUsageRecords is intentionally public.
func (h *Handler) ListUsageRecords(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	records, err := h.billing.ListUsageRecords(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]usageResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, usageResponse{
			UsageID:   rec.ID,
			ServiceID: rec.ServiceID,
			UsageDate: rec.UsageDate.Format(dateLayout),
			Amount:    rec.Amount,
			Unit:      rec.Unit,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateUsageRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}
	if !h.authorizeAdmin(w, r) {
		return
	}

	var req struct {
		UsageDate string  `json:"usage_date"`
		Amount    float64 `json:"usage_amount"`
		Unit      string  `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	record := &models.UsageRecord{
		Amount: req.Amount,
		Unit:   req.Unit,
	}
	if req.UsageDate != "" {
		date, err := time.Parse(dateLayout, req.UsageDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
			return
		}
		record.UsageDate = date
	}

	usageID, err := h.billing.CreateUsageRecord(r.Context(), id, record)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"usage_id": usageID})
}
