package handlers

import (
	"fmt"
	"net/http"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
	"github.com/shopspring/decimal"
)

type TransferHandler struct {
	transfers Transferer
	users     UserRegistry
	views     *views.Renderer
}

func NewTransferHandler(transfers Transferer, users UserRegistry, v *views.Renderer) *TransferHandler {
	return &TransferHandler{transfers: transfers, users: users, views: v}
}

// Form shows the transfer form with every registered user as a choice.
func (h *TransferHandler) Form(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		errorPage(w, h.views, err, "/landing")
		return
	}
	page(w, h.views, http.StatusOK, "transfer", map[string]any{"Users": users})
}

// Submit handles the transfer form and redirects to the source user's report.
func (h *TransferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		errorPage(w, h.views, fmt.Errorf("%w: unreadable form", services.ErrInvalidInput), "/transfer")
		return
	}

	req, err := transferFromForm(r)
	if err != nil {
		errorPage(w, h.views, err, "/transfer")
		return
	}

	if _, err := h.transfers.Transfer(r.Context(), req); err != nil {
		errorPage(w, h.views, err, "/transfer")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/report?user_id=%d", req.SourceUserID), http.StatusSeeOther)
}

// Create is the JSON form of Submit.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := h.transfers.Transfer(r.Context(), req)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"transaction": record,
	})
}

func transferFromForm(r *http.Request) (services.TransferRequest, error) {
	var req services.TransferRequest

	source, ok := parseID(r.PostFormValue("source_user_id"))
	if !ok {
		return req, fmt.Errorf("%w: source user is required", services.ErrInvalidInput)
	}
	dest, ok := parseID(r.PostFormValue("dest_user_id"))
	if !ok {
		return req, fmt.Errorf("%w: destination user is required", services.ErrInvalidInput)
	}
	amount, err := decimal.NewFromString(r.PostFormValue("amount"))
	if err != nil {
		return req, fmt.Errorf("%w: amount must be a number", services.ErrInvalidInput)
	}

	req.SourceUserID = source
	req.DestUserID = dest
	req.Amount = amount
	req.Type = models.TransferType(r.PostFormValue("type"))
	req.PaymentMethod = r.PostFormValue("payment_method")
	return req, nil
}
