package handlers

import (
	"fmt"
	"net/http"

	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	accounts AccountDirectory
	views    *views.Renderer
}

func NewAccountHandler(accounts AccountDirectory, v *views.Renderer) *AccountHandler {
	return &AccountHandler{accounts: accounts, views: v}
}

func (h *AccountHandler) AccountsPage(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		errorPage(w, h.views, err, "/landing")
		return
	}
	page(w, h.views, http.StatusOK, "accounts", map[string]any{"Accounts": accounts})
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Credit adds the posted amount to an account and shows the users page.
func (h *AccountHandler) Credit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		errorPage(w, h.views, fmt.Errorf("%w: unreadable form", services.ErrInvalidInput), "/users")
		return
	}

	accountID, ok := parseID(r.PostFormValue("account_id"))
	if !ok {
		errorPage(w, h.views, fmt.Errorf("%w: account is required", services.ErrInvalidInput), "/users")
		return
	}
	amount, err := decimal.NewFromString(r.PostFormValue("amount"))
	if err != nil {
		errorPage(w, h.views, fmt.Errorf("%w: amount must be a number", services.ErrInvalidInput), "/users")
		return
	}

	if _, err := h.accounts.Credit(r.Context(), services.CreditRequest{AccountID: accountID, Amount: amount}); err != nil {
		errorPage(w, h.views, err, "/users")
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
