package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
)

type UserHandler struct {
	users    UserRegistry
	accounts AccountDirectory
	views    *views.Renderer
}

func NewUserHandler(users UserRegistry, accounts AccountDirectory, v *views.Renderer) *UserHandler {
	return &UserHandler{users: users, accounts: accounts, views: v}
}

func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	page(w, h.views, http.StatusOK, "register", nil)
}

func (h *UserHandler) Landing(w http.ResponseWriter, r *http.Request) {
	page(w, h.views, http.StatusOK, "landing", nil)
}

// Register creates a user and its account from the registration form.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		errorPage(w, h.views, fmt.Errorf("%w: unreadable form", services.ErrInvalidInput), "/")
		return
	}

	user, account, err := h.users.Register(r.Context(), services.RegisterRequest{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Phone:     r.PostFormValue("phone"),
		BirthDate: r.PostFormValue("birth_date"),
	})
	if err != nil {
		log.Printf("[USER] Registration failed: %v", err)
		errorPage(w, h.views, err, "/")
		return
	}

	log.Printf("[USER] User %d registered with account %s", user.ID, account.AccountNumber)
	http.Redirect(w, r, "/landing", http.StatusSeeOther)
}

// UsersPage lists users with their accounts and a credit form per account.
func (h *UserHandler) UsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsersWithAccounts(r.Context())
	if err != nil {
		errorPage(w, h.views, err, "/landing")
		return
	}
	page(w, h.views, http.StatusOK, "users", map[string]any{"Users": users})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsersWithAccounts(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
