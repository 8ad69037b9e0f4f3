package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
)

const maxBodyBytes = 1_048_576

type Transferer interface {
	Transfer(ctx context.Context, req services.TransferRequest) (*models.Transaction, error)
}

type UserRegistry interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, *models.Account, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AccountDirectory interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error)
	Credit(ctx context.Context, req services.CreditRequest) (*models.Account, error)
}

type ReportBuilder interface {
	Build(ctx context.Context, userID int64) (*models.Report, error)
}

type CategoryManager interface {
	Create(ctx context.Context, req services.CreateCategoryRequest) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// statusFor maps service errors onto HTTP status codes. Anything it does not
// recognise is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrRetryExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides driver details from clients. Only errors the caller
// can act on carry their own text.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "Internal server error"
	case http.StatusServiceUnavailable:
		return "The account is busy, please retry"
	}
	return err.Error()
}

func sendServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] Request failed: %v", err)
	}
	services.SendErrorResponse(w, publicMessage(status, err), status, err)
}

// decodeJSON reads exactly one JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] Failed to encode response: %v", err)
	}
}

// page renders name, falling back to a plain text error when the template
// itself fails.
func page(w http.ResponseWriter, v *views.Renderer, status int, name string, data any) {
	if err := v.Render(w, status, name, data); err != nil {
		log.Printf("[HTTP] Failed to render %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func errorPage(w http.ResponseWriter, v *views.Renderer, err error, back string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] Request failed: %v", err)
	}
	page(w, v, status, "error", views.ErrorPage{Status: status, Message: publicMessage(status, err), Back: back})
}

// parseID reads a positive integer form or query value.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
