package handlers

import (
	"fmt"
	"net/http"

	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
)

type CategoryHandler struct {
	categories CategoryManager
	views      *views.Renderer
}

func NewCategoryHandler(categories CategoryManager, v *views.Renderer) *CategoryHandler {
	return &CategoryHandler{categories: categories, views: v}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		errorPage(w, h.views, err, "/landing")
		return
	}
	page(w, h.views, http.StatusOK, "categories", map[string]any{"Categories": categories})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		errorPage(w, h.views, fmt.Errorf("%w: unreadable form", services.ErrInvalidInput), "/categories")
		return
	}

	_, err := h.categories.Create(r.Context(), services.CreateCategoryRequest{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	})
	if err != nil {
		errorPage(w, h.views, err, "/categories")
		return
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}
