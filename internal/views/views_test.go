package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bancofortis/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range []string{"register", "landing", "transfer", "users", "accounts", "report", "categories", "error"} {
		assert.Contains(t, r.pages, page)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	t.Run("accounts page formats balances", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "accounts", map[string]any{
			"Accounts": []models.Account{{ID: 1, UserID: 2, AccountNumber: "00001234", Balance: decimal.RequireFromString("7.5")}},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "7.50")
		assert.Contains(t, rec.Body.String(), "00001234")
	})

	t.Run("error page escapes the message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusConflict, "error", ErrorPage{Status: 409, Message: "<b>taken</b>", Back: "/"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "&lt;b&gt;taken&lt;/b&gt;")
	})

	t.Run("unknown page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		assert.Error(t, r.Render(rec, http.StatusOK, "missing", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
