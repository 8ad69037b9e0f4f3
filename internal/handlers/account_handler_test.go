package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_Listings(t *testing.T) {
	accounts := []models.Account{{ID: 1, UserID: 1, AccountNumber: "12345678", Balance: decimal.RequireFromString("100")}}

	t.Run("page", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("ListAccounts", mock.Anything).Return(accounts, nil)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "100.00")
	})

	t.Run("json", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("ListAccounts", mock.Anything).Return(accounts, nil)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got []models.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "12345678", got[0].AccountNumber)
	})

	t.Run("store failure", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("ListAccounts", mock.Anything).Return([]models.Account(nil), errors.New("db down"))

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestAccountHandler_Credit(t *testing.T) {
	t.Run("redirects to users", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("Credit", mock.Anything, mock.MatchedBy(func(req services.CreditRequest) bool {
			return req.AccountID == 7 && req.Amount.Equal(decimal.RequireFromString("25.5"))
		})).Return(&models.Account{ID: 7}, nil)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, postForm("/accounts/credit", url.Values{"account_id": {"7"}, "amount": {"25.50"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/users", rec.Header().Get("Location"))
		s.assertExpectations(t)
	})

	t.Run("unknown account", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("Credit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: record not found", services.ErrAccountNotFound))

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, postForm("/accounts/credit", url.Values{"account_id": {"99"}, "amount": {"1"}}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("contention hides driver details", func(t *testing.T) {
		s := newTestServer(t)
		s.accounts.On("Credit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w after 5 attempts: database contention: pq: could not serialize access", services.ErrRetryExhausted))

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, postForm("/accounts/credit", url.Values{"account_id": {"7"}, "amount": {"1"}}))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "please retry")
		assert.NotContains(t, rec.Body.String(), "pq:")
	})

	t.Run("bad account id", func(t *testing.T) {
		s := newTestServer(t)

		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, postForm("/accounts/credit", url.Values{"account_id": {"-1"}, "amount": {"1"}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		s.accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})
}
