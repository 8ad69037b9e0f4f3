package handlers

import (
	"context"
	"testing"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransferer struct {
	mock.Mock
}

func (m *MockTransferer) Transfer(ctx context.Context, req services.TransferRequest) (*models.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

type MockUserRegistry struct {
	mock.Mock
}

func (m *MockUserRegistry) Register(ctx context.Context, req services.RegisterRequest) (*models.User, *models.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.Account), args.Error(2)
}

func (m *MockUserRegistry) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockAccountDirectory struct {
	mock.Mock
}

func (m *MockAccountDirectory) ListAccounts(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountDirectory) ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserWithAccounts), args.Error(1)
}

func (m *MockAccountDirectory) Credit(ctx context.Context, req services.CreditRequest) (*models.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) Build(ctx context.Context, userID int64) (*models.Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

type MockCategoryManager struct {
	mock.Mock
}

func (m *MockCategoryManager) Create(ctx context.Context, req services.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryManager) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type testServer struct {
	router     chi.Router
	transfers  *MockTransferer
	users      *MockUserRegistry
	accounts   *MockAccountDirectory
	reports    *MockReportBuilder
	categories *MockCategoryManager
	db         *MockPinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	v, err := views.New()
	require.NoError(t, err)

	s := &testServer{
		transfers:  new(MockTransferer),
		users:      new(MockUserRegistry),
		accounts:   new(MockAccountDirectory),
		reports:    new(MockReportBuilder),
		categories: new(MockCategoryManager),
		db:         new(MockPinger),
	}
	s.router = NewRouter(Routes{
		Users:      NewUserHandler(s.users, s.accounts, v),
		Accounts:   NewAccountHandler(s.accounts, v),
		Transfers:  NewTransferHandler(s.transfers, s.users, v),
		Reports:    NewReportHandler(s.reports, v),
		Categories: NewCategoryHandler(s.categories, v),
		Health:     NewHealthHandler(s.db, nil),
	})
	return s
}

func (s *testServer) assertExpectations(t *testing.T) {
	t.Helper()
	s.transfers.AssertExpectations(t)
	s.users.AssertExpectations(t)
	s.accounts.AssertExpectations(t)
	s.reports.AssertExpectations(t)
	s.categories.AssertExpectations(t)
	s.db.AssertExpectations(t)
}
