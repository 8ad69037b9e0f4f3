package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bancofortis/backend/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "name", "email", "password", "phone", "birth_date", "created_at"}

func TestUserStore_CreateUserWithAccount(t *testing.T) {
	ctx := context.Background()
	birth := time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC)

	newUser := func() (*models.User, *models.Account) {
		return &models.User{
				Name:      "Maria Silva",
				Email:     "Maria@Example.com",
				Password:  "hash",
				Phone:     "11999990000",
				BirthDate: birth,
			}, &models.Account{
				BankName:      models.DefaultBankName,
				BranchCode:    models.DefaultBranchCode,
				AccountNumber: "12345678",
				AccountType:   models.DefaultAccountType,
				Balance:       decimal.Zero,
			}
	}

	t.Run("creates user and account", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user, account := newUser()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Maria Silva", "maria@example.com", "hash", "11999990000", birth).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, time.Now()))
		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs(4, "Banco Fortis", "0001", "12345678", "Conta Corrente", "0.00").
			WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow(9, time.Now()))
		mock.ExpectCommit()

		err = NewUserStore(db).CreateUserWithAccount(ctx, user, account)
		require.NoError(t, err)
		assert.Equal(t, int64(4), user.ID)
		assert.Equal(t, int64(9), account.ID)
		assert.Equal(t, int64(4), account.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		user, account := newUser()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		mock.ExpectRollback()

		err = NewUserStore(db).CreateUserWithAccount(ctx, user, account)
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserStore_FindUserByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewUserStore(db)

	t.Run("found without birth date", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(1, "Ana", "ana@example.com", "hash", "", nil, time.Now()))

		user, err := s.FindUserByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.True(t, user.BirthDate.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(2).
			WillReturnError(sql.ErrNoRows)

		user, err := s.FindUserByID(context.Background(), 2)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserStore_ListUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "Ana", "ana@example.com", "hash", "", nil, time.Now()).
			AddRow(2, "Bruno", "bruno@example.com", "hash", "", time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC), time.Now()))

	users, err := NewUserStore(db).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1985, users[1].BirthDate.Year())
	assert.NoError(t, mock.ExpectationsWereMet())
}
