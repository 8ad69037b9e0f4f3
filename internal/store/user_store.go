package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bancofortis/backend/internal/models"
)

const userColumns = `id, name, email, password, phone, birth_date, created_at`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUserWithAccount inserts the user and its account in one transaction
// and fills in the generated IDs. A taken email yields ErrDuplicate.
func (s *UserStore) CreateUserWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	return runInTx(ctx, s.db, nil, func(ctx context.Context, q Querier) error {
		var birthDate sql.NullTime
		if !user.BirthDate.IsZero() {
			birthDate = sql.NullTime{Time: user.BirthDate, Valid: true}
		}

		err := q.QueryRowContext(ctx, `
			INSERT INTO users (name, email, password, phone, birth_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			user.Name, strings.ToLower(user.Email), user.Password, user.Phone, birthDate,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		account.UserID = user.ID
		err = q.QueryRowContext(ctx, `
			INSERT INTO accounts (user_id, bank_name, branch_code, account_number, account_type, balance)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, updated_at`,
			account.UserID, account.BankName, account.BranchCode, account.AccountNumber, account.AccountType,
			account.Balance.StringFixed(2),
		).Scan(&account.ID, &account.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		return nil
	})
}

func (s *UserStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user      models.User
		birthDate sql.NullTime
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Phone, &birthDate, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		user.BirthDate = birthDate.Time
	}
	return &user, nil
}
