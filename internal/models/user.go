package models

import "time"

// User is a registered customer. Each user owns exactly one account.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Phone     string    `json:"phone" db:"phone"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserWithAccounts pairs a user with the accounts it owns, used by listings.
type UserWithAccounts struct {
	User
	Accounts []Account `json:"accounts"`
}
