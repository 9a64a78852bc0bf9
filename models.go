package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account record held by the Directory
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64     `bun:"id,pk" json:"id"`
	ExternalID    uuid.UUID `bun:"external_id,type:uuid" json:"-"`
	Email         string    `bun:"email,notnull,unique" json:"email"`
	FirstName     string    `bun:"first_name,notnull" json:"first_name"`
	LastName      string    `bun:"last_name,notnull" json:"last_name"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	Role          UserRole  `bun:"user_role,notnull" json:"role"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"-"`
}

// View returns the external representation, without the password hash
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func (u *User) clone() *User {
	c := *u
	return &c
}

// UserView is what callers see of an account
type UserView struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      UserRole `json:"role"`
}

// NewAccount carries the fields of an account before the Directory
// assigns its identifier.
type NewAccount struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         UserRole
	ExternalID   uuid.UUID
}

func (a NewAccount) build(id int64, now time.Time) *User {
	return &User{
		ID:           id,
		ExternalID:   a.ExternalID,
		Email:        a.Email,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    now,
	}
}
