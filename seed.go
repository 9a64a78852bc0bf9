package auth

import (
	"context"
)

// SeedAccount describes the bootstrap administrator
type SeedAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// DefaultSeedAccount is the administrator created at startup when no
// other values are configured.
var DefaultSeedAccount = SeedAccount{
	Email:     "admin@example.com",
	Password:  "adminpassword",
	FirstName: "Admin",
	LastName:  "User",
}

// SeedAdmin inserts the bootstrap administrator. It must run before the
// directory is shared so the first Admin gets identifier 1.
func SeedAdmin(ctx context.Context, dir Directory, hasher PasswordAuthenticator, seed SeedAccount) (*User, error) {
	msg := RegisterUserMessage{
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		Email:     seed.Email,
		Password:  seed.Password,
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	hash, err := hasher.HashPassword(seed.Password)
	if err != nil {
		return nil, err
	}

	account, err := msg.account(hash, RoleAdmin)
	if err != nil {
		return nil, err
	}

	return dir.Insert(ctx, account)
}
