package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryDirectory keeps accounts in an insertion ordered slice guarded by
// one mutex. It lives as long as the process.
type MemoryDirectory struct {
	mu    sync.Mutex
	users []*User
	now   func() time.Time
}

var _ Directory = (*MemoryDirectory)(nil)

// NewMemoryDirectory returns an empty directory
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{now: time.Now}
}

// FindByEmail returns a copy of the account with the given email, or
// ErrAccountNotFound.
func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if u := d.find(email); u != nil {
		return u.clone(), nil
	}
	return nil, ErrAccountNotFound
}

// Insert assigns the next identifier and appends the account. The email
// check and the append share one lock acquisition.
func (d *MemoryDirectory) Insert(ctx context.Context, account NewAccount) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.find(account.Email) != nil {
		return nil, ErrDuplicateEmail
	}

	user := account.build(int64(len(d.users)+1), d.now())
	d.users = append(d.users, user)

	return user.clone(), nil
}

// List returns a snapshot of every account in insertion order
func (d *MemoryDirectory) List(ctx context.Context) ([]*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u.clone())
	}
	return out, nil
}

// Count returns the number of accounts
func (d *MemoryDirectory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.users), nil
}

// find must be called with mu held
func (d *MemoryDirectory) find(email string) *User {
	for _, u := range d.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
