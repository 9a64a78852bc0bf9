package auth

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunDirectory stores accounts in a bun database through a
// repository.Repository keyed on ExternalID. Paired with OpenMemoryDB the
// data is still process-lifetime only.
type BunDirectory struct {
	mu    sync.Mutex
	db    *bun.DB
	users repository.Repository[*User]
	now   func() time.Time
}

var _ Directory = (*BunDirectory)(nil)

// NewBunDirectory creates the users table if needed
func NewBunDirectory(ctx context.Context, db *bun.DB) (*BunDirectory, error) {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, err
	}

	return &BunDirectory{
		db:    db,
		users: newUsersRepository(db),
		now:   time.Now,
	}, nil
}

func newUsersRepository(db *bun.DB) repository.Repository[*User] {
	return repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ExternalID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ExternalID = id
			}
		},
	})
}

// FindByEmail returns the account with the given email, or ErrAccountNotFound
func (d *BunDirectory) FindByEmail(ctx context.Context, email string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.findByEmail(ctx, d.db, email)
}

// Insert assigns count+1 as identifier and stores the account. The
// duplicate check, the count and the insert run under one lock and one
// transaction.
func (d *BunDirectory) Insert(ctx context.Context, account NewAccount) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var user *User
	err := d.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := d.findByEmail(ctx, tx, account.Email, selectIDOnly); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, ErrAccountNotFound) {
			return err
		}

		count, err := tx.NewSelect().Model((*User)(nil)).Count(ctx)
		if err != nil {
			return err
		}

		created, err := d.users.CreateTx(ctx, tx, account.build(int64(count+1), d.now()))
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// List returns every account ordered by identifier
func (d *BunDirectory) List(ctx context.Context) ([]*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users := make([]*User, 0)
	if err := d.db.NewSelect().
		Model(&users).
		OrderExpr("usr.id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of accounts
func (d *BunDirectory) Count(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.db.NewSelect().Model((*User)(nil)).Count(ctx)
}

// selectIDOnly narrows an existence check to the primary key
var selectIDOnly repository.SelectCriteria = func(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Column("id")
}

func (d *BunDirectory) findByEmail(ctx context.Context, idb bun.IDB, email string, criteria ...repository.SelectCriteria) (*User, error) {
	user := new(User)
	q := idb.NewSelect().Model(user)
	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}
