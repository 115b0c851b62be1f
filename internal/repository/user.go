package repository

import (
	"context"

	"github.com/emeraldmart/storefront/internal/domain/user"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
)

type userRepository struct {
	store kv.Store
	log   *logger.Logger
}

// NewUserRepository creates a kv-backed registration store under the
// `users` key, a single map keyed by username
func NewUserRepository(store kv.Store, log *logger.Logger) user.Repository {
	return &userRepository{store: store, log: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	if _, taken := users[u.Username]; taken {
		return ierr.NewError("username already registered").
			WithHintf("Username %s is already taken", u.Username).
			Mark(ierr.ErrAlreadyExists)
	}

	users[u.Username] = u
	return r.saveAll(ctx, users)
}

func (r *userRepository) Get(ctx context.Context, username string) (*user.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := users[username]
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHintf("No account found for username %s", username).
			Mark(ierr.ErrNotFound)
	}

	return u, nil
}

func (r *userRepository) loadAll(ctx context.Context) (map[string]*user.User, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[string]*user.User), nil
	}

	users := make(map[string]*user.User)
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored users could not be decoded").
			Mark(ierr.ErrStorage)
	}

	return users, nil
}

func (r *userRepository) saveAll(ctx context.Context, users map[string]*user.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Users could not be encoded").
			Mark(ierr.ErrStorage)
	}

	return r.store.Set(ctx, kv.KeyUsers, raw)
}
