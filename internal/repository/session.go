package repository

import (
	"context"

	"github.com/emeraldmart/storefront/internal/domain/user"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
)

type sessionRepository struct {
	store kv.Store
	log   *logger.Logger
}

// NewSessionRepository creates a kv-backed session store under the
// `loggedInUser` key. The value is the username as a JSON string blob.
func NewSessionRepository(store kv.Store, log *logger.Logger) user.SessionRepository {
	return &sessionRepository{store: store, log: log}
}

func (r *sessionRepository) SetLoggedIn(ctx context.Context, username string) error {
	raw, err := json.Marshal(username)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, kv.KeyLoggedInUser, raw)
}

func (r *sessionRepository) GetLoggedIn(ctx context.Context) (string, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyLoggedInUser)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	var username string
	if err := json.Unmarshal(raw, &username); err != nil {
		// Treat a corrupt session blob as logged out
		r.log.Errorw("corrupt session blob, treating as logged out", "error", err)
		return "", nil
	}
	return username, nil
}

func (r *sessionRepository) ClearLoggedIn(ctx context.Context) error {
	return r.store.Delete(ctx, kv.KeyLoggedInUser)
}
