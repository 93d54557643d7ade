package repository

import (
	"context"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// SessionRepository holds the single current-session user. Sessions
// carry a plain User; the password hash never enters this collection.
type SessionRepository interface {
	Get(ctx context.Context) (*models.User, bool)
	Set(ctx context.Context, user *models.User)
	Clear(ctx context.Context)
}

type sessionRepository struct {
	kv store.KV
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(kv store.KV) SessionRepository {
	return &sessionRepository{kv: kv}
}

func (r *sessionRepository) Get(ctx context.Context) (*models.User, bool) {
	user := store.LoadValue[*models.User](ctx, r.kv, store.KeyCurrentUser, nil)
	if user == nil {
		return nil, false
	}
	return user, true
}

func (r *sessionRepository) Set(ctx context.Context, user *models.User) {
	store.SaveValue(ctx, r.kv, store.KeyCurrentUser, user)
}

func (r *sessionRepository) Clear(ctx context.Context) {
	store.DeleteValue(ctx, r.kv, store.KeyCurrentUser)
}
