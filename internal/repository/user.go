package repository

import (
	"context"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// UserRepository defines data access for user records. StoredUser (with
// the password hash) never leaves this layer except through auth.
type UserRepository interface {
	Create(ctx context.Context, user *models.StoredUser)
	GetByID(ctx context.Context, id string) (*models.StoredUser, error)
	GetByEmail(ctx context.Context, email string) (*models.StoredUser, bool)
	List(ctx context.Context) []*models.StoredUser
	Update(ctx context.Context, user *models.StoredUser)
}

type userRepository struct {
	kv store.KV
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(kv store.KV) UserRepository {
	return &userRepository{kv: kv}
}

func (r *userRepository) Create(ctx context.Context, user *models.StoredUser) {
	store.SaveRecord(ctx, r.kv, store.KeyUsers, user.ID, user)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.StoredUser, error) {
	user, ok := store.LoadRecord[models.StoredUser](ctx, r.kv, store.KeyUsers, id)
	if !ok {
		return nil, models.NewNotFoundError("user", id)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.StoredUser, bool) {
	for _, u := range store.LoadAll[models.StoredUser](ctx, r.kv, store.KeyUsers) {
		if u.Email == email {
			v := u
			return &v, true
		}
	}
	return nil, false
}

func (r *userRepository) List(ctx context.Context) []*models.StoredUser {
	users := store.LoadAll[models.StoredUser](ctx, r.kv, store.KeyUsers)
	out := make([]*models.StoredUser, 0, len(users))
	for i := range users {
		out = append(out, &users[i])
	}
	return out
}

func (r *userRepository) Update(ctx context.Context, user *models.StoredUser) {
	store.SaveRecord(ctx, r.kv, store.KeyUsers, user.ID, user)
}
