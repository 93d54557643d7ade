package repository

import (
	"context"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// DigestRepository holds the singleton digest settings record.
type DigestRepository interface {
	Get(ctx context.Context) models.DigestSettings
	Save(ctx context.Context, settings models.DigestSettings)
}

type digestRepository struct {
	kv store.KV
}

// NewDigestRepository creates a new DigestRepository.
func NewDigestRepository(kv store.KV) DigestRepository {
	return &digestRepository{kv: kv}
}

func (r *digestRepository) Get(ctx context.Context) models.DigestSettings {
	return store.LoadValue(ctx, r.kv, store.KeyDigest, models.DefaultDigestSettings())
}

func (r *digestRepository) Save(ctx context.Context, settings models.DigestSettings) {
	store.SaveValue(ctx, r.kv, store.KeyDigest, settings)
}
