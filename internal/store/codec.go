package store

import (
	"context"
	"encoding/json"

	"civicpulse/internal/observability"
)

// The codec helpers implement the error taxonomy for storage access:
// read failures and undecodable payloads fall back to the caller's
// default, write failures are logged and counted but never surfaced.
// Callers above the store only ever see referential misses.

// LoadAll decodes every record in the collection. Backend failures yield
// an empty slice; records that fail to decode are skipped.
func LoadAll[T any](ctx context.Context, kv KV, collection string) []T {
	observability.StoreReads.WithLabelValues(collection).Inc()
	raw, err := kv.GetAll(ctx, collection)
	if err != nil {
		observability.StoreErrors.WithLabelValues(collection, "get_all").Inc()
		observability.NewStoreLogger(collection).LogError(ctx, err, "get_all")
		return nil
	}
	out := make([]T, 0, len(raw))
	for id, b := range raw {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			observability.StoreCorruptRecords.WithLabelValues(collection).Inc()
			observability.NewStoreLogger(collection).LogCorrupt(ctx, id)
			continue
		}
		out = append(out, v)
	}
	return out
}

// LoadRecord decodes a single record. Absence and corruption both read
// as "not found".
func LoadRecord[T any](ctx context.Context, kv KV, collection, id string) (*T, bool) {
	observability.StoreReads.WithLabelValues(collection).Inc()
	b, ok, err := kv.GetRecord(ctx, collection, id)
	if err != nil {
		observability.StoreErrors.WithLabelValues(collection, "get").Inc()
		observability.NewStoreLogger(collection).LogError(ctx, err, "get")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		observability.StoreCorruptRecords.WithLabelValues(collection).Inc()
		observability.NewStoreLogger(collection).LogCorrupt(ctx, id)
		return nil, false
	}
	return &v, true
}

// SaveRecord serializes and writes one record. Failures are swallowed.
func SaveRecord[T any](ctx context.Context, kv KV, collection, id string, v T) {
	observability.StoreWrites.WithLabelValues(collection).Inc()
	b, err := json.Marshal(v)
	if err != nil {
		observability.StoreErrors.WithLabelValues(collection, "marshal").Inc()
		observability.NewStoreLogger(collection).LogError(ctx, err, "marshal")
		return
	}
	if err := kv.PutRecord(ctx, collection, id, b); err != nil {
		observability.StoreErrors.WithLabelValues(collection, "put").Inc()
		observability.NewStoreLogger(collection).LogError(ctx, err, "put")
	}
}

// DeleteRecord removes one record. Failures are swallowed.
func DeleteRecord(ctx context.Context, kv KV, collection, id string) {
	observability.StoreWrites.WithLabelValues(collection).Inc()
	if err := kv.DeleteRecord(ctx, collection, id); err != nil {
		observability.StoreErrors.WithLabelValues(collection, "delete").Inc()
		observability.NewStoreLogger(collection).LogError(ctx, err, "delete")
	}
}

// LoadValue decodes a singleton value, returning def when the key is
// absent, unreadable, or undecodable.
func LoadValue[T any](ctx context.Context, kv KV, key string, def T) T {
	observability.StoreReads.WithLabelValues(key).Inc()
	b, ok, err := kv.Get(ctx, key)
	if err != nil {
		observability.StoreErrors.WithLabelValues(key, "get").Inc()
		observability.NewStoreLogger(key).LogError(ctx, err, "get")
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		observability.StoreCorruptRecords.WithLabelValues(key).Inc()
		observability.NewStoreLogger(key).LogCorrupt(ctx, key)
		return def
	}
	return v
}

// SaveValue serializes and writes a singleton value. Failures are swallowed.
func SaveValue[T any](ctx context.Context, kv KV, key string, v T) {
	observability.StoreWrites.WithLabelValues(key).Inc()
	b, err := json.Marshal(v)
	if err != nil {
		observability.StoreErrors.WithLabelValues(key, "marshal").Inc()
		observability.NewStoreLogger(key).LogError(ctx, err, "marshal")
		return
	}
	if err := kv.Set(ctx, key, b); err != nil {
		observability.StoreErrors.WithLabelValues(key, "set").Inc()
		observability.NewStoreLogger(key).LogError(ctx, err, "set")
	}
}

// DeleteValue removes a singleton value. Failures are swallowed.
func DeleteValue(ctx context.Context, kv KV, key string) {
	observability.StoreWrites.WithLabelValues(key).Inc()
	if err := kv.Delete(ctx, key); err != nil {
		observability.StoreErrors.WithLabelValues(key, "delete").Inc()
		observability.NewStoreLogger(key).LogError(ctx, err, "delete")
	}
}
