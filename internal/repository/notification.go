package repository

import (
	"context"
	"sort"

	"civicpulse/internal/models"
	"civicpulse/internal/store"
)

// NotificationRepository defines data access for notification records.
type NotificationRepository interface {
	Create(ctx context.Context, notif *models.Notification)
	ListByUser(ctx context.Context, userID string) []*models.Notification
	MarkAllRead(ctx context.Context, userID string)
	CountUnread(ctx context.Context, userID string) int
}

type notificationRepository struct {
	kv store.KV
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(kv store.KV) NotificationRepository {
	return &notificationRepository{kv: kv}
}

func (r *notificationRepository) Create(ctx context.Context, notif *models.Notification) {
	store.SaveRecord(ctx, r.kv, store.KeyNotifications, notif.ID, notif)
}

// ListByUser returns the user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string) []*models.Notification {
	var out []*models.Notification
	notifs := store.LoadAll[models.Notification](ctx, r.kv, store.KeyNotifications)
	for i := range notifs {
		if notifs[i].UserID == userID {
			out = append(out, &notifs[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkAllRead flags every notification addressed to userID as read.
// Other users' notifications are untouched.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) {
	notifs := store.LoadAll[models.Notification](ctx, r.kv, store.KeyNotifications)
	for i := range notifs {
		if notifs[i].UserID == userID && !notifs[i].Read {
			notifs[i].Read = true
			store.SaveRecord(ctx, r.kv, store.KeyNotifications, notifs[i].ID, notifs[i])
		}
	}
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) int {
	count := 0
	for _, n := range store.LoadAll[models.Notification](ctx, r.kv, store.KeyNotifications) {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count
}
