package service

import (
	"context"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/repository"
)

// NotificationService reads and acknowledges a user's inbox.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// ListNotifications returns the user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) []*models.Notification {
	return s.notifRepo.ListByUser(ctx, userID)
}

// MarkAllRead flags every notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) {
	s.notifRepo.MarkAllRead(ctx, userID)
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) int {
	return s.notifRepo.CountUnread(ctx, userID)
}

// Poller re-fetches a user's notifications on a fixed interval and
// hands each batch to the callback, mirroring the client-side session
// poll. It stops when the context is cancelled.
type Poller struct {
	svc      *NotificationService
	interval time.Duration
	onFetch  func([]*models.Notification)
}

// NewPoller creates a Poller delivering to onFetch every interval.
func NewPoller(svc *NotificationService, interval time.Duration, onFetch func([]*models.Notification)) *Poller {
	return &Poller{svc: svc, interval: interval, onFetch: onFetch}
}

// Run polls until ctx is done. It fetches once immediately so the
// caller does not wait a full interval for the first delivery.
func (p *Poller) Run(ctx context.Context, userID string) {
	p.onFetch(p.svc.ListNotifications(ctx, userID))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.onFetch(p.svc.ListNotifications(ctx, userID))
		}
	}
}
