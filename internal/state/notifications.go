package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
)

// Notifications owns the notification feed and its display filter.
// The feed is ordered newest-first by insertion; timestamps do not
// affect the order.
type Notifications struct {
	adapter       *store.Adapter
	clock         Clock
	ids           idSource
	logger        *zap.Logger
	notifications []model.Notification
	filter        model.Filter
	persisted     bool
}

// NewNotifications loads the stored feed, falling back to an empty one.
// The filter always starts at "all".
func NewNotifications(ctx context.Context, a *store.Adapter, opts ...Option) *Notifications {
	o := buildOptions(opts)
	n := &Notifications{
		adapter:       a,
		clock:         o.clock,
		ids:           idSource{clock: o.clock},
		logger:        o.logger.Named("notifications"),
		notifications: []model.Notification{},
		filter:        model.FilterAll,
	}

	var stored []model.Notification
	if a.Read(ctx, store.KeyNotifications, &stored) {
		n.persisted = true
		if stored != nil {
			n.notifications = stored
		}
	}
	for _, item := range n.notifications {
		if item.ID > n.ids.last {
			n.ids.last = item.ID
		}
	}
	return n
}

// State returns a snapshot of the slice.
func (n *Notifications) State() model.NotificationsState {
	return model.NotificationsState{
		Notifications: n.Notifications(),
		Filter:        n.filter,
	}
}

// Notifications returns a copy of the whole feed.
func (n *Notifications) Notifications() []model.Notification {
	out := make([]model.Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// Filter returns the current display filter.
func (n *Notifications) Filter() model.Filter {
	return n.filter
}

// Add creates a notification from the template for kind and puts it at
// the front of the feed. An empty customTitle keeps the template title and
// a zero at stamps the current time. Unknown kinds fail with
// model.ErrUnknownNotificationKind and leave the feed untouched.
func (n *Notifications) Add(
	ctx context.Context,
	kind model.NotificationKind,
	customTitle string,
	at time.Time,
) (model.Notification, error) {
	if at.IsZero() {
		at = n.clock.Now()
	}

	// Validate before drawing an id so a rejected kind has no side effects.
	if _, err := kind.Template(); err != nil {
		return model.Notification{}, err
	}

	item, err := model.NewNotification(n.ids.next(), kind, customTitle, at)
	if err != nil {
		return model.Notification{}, err
	}

	n.notifications = append([]model.Notification{item}, n.notifications...)
	n.persist(ctx)

	n.logger.Debug("added",
		zap.Int64("id", item.ID),
		zap.String("type", string(item.Type)),
	)
	return item, nil
}

// MarkAsRead marks one notification read. Unknown ids are ignored.
func (n *Notifications) MarkAsRead(ctx context.Context, id int64) {
	n.setRead(ctx, id, true)
}

// MarkAsUnread marks one notification unread. Unknown ids are ignored.
func (n *Notifications) MarkAsUnread(ctx context.Context, id int64) {
	n.setRead(ctx, id, false)
}

func (n *Notifications) setRead(ctx context.Context, id int64, read bool) {
	idx := n.index(id)
	if idx < 0 {
		return
	}
	n.notifications[idx].IsRead = read
	n.persist(ctx)
}

// ToggleRead flips the read state of one notification.
func (n *Notifications) ToggleRead(ctx context.Context, id int64) {
	idx := n.index(id)
	if idx < 0 {
		return
	}
	n.setRead(ctx, id, !n.notifications[idx].IsRead)
}

// MarkAllAsRead marks every notification read, whatever the filter.
func (n *Notifications) MarkAllAsRead(ctx context.Context) {
	for i := range n.notifications {
		n.notifications[i].IsRead = true
	}
	n.persist(ctx)
}

// Delete removes a notification for good. Unknown ids are ignored.
func (n *Notifications) Delete(ctx context.Context, id int64) {
	if idx := n.index(id); idx >= 0 {
		n.notifications = append(n.notifications[:idx], n.notifications[idx+1:]...)
	}
	n.persist(ctx)
}

// SetFilter sets the display filter. Values are not validated; unknown
// filters show the whole feed.
func (n *Notifications) SetFilter(f model.Filter) {
	n.filter = f
}

// ClearAll empties the feed and stores the empty sequence.
func (n *Notifications) ClearAll(ctx context.Context) {
	n.notifications = []model.Notification{}
	n.persist(ctx)
}

// Reset empties the feed.
func (n *Notifications) Reset(ctx context.Context) {
	n.ClearAll(ctx)
}

// SeedDemo fills a never-persisted feed with three backdated examples and
// reports whether it did so.
func (n *Notifications) SeedDemo(ctx context.Context) bool {
	if n.persisted {
		return false
	}

	now := n.clock.Now()
	demo := []struct {
		kind  model.NotificationKind
		title string
		age   time.Duration
	}{
		{model.KindError, "Password changed", 5 * time.Hour},
		{model.KindWarning, "System update available", time.Hour},
		{model.KindInfo, "New comment on your task", 2 * time.Minute},
	}
	for _, d := range demo {
		if _, err := n.Add(ctx, d.kind, d.title, now.Add(-d.age)); err != nil {
			n.logger.Error("seeding demo notification", zap.Error(err))
		}
	}
	return true
}

// UnreadCount returns the number of unread notifications.
func (n *Notifications) UnreadCount() int {
	return UnreadCount(n.notifications)
}

// Unread returns the unread notifications in feed order.
func (n *Notifications) Unread() []model.Notification {
	return Unread(n.notifications)
}

// Read returns the read notifications in feed order.
func (n *Notifications) Read() []model.Notification {
	return Read(n.notifications)
}

// Filtered returns the feed as the current filter shows it.
func (n *Notifications) Filtered() []model.Notification {
	return Filtered(n.notifications, n.filter)
}

func (n *Notifications) index(id int64) int {
	for i, item := range n.notifications {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (n *Notifications) persist(ctx context.Context) {
	n.adapter.Write(ctx, store.KeyNotifications, n.notifications)
	n.persisted = true
}
