package state

import "github.com/nhle/dashboard/internal/model"

// UnreadCount returns the number of notifications not yet read.
func UnreadCount(ns []model.Notification) int {
	count := 0
	for _, n := range ns {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Unread returns the unread notifications in feed order.
func Unread(ns []model.Notification) []model.Notification {
	return filterByRead(ns, false)
}

// Read returns the read notifications in feed order.
func Read(ns []model.Notification) []model.Notification {
	return filterByRead(ns, true)
}

// Filtered applies a feed filter. Unrecognized filters show everything.
func Filtered(ns []model.Notification, f model.Filter) []model.Notification {
	switch f {
	case model.FilterUnread:
		return Unread(ns)
	case model.FilterRead:
		return Read(ns)
	default:
		out := make([]model.Notification, len(ns))
		copy(out, ns)
		return out
	}
}

func filterByRead(ns []model.Notification, read bool) []model.Notification {
	out := make([]model.Notification, 0, len(ns))
	for _, n := range ns {
		if n.IsRead == read {
			out = append(out, n)
		}
	}
	return out
}
