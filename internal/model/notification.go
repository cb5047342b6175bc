package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownNotificationKind is returned when a notification is requested
// for a kind outside the known template set.
var ErrUnknownNotificationKind = errors.New("unknown notification kind")

// NotificationKind is the template key a notification is created from.
type NotificationKind string

const (
	KindInfo    NotificationKind = "INFO"
	KindSuccess NotificationKind = "SUCCESS"
	KindWarning NotificationKind = "WARNING"
	KindError   NotificationKind = "ERROR"
)

// NotificationType is the persisted type of a notification.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeSuccess NotificationType = "success"
	TypeWarning NotificationType = "warning"
	TypeError   NotificationType = "error"
)

// Template describes how a notification kind is presented by default.
type Template struct {
	Type  NotificationType
	Title string
	Icon  string

	// Color is a background color hint in #RRGGBB form.
	Color string
}

// Template resolves the presentation template for k.
func (k NotificationKind) Template() (Template, error) {
	switch k {
	case KindInfo:
		return Template{Type: TypeInfo, Title: "Information", Icon: "message", Color: "#64A4F4"}, nil
	case KindSuccess:
		return Template{Type: TypeSuccess, Title: "Success", Icon: "checkmark", Color: "#4AC29C"}, nil
	case KindWarning:
		return Template{Type: TypeWarning, Title: "Warning", Icon: "system-update", Color: "#F6A723"}, nil
	case KindError:
		return Template{Type: TypeError, Title: "Error", Icon: "warning", Color: "#EF4444"}, nil
	default:
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownNotificationKind, string(k))
	}
}

// Kind maps a persisted type back to its template key.
func (t NotificationType) Kind() (NotificationKind, bool) {
	switch t {
	case TypeInfo:
		return KindInfo, true
	case TypeSuccess:
		return KindSuccess, true
	case TypeWarning:
		return KindWarning, true
	case TypeError:
		return KindError, true
	default:
		return "", false
	}
}

// Notification is an entry in the notification feed.
type Notification struct {
	// ID is the creation time in Unix milliseconds.
	ID int64 `json:"id"`

	Type  NotificationType `json:"type"`
	Title string           `json:"title"`

	// Timestamp is the time shown to the user. It may be backdated and
	// has no effect on the feed's order.
	Timestamp time.Time `json:"timestamp"`

	IsRead bool `json:"isRead"`
}

// NewNotification builds an unread notification from the template for
// kind. An empty customTitle keeps the template title.
func NewNotification(id int64, kind NotificationKind, customTitle string, at time.Time) (Notification, error) {
	tpl, err := kind.Template()
	if err != nil {
		return Notification{}, err
	}

	title := tpl.Title
	if customTitle != "" {
		title = customTitle
	}

	return Notification{
		ID:        id,
		Type:      tpl.Type,
		Title:     title,
		Timestamp: at.UTC(),
		IsRead:    false,
	}, nil
}

// Filter selects which notifications the feed shows.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnread Filter = "unread"
	FilterRead   Filter = "read"
)

// Next cycles all -> unread -> read -> all. Unknown values restart at all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterUnread
	case FilterUnread:
		return FilterRead
	default:
		return FilterAll
	}
}

// NotificationsState is the notification slice.
type NotificationsState struct {
	Notifications []Notification `json:"notifications"`
	Filter        Filter         `json:"filter"`
}
