package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/godbus/dbus/v5"

	"github.com/yllada/chatdock/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationWarning
	NotificationError
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = notifyService + ".Notify"
)

// ShowNotification sends n to the session notification daemon.
func ShowNotification(n Notification) {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "dialog-information"
		}
	}

	// Urgency hint: 0 low, 1 normal, 2 critical.
	urgency := byte(1)
	switch n.Type {
	case NotificationError:
		urgency = 2
	case NotificationInfo:
		urgency = 0
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		common.LogWarn("Notifications unavailable: %v", err)
		return
	}

	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}
	call := conn.Object(notifyService, notifyPath).Call(notifyInterface, 0,
		common.AppName,
		uint32(0),
		icon,
		n.Title,
		n.Message,
		[]string{},
		hints,
		int32(common.NoticeTimeout.Milliseconds()),
	)
	if call.Err != nil {
		common.LogWarn("Error showing notification: %v", call.Err)
	}
}

// Notifier shows a toast in the main window while it is on screen and
// falls back to a desktop notification otherwise.
type Notifier struct {
	app *Application
}

// Notify implements common.Notifier.
func (n *Notifier) Notify(title, message string) {
	if mw := n.app.main; mw != nil && mw.IsVisible() {
		toast := adw.NewToast(title + ": " + message)
		toast.SetTimeout(uint(common.NoticeTimeout.Seconds()))
		mw.toasts.AddToast(toast)
		return
	}
	ShowNotification(Notification{
		Title:   title,
		Message: message,
		Type:    NotificationWarning,
	})
}
