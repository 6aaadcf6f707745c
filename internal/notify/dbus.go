//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = busName + ".Notify"
	appName    = "flipplayer"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, messages are dropped.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // no session bus means no notifications
	}
	return &dbusNotifier{obj: conn.Object(busName, objectPath)}, nil
}

func (n *dbusNotifier) Notify(m Message) (uint32, error) {
	var id uint32
	err := n.obj.Call(notifyCall, 0, notifyArgs(m)...).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// notifyArgs orders m as the Notify method expects: app name, replaced id,
// icon, summary, body, actions, hints, timeout in ms.
func notifyArgs(m Message) []any {
	urgency := byte(1)
	if m.Critical {
		urgency = 2
	}
	timeout := int32(-1)
	if m.Expire > 0 {
		timeout = int32(m.Expire.Milliseconds())
	}
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgency),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	return []any{appName, m.Replaces, m.Icon, m.Summary, m.Body, []string{}, hints, timeout}
}
