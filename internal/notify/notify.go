// Package notify shows player messages as desktop notifications.
package notify

import "time"

// Message is one desktop notification.
type Message struct {
	Summary string
	Body    string
	// Icon is an icon name from the desktop theme or an image path.
	Icon string
	// Expire is how long the server shows the message; 0 uses the server
	// default.
	Expire time.Duration
	// Replaces is the id of a shown message to update in place.
	Replaces uint32
	Critical bool
}

// Notifier delivers messages. Notify returns the id the server assigned,
// or 0 when notifications are unavailable.
type Notifier interface {
	Notify(m Message) (uint32, error)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Message) (uint32, error) { return 0, nil }
