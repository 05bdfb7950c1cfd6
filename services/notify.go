package services

import "esports-registration/notifier"

// Notifier accepts notifications for background delivery. Enqueue must not
// block; false means the notification was dropped.
type Notifier interface {
	Enqueue(n notifier.Notification) bool
}

type discardNotifier struct{}

func (discardNotifier) Enqueue(notifier.Notification) bool { return false }

func orDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}
