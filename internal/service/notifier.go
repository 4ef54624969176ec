package service

// Notifier pushes real-time notifications to connected clients. Delivery is
// fire-and-forget: an offline recipient silently misses the event and the
// caller is never told.
type Notifier interface {
	NotifyMessage(sender, receiver, body string)
	NotifyLike(actor, subjectAuthor string)
	NotifyComment(actor, subjectAuthor string)
	NotifyFollow(actor, followed string)
}
