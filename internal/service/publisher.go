package service

// Publisher receives the change notifications shown on the admin live
// feed. Publish must not block.
type Publisher interface {
	Publish(topic string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

// NopPublisher drops every notification.
func NopPublisher() Publisher {
	return nopPublisher{}
}
