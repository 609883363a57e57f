package services

// EventType names what happened to a record.
type EventType string

const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
	EventCascaded EventType = "cascaded"
)

// ChangeEvent describes one committed write.
type ChangeEvent struct {
	Type       EventType `json:"type"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
}

// Publisher receives change events after the write is saved. Publish must
// not block.
type Publisher interface {
	Publish(ev ChangeEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(ChangeEvent) {}
