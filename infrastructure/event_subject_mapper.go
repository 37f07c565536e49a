package infrastructure

import (
	"casinobot/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct {
	prefix string
}

// NewEventSubjectMapper creates a mapper that puts every subject under prefix
func NewEventSubjectMapper(prefix string) *EventSubjectMapper {
	return &EventSubjectMapper{prefix: prefix}
}

// MapEventToSubject converts a domain event to its NATS subject, <prefix>.<event type>
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	return m.subject(event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for _, eventType := range events.AllEventTypes {
		if m.subject(eventType) == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	subjects := make([]string, 0, len(events.AllEventTypes))
	for _, eventType := range events.AllEventTypes {
		subjects = append(subjects, m.subject(eventType))
	}
	return subjects
}

func (m *EventSubjectMapper) subject(eventType events.EventType) string {
	if m.prefix == "" {
		return string(eventType)
	}
	return m.prefix + "." + string(eventType)
}
