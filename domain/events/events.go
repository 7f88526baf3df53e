// Package events defines the audit events published to the reporting
// pipeline after each notify or resolution pass.
package events

import "time"

// SourceNotificationEngine is the EventBridge source for all events
// published by this subsystem.
const SourceNotificationEngine = "behaviortrack.notifications"

const (
	EventTypeNotificationDispatched = "notification.dispatched"
	EventTypeEscalationResolved     = "escalation.resolved"
)

// DomainEvent is anything the audit publisher can put on the bus.
type DomainEvent interface {
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
}

// NotificationDispatched records the outcome of one notify pass.
type NotificationDispatched struct {
	StudentID  string    `json:"studentId"`
	BehaviorID string    `json:"behaviorId"`
	Matched    int       `json:"matched"`
	Escalated  bool      `json:"escalated"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e NotificationDispatched) GetEventType() string   { return EventTypeNotificationDispatched }
func (e NotificationDispatched) GetAggregateID() string { return e.StudentID }
func (e NotificationDispatched) GetTimestamp() time.Time {
	return e.Timestamp
}

// EscalationResolved records the outcome of one resolution pass.
type EscalationResolved struct {
	StudentID   string    `json:"studentId"`
	BehaviorID  string    `json:"behaviorId"`
	HasResponse bool      `json:"hasResponse"`
	HasTimeout  bool      `json:"hasTimeout"`
	Renotified  int       `json:"renotified"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e EscalationResolved) GetEventType() string   { return EventTypeEscalationResolved }
func (e EscalationResolved) GetAggregateID() string { return e.StudentID }
func (e EscalationResolved) GetTimestamp() time.Time {
	return e.Timestamp
}
