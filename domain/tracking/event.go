package tracking

import "time"

// DeviceKind identifies which kind of client recorded a behavior event.
// The kind selects how the source display name is resolved.
type DeviceKind string

const (
	// DeviceApp is the mobile tracking app.
	DeviceApp DeviceKind = "app"
	// DeviceLegacy is a paired physical tracking device.
	DeviceLegacy DeviceKind = "device"
	// DeviceWeb is the web console.
	DeviceWeb DeviceKind = "web"
)

// EscalationWindow is how long after the triggering event a subscription
// remains eligible for renewed escalation.
const EscalationWindow = 60 * time.Minute

// EventSource identifies who recorded an event and through which client.
type EventSource struct {
	Device DeviceKind `json:"device"`
	Rater  string     `json:"rater"`
}

// BehaviorEvent is a single tracked behavior occurrence as delivered by the
// upstream tracking pipeline. It is immutable. DayParity and WeekParity are
// the occurrence count mod 2 within the current day and week respectively;
// for duration behaviors the relevant parity distinguishes a "start"
// occurrence (parity 0) from a "stop" occurrence.
type BehaviorEvent struct {
	StudentID  string      `json:"studentId"`
	BehaviorID string      `json:"behaviorId"`
	EventTime  time.Time   `json:"eventTime"`
	Source     EventSource `json:"source"`
	DayParity  int         `json:"dayParity"`
	WeekParity int         `json:"weekParity"`
	IsDuration bool        `json:"isDuration"`
}

// EscalationState is the payload carried from the notify pass to the
// deferred resolution pass. The delay queue is the only thing keeping it
// alive; it is never persisted.
type EscalationState struct {
	StudentID   string      `json:"studentId" validate:"required"`
	BehaviorID  string      `json:"behaviorId" validate:"required"`
	EventTime   time.Time   `json:"eventTime" validate:"required"`
	IsDuration  bool        `json:"isDuration"`
	Source      EventSource `json:"source"`
	DayParity   int         `json:"dayParity" validate:"min=0,max=1"`
	WeekParity  int         `json:"weekParity" validate:"min=0,max=1"`
	SkipTimeout bool        `json:"skipTimeout,omitempty"`
}

// NewEscalationState captures the trigger event for the deferred pass.
func NewEscalationState(ev BehaviorEvent) EscalationState {
	return EscalationState{
		StudentID:  ev.StudentID,
		BehaviorID: ev.BehaviorID,
		EventTime:  ev.EventTime,
		IsDuration: ev.IsDuration,
		Source:     ev.Source,
		DayParity:  ev.DayParity,
		WeekParity: ev.WeekParity,
	}
}

// Event reconstructs the trigger event the state was minted from.
func (s EscalationState) Event() BehaviorEvent {
	return BehaviorEvent{
		StudentID:  s.StudentID,
		BehaviorID: s.BehaviorID,
		EventTime:  s.EventTime,
		Source:     s.Source,
		DayParity:  s.DayParity,
		WeekParity: s.WeekParity,
		IsDuration: s.IsDuration,
	}
}

// BehaviorOccurrence is one row of a student's day-window event report.
type BehaviorOccurrence struct {
	BehaviorID string    `json:"behaviorId"`
	Timestamp  time.Time `json:"timestamp"`
	Deleted    bool      `json:"deleted"`
}
