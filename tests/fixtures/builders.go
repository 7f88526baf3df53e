// Package fixtures provides builders for test data.
package fixtures

import (
	"time"

	"behaviortrack/domain/tracking"
)

// StudentBuilder builds tracking.Student values for tests.
type StudentBuilder struct {
	student tracking.Student
}

// NewStudentBuilder starts a builder with sensible defaults.
func NewStudentBuilder() *StudentBuilder {
	return &StudentBuilder{student: tracking.Student{
		ID:        "student-1",
		FirstName: "Alex",
		LastName:  "Rivera",
		Nickname:  "Al",
	}}
}

func (b *StudentBuilder) WithID(id string) *StudentBuilder {
	b.student.ID = id
	return b
}

func (b *StudentBuilder) WithName(first, last string) *StudentBuilder {
	b.student.FirstName = first
	b.student.LastName = last
	return b
}

func (b *StudentBuilder) WithBehavior(def tracking.BehaviorDef) *StudentBuilder {
	b.student.Behaviors = append(b.student.Behaviors, def)
	return b
}

func (b *StudentBuilder) WithResponse(def tracking.BehaviorDef) *StudentBuilder {
	b.student.Responses = append(b.student.Responses, def)
	return b
}

func (b *StudentBuilder) Build() *tracking.Student {
	s := b.student
	return &s
}

// SubscriptionBuilder builds tracking.SubscriptionGroup values for tests.
type SubscriptionBuilder struct {
	group tracking.SubscriptionGroup
}

// NewSubscriptionBuilder starts a builder with sensible defaults.
func NewSubscriptionBuilder() *SubscriptionBuilder {
	return &SubscriptionBuilder{group: tracking.SubscriptionGroup{
		ID:   "sub-1",
		Name: "Default group",
	}}
}

func (b *SubscriptionBuilder) WithID(id string) *SubscriptionBuilder {
	b.group.ID = id
	return b
}

func (b *SubscriptionBuilder) WithName(name string) *SubscriptionBuilder {
	b.group.Name = name
	return b
}

func (b *SubscriptionBuilder) WithBehaviors(ids ...string) *SubscriptionBuilder {
	b.group.BehaviorIDs = ids
	return b
}

func (b *SubscriptionBuilder) WithResponses(ids ...string) *SubscriptionBuilder {
	b.group.ResponseIDs = ids
	return b
}

func (b *SubscriptionBuilder) WithNotifyUntilResponse(v bool) *SubscriptionBuilder {
	b.group.NotifyUntilResponse = v
	return b
}

func (b *SubscriptionBuilder) WithEmails(emails ...string) *SubscriptionBuilder {
	b.group.Emails = emails
	return b
}

func (b *SubscriptionBuilder) WithMobiles(mobiles ...string) *SubscriptionBuilder {
	b.group.Mobiles = mobiles
	return b
}

func (b *SubscriptionBuilder) WithUsers(userIDs ...string) *SubscriptionBuilder {
	b.group.UserIDs = userIDs
	return b
}

func (b *SubscriptionBuilder) WithDevices(deviceIDs ...string) *SubscriptionBuilder {
	b.group.DeviceIDs = deviceIDs
	return b
}

func (b *SubscriptionBuilder) WithTemplates(t tracking.MessageTemplates) *SubscriptionBuilder {
	b.group.Templates = t
	return b
}

func (b *SubscriptionBuilder) Build() tracking.SubscriptionGroup {
	return b.group
}

// EventBuilder builds tracking.BehaviorEvent values for tests.
type EventBuilder struct {
	event tracking.BehaviorEvent
}

// NewEventBuilder starts a builder with sensible defaults.
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{event: tracking.BehaviorEvent{
		StudentID:  "student-1",
		BehaviorID: "behavior-1",
		EventTime:  time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC),
		Source:     tracking.EventSource{Device: tracking.DeviceApp, Rater: "rater-1"},
	}}
}

func (b *EventBuilder) WithStudent(id string) *EventBuilder {
	b.event.StudentID = id
	return b
}

func (b *EventBuilder) WithBehavior(id string) *EventBuilder {
	b.event.BehaviorID = id
	return b
}

func (b *EventBuilder) WithTime(t time.Time) *EventBuilder {
	b.event.EventTime = t
	return b
}

func (b *EventBuilder) WithSource(source tracking.EventSource) *EventBuilder {
	b.event.Source = source
	return b
}

func (b *EventBuilder) WithDuration(dayParity, weekParity int) *EventBuilder {
	b.event.IsDuration = true
	b.event.DayParity = dayParity
	b.event.WeekParity = weekParity
	return b
}

func (b *EventBuilder) Build() tracking.BehaviorEvent {
	return b.event
}
