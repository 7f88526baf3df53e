// Package ports defines the collaborator contracts the engine consumes.
// Implementations live under infrastructure/; tests/mocks carries testify
// mocks for all of them.
package ports

import (
	"context"
	"time"

	"behaviortrack/domain/tracking"
)

// SubscriptionReader loads a student's notification subscription groups.
type SubscriptionReader interface {
	GetSubscriptions(ctx context.Context, studentID string) ([]tracking.SubscriptionGroup, error)
}

// StudentReader loads the notification-relevant student configuration.
type StudentReader interface {
	GetStudent(ctx context.Context, studentID string) (*tracking.Student, error)
}

// ReportReader loads a student's behavior occurrences within a window.
type ReportReader interface {
	GetDayReport(ctx context.Context, studentID string, dayStart, dayEnd time.Time) ([]tracking.BehaviorOccurrence, error)
}

// TeamReader loads the team members with access to a student.
type TeamReader interface {
	GetTeam(ctx context.Context, studentID string) ([]tracking.TeamMember, error)
}

// AlertFlagWriter persists the per-(user, student) outstanding-alert flag.
type AlertFlagWriter interface {
	SetOutstandingAlert(ctx context.Context, userID, studentID string, outstanding bool) error
}

// NotificationRecorder persists the "last behavior notification" record for
// a (user, student) pair.
type NotificationRecorder interface {
	RecordUserNotification(ctx context.Context, userID, studentID, behaviorID string, at time.Time) error
}
