// Package mocks provides testify mocks for the engine's collaborator
// interfaces.
package mocks

import (
	"context"
	"time"

	"behaviortrack/application/ports"
	"behaviortrack/domain/events"
	"behaviortrack/domain/tracking"

	"github.com/stretchr/testify/mock"
)

// MockStudentReader mocks ports.StudentReader
type MockStudentReader struct {
	mock.Mock
}

func (m *MockStudentReader) GetStudent(ctx context.Context, studentID string) (*tracking.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Student), args.Error(1)
}

// MockSubscriptionReader mocks ports.SubscriptionReader
type MockSubscriptionReader struct {
	mock.Mock
}

func (m *MockSubscriptionReader) GetSubscriptions(ctx context.Context, studentID string) ([]tracking.SubscriptionGroup, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.SubscriptionGroup), args.Error(1)
}

// MockReportReader mocks ports.ReportReader
type MockReportReader struct {
	mock.Mock
}

func (m *MockReportReader) GetDayReport(ctx context.Context, studentID string, dayStart, dayEnd time.Time) ([]tracking.BehaviorOccurrence, error) {
	args := m.Called(ctx, studentID, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.BehaviorOccurrence), args.Error(1)
}

// MockTeamReader mocks ports.TeamReader
type MockTeamReader struct {
	mock.Mock
}

func (m *MockTeamReader) GetTeam(ctx context.Context, studentID string) ([]tracking.TeamMember, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.TeamMember), args.Error(1)
}

// MockAlertFlagWriter mocks ports.AlertFlagWriter
type MockAlertFlagWriter struct {
	mock.Mock
}

func (m *MockAlertFlagWriter) SetOutstandingAlert(ctx context.Context, userID, studentID string, outstanding bool) error {
	args := m.Called(ctx, userID, studentID, outstanding)
	return args.Error(0)
}

// MockNotificationRecorder mocks ports.NotificationRecorder
type MockNotificationRecorder struct {
	mock.Mock
}

func (m *MockNotificationRecorder) RecordUserNotification(ctx context.Context, userID, studentID, behaviorID string, at time.Time) error {
	args := m.Called(ctx, userID, studentID, behaviorID, at)
	return args.Error(0)
}

// MockPushEndpointReader mocks ports.PushEndpointReader
type MockPushEndpointReader struct {
	mock.Mock
}

func (m *MockPushEndpointReader) GetPushEndpoint(ctx context.Context, deviceID string) (*ports.PushEndpoint, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PushEndpoint), args.Error(1)
}

// MockPushSender mocks ports.PushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendPush(ctx context.Context, endpointRef string, payload []byte) error {
	args := m.Called(ctx, endpointRef, payload)
	return args.Error(0)
}

// MockEmailSender mocks ports.EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, addresses []string, subject, htmlBody string) error {
	args := m.Called(ctx, addresses, subject, htmlBody)
	return args.Error(0)
}

// MockSMSSender mocks ports.SMSSender
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendSMS(ctx context.Context, numbers []string, body string) error {
	args := m.Called(ctx, numbers, body)
	return args.Error(0)
}

// MockTemplateFetcher mocks ports.TemplateFetcher
type MockTemplateFetcher struct {
	mock.Mock
}

func (m *MockTemplateFetcher) FetchTemplate(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// MockSourceNameResolver mocks ports.SourceNameResolver
type MockSourceNameResolver struct {
	mock.Mock
}

func (m *MockSourceNameResolver) ResolveSourceDisplayName(ctx context.Context, raterID string) (string, error) {
	args := m.Called(ctx, raterID)
	return args.String(0), args.Error(1)
}

// MockEscalationScheduler mocks ports.EscalationScheduler
type MockEscalationScheduler struct {
	mock.Mock
}

func (m *MockEscalationScheduler) ScheduleDelayedInvocation(ctx context.Context, state tracking.EscalationState, delay time.Duration) error {
	args := m.Called(ctx, state, delay)
	return args.Error(0)
}

// MockEventBus mocks ports.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockNotifier mocks ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, ev tracking.BehaviorEvent, opts ports.NotifyOptions) (*ports.NotifyResult, error) {
	args := m.Called(ctx, ev, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.NotifyResult), args.Error(1)
}
