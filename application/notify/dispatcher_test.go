package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"
	"behaviortrack/infrastructure/observability"
	apperrors "behaviortrack/pkg/errors"
	"behaviortrack/tests/fixtures"
	"behaviortrack/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dispatcherMocks struct {
	endpoints *mocks.MockPushEndpointReader
	push      *mocks.MockPushSender
	email     *mocks.MockEmailSender
	sms       *mocks.MockSMSSender
	templates *mocks.MockTemplateFetcher
	recorder  *mocks.MockNotificationRecorder
}

func newTestDispatcher() (*Dispatcher, *dispatcherMocks) {
	m := &dispatcherMocks{
		endpoints: new(mocks.MockPushEndpointReader),
		push:      new(mocks.MockPushSender),
		email:     new(mocks.MockEmailSender),
		sms:       new(mocks.MockSMSSender),
		templates: new(mocks.MockTemplateFetcher),
		recorder:  new(mocks.MockNotificationRecorder),
	}
	d := NewDispatcher(
		m.endpoints,
		m.push,
		m.email,
		m.sms,
		m.templates,
		m.recorder,
		observability.NoopMetrics{},
		"templates/behavior-alert.html",
		zap.NewNop(),
	)
	return d, m
}

func baseInput() DispatchInput {
	return DispatchInput{
		Event:        fixtures.NewEventBuilder().Build(),
		Group:        fixtures.NewSubscriptionBuilder().WithBehaviors("behavior-1").Build(),
		Student:      fixtures.NewStudentBuilder().Build(),
		BehaviorName: "Out of seat",
	}
}

func TestDispatch_PushSkipsDevicesWithoutEndpoint(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.DeviceIDs = []string{"dev-1", "dev-2", "dev-1"}

	m.endpoints.On("GetPushEndpoint", mock.Anything, "dev-1").Return(nil, nil)
	m.endpoints.On("GetPushEndpoint", mock.Anything, "dev-2").
		Return(&ports.PushEndpoint{Platform: ports.PlatformIOS, EndpointRef: "arn:ep-2"}, nil)
	m.push.On("SendPush", mock.Anything, "arn:ep-2", mock.Anything).Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	// dev-1 deduplicated and then skipped silently; only dev-2 delivered.
	m.endpoints.AssertNumberOfCalls(t, "GetPushEndpoint", 2)
	m.push.AssertNumberOfCalls(t, "SendPush", 1)
}

func TestDispatch_PushFailureSwallowed(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.DeviceIDs = []string{"dev-1"}

	m.endpoints.On("GetPushEndpoint", mock.Anything, "dev-1").
		Return(&ports.PushEndpoint{Platform: ports.PlatformAndroid, EndpointRef: "arn:ep-1"}, nil)
	m.push.On("SendPush", mock.Anything, "arn:ep-1", mock.Anything).Return(errors.New("endpoint disabled"))

	err := d.Dispatch(context.Background(), in)

	assert.NoError(t, err)
}

func TestDispatch_PushPayloadShapes(t *testing.T) {
	in := baseInput()
	in.IsResponse = false

	payload, err := buildPushPayload(ports.PlatformIOS, in)
	require.NoError(t, err)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.Contains(t, envelope, "APNS")
	assert.Equal(t, "Out of seat recorded for Alex", envelope["default"])

	var aps apnsPayload
	require.NoError(t, json.Unmarshal([]byte(envelope["APNS"]), &aps))
	assert.Equal(t, "Out of seat recorded for Alex", aps.APS.Alert.Body)

	payload, err = buildPushPayload(ports.PlatformAndroid, in)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, &envelope))
	assert.Contains(t, envelope, "GCM")

	var fcm fcmPayload
	require.NoError(t, json.Unmarshal([]byte(envelope["GCM"]), &fcm))
	assert.Equal(t, "student-1", fcm.Data["studentId"])

	_, err = buildPushPayload("blackberry", in)
	assert.Error(t, err)
}

func TestDispatch_PushBodyForResponses(t *testing.T) {
	in := baseInput()
	in.IsResponse = true
	in.BehaviorName = "Check-in"

	assert.Equal(t, "Check-in for Alex", pushBody(in))
}

func TestDispatch_PushBodyDurationSuffix(t *testing.T) {
	in := baseInput()

	started := true
	in.Started = &started
	assert.Equal(t, "Out of seat recorded for Alex has started", pushBody(in))

	started = false
	assert.Equal(t, "Out of seat recorded for Alex has stopped", pushBody(in))
}

func TestDispatch_EmailUsesComposedMessage(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.Emails = []string{"a@example.com", "a@example.com", "b@example.com"}
	in.Messages = map[tracking.Channel]string{tracking.ChannelEmail: "<p>custom</p>"}

	m.email.On("SendEmail", mock.Anything, []string{"a@example.com", "b@example.com"},
		"Behavior alert for Alex", "<p>custom</p>").Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.email.AssertExpectations(t)
	m.templates.AssertNotCalled(t, "FetchTemplate", mock.Anything, mock.Anything)
}

func TestDispatch_EmailFallbackTemplate(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.Emails = []string{"a@example.com"}

	m.templates.On("FetchTemplate", mock.Anything, "templates/behavior-alert.html").
		Return("<p>Alert for {StudentName}</p>", nil)
	m.email.On("SendEmail", mock.Anything, []string{"a@example.com"},
		"Behavior alert for Alex", "<p>Alert for Alex Rivera</p>").Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.email.AssertExpectations(t)
}

func TestDispatch_TemplateFetchFailurePropagates(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.Emails = []string{"a@example.com"}
	in.Group.Mobiles = []string{"+15550100"}
	in.Messages = map[tracking.Channel]string{tracking.ChannelText: "txt"}

	m.templates.On("FetchTemplate", mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable"))
	m.sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := d.Dispatch(context.Background(), in)

	// The email branch fails visibly without blocking the SMS branch.
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTemplate))
	m.sms.AssertNumberOfCalls(t, "SendSMS", 1)
}

func TestDispatch_SMSAppendsOptOut(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.Mobiles = []string{"+15550100", "+15550100"}
	in.Messages = map[tracking.Channel]string{tracking.ChannelText: "Alex needs attention"}

	m.sms.On("SendSMS", mock.Anything, []string{"+15550100"},
		"Alex needs attention\nReply STOP to unsubscribe.").Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.sms.AssertExpectations(t)
}

func TestDispatch_SMSSkippedWithoutMessage(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.Mobiles = []string{"+15550100"}

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_RecordsUserNotifications(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.UserIDs = []string{"u1", "u2", "u1"}

	m.recorder.On("RecordUserNotification", mock.Anything, "u1", "student-1", "behavior-1", in.Event.EventTime).Return(nil)
	m.recorder.On("RecordUserNotification", mock.Anything, "u2", "student-1", "behavior-1", in.Event.EventTime).Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.recorder.AssertNumberOfCalls(t, "RecordUserNotification", 2)
}

func TestDispatch_RecordSuppressedOnDurationStop(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.UserIDs = []string{"u1"}
	in.Event.IsDuration = true
	stopped := false
	in.Started = &stopped

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.recorder.AssertNotCalled(t, "RecordUserNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_RecordSuppressedOnSkipRecord(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.UserIDs = []string{"u1"}
	in.SkipRecord = true

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.recorder.AssertNotCalled(t, "RecordUserNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_RecordFailureContinues(t *testing.T) {
	d, m := newTestDispatcher()
	in := baseInput()
	in.Group.UserIDs = []string{"u1", "u2"}

	m.recorder.On("RecordUserNotification", mock.Anything, "u1", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("conditional check failed"))
	m.recorder.On("RecordUserNotification", mock.Anything, "u2", mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	err := d.Dispatch(context.Background(), in)

	require.NoError(t, err)
	m.recorder.AssertNumberOfCalls(t, "RecordUserNotification", 2)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "", "c", "b"}))
	assert.Empty(t, dedupe(nil))
}
