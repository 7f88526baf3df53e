package notify

import (
	"context"
	"regexp"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"
	apperrors "behaviortrack/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// smsOptOutSuffix is appended to every outgoing text regardless of where
// the body came from. Carrier compliance.
const smsOptOutSuffix = "\nReply STOP to unsubscribe."

var studentNamePattern = regexp.MustCompile(`(?i)\{studentname\}`)

// Dispatcher fans a composed message out to the push, email, SMS and
// in-app-bookkeeping sinks. The four fan-outs run concurrently; partial
// failure in one channel never blocks or rolls back the others.
type Dispatcher struct {
	endpoints ports.PushEndpointReader
	push      ports.PushSender
	email     ports.EmailSender
	sms       ports.SMSSender
	templates ports.TemplateFetcher
	recorder  ports.NotificationRecorder
	metrics   ports.MetricsCollector

	// fallbackTemplatePath locates the stock HTML email used when a
	// subscription composed no explicit email message.
	fallbackTemplatePath string
	logger               *zap.Logger
}

// NewDispatcher wires a channel dispatcher.
func NewDispatcher(
	endpoints ports.PushEndpointReader,
	push ports.PushSender,
	email ports.EmailSender,
	sms ports.SMSSender,
	templates ports.TemplateFetcher,
	recorder ports.NotificationRecorder,
	metrics ports.MetricsCollector,
	fallbackTemplatePath string,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		endpoints:            endpoints,
		push:                 push,
		email:                email,
		sms:                  sms,
		templates:            templates,
		recorder:             recorder,
		metrics:              metrics,
		fallbackTemplatePath: fallbackTemplatePath,
		logger:               logger,
	}
}

// DispatchInput is everything one subscription group's fan-out needs.
type DispatchInput struct {
	Event        tracking.BehaviorEvent
	Group        tracking.SubscriptionGroup
	Student      *tracking.Student
	BehaviorName string
	IsResponse   bool
	Started      *bool
	Messages     map[tracking.Channel]string
	SkipRecord   bool
}

// Dispatch delivers to all four recipient classes. Only the email branch's
// error propagates; push, SMS and bookkeeping are best-effort and swallow
// their failures after logging.
func (d *Dispatcher) Dispatch(ctx context.Context, in DispatchInput) error {
	var g errgroup.Group
	g.Go(func() error { d.dispatchPush(ctx, in); return nil })
	g.Go(func() error { return d.dispatchEmail(ctx, in) })
	g.Go(func() error { d.dispatchSMS(ctx, in); return nil })
	g.Go(func() error { d.recordNotifications(ctx, in); return nil })
	return g.Wait()
}

func (d *Dispatcher) dispatchPush(ctx context.Context, in DispatchInput) {
	for _, deviceID := range dedupe(in.Group.DeviceIDs) {
		endpoint, err := d.endpoints.GetPushEndpoint(ctx, deviceID)
		if err != nil {
			d.logger.Warn("push endpoint lookup failed",
				zap.Error(err),
				zap.String("deviceId", deviceID),
			)
			d.metrics.CountDispatch(string(tracking.ChannelApp), ports.OutcomeFailed)
			continue
		}
		if endpoint == nil {
			// No push endpoint on file; skip silently.
			d.metrics.CountDispatch(string(tracking.ChannelApp), ports.OutcomeSkipped)
			continue
		}

		payload, err := buildPushPayload(endpoint.Platform, in)
		if err != nil {
			d.logger.Warn("push payload build failed",
				zap.Error(err),
				zap.String("deviceId", deviceID),
				zap.String("platform", endpoint.Platform),
			)
			d.metrics.CountDispatch(string(tracking.ChannelApp), ports.OutcomeFailed)
			continue
		}

		if err := d.push.SendPush(ctx, endpoint.EndpointRef, payload); err != nil {
			// Push is best-effort: logged, not retried, not surfaced.
			d.logger.Warn("push delivery failed",
				zap.Error(err),
				zap.String("deviceId", deviceID),
				zap.String("studentId", in.Event.StudentID),
			)
			d.metrics.CountDispatch(string(tracking.ChannelApp), ports.OutcomeFailed)
			continue
		}
		d.metrics.CountDispatch(string(tracking.ChannelApp), ports.OutcomeSent)
	}
}

func (d *Dispatcher) dispatchEmail(ctx context.Context, in DispatchInput) error {
	addresses := dedupe(in.Group.Emails)
	if len(addresses) == 0 {
		return nil
	}

	body := in.Messages[tracking.ChannelEmail]
	if body == "" {
		tpl, err := d.templates.FetchTemplate(ctx, d.fallbackTemplatePath)
		if err != nil {
			d.metrics.CountDispatch(string(tracking.ChannelEmail), ports.OutcomeFailed)
			return apperrors.NewTemplateError("fetch fallback email template", err)
		}
		body = studentNamePattern.ReplaceAllString(tpl, in.Student.FullName())
	}

	subject := "Behavior alert for " + in.Student.FirstName
	if err := d.email.SendEmail(ctx, addresses, subject, body); err != nil {
		d.metrics.CountDispatch(string(tracking.ChannelEmail), ports.OutcomeFailed)
		return apperrors.NewTemplateError("send email", err)
	}
	d.metrics.CountDispatch(string(tracking.ChannelEmail), ports.OutcomeSent)
	return nil
}

func (d *Dispatcher) dispatchSMS(ctx context.Context, in DispatchInput) {
	numbers := dedupe(in.Group.Mobiles)
	if len(numbers) == 0 {
		return
	}
	body := in.Messages[tracking.ChannelText]
	if body == "" {
		d.metrics.CountDispatch(string(tracking.ChannelText), ports.OutcomeSkipped)
		return
	}

	if err := d.sms.SendSMS(ctx, numbers, body+smsOptOutSuffix); err != nil {
		d.logger.Warn("sms delivery failed",
			zap.Error(err),
			zap.String("studentId", in.Event.StudentID),
			zap.Int("recipients", len(numbers)),
		)
		d.metrics.CountDispatch(string(tracking.ChannelText), ports.OutcomeFailed)
		return
	}
	d.metrics.CountDispatch(string(tracking.ChannelText), ports.OutcomeSent)
}

// recordNotifications persists the per-user "last behavior notification"
// record, suppressed on resolution-driven re-notifications and on the stop
// half of an already-closed duration pair.
func (d *Dispatcher) recordNotifications(ctx context.Context, in DispatchInput) {
	if in.SkipRecord {
		return
	}
	if in.Event.IsDuration && in.Started != nil && !*in.Started {
		return
	}
	for _, userID := range dedupe(in.Group.UserIDs) {
		err := d.recorder.RecordUserNotification(ctx, userID, in.Event.StudentID, in.Event.BehaviorID, in.Event.EventTime)
		if err != nil {
			d.logger.Warn("failed to record user notification",
				zap.Error(err),
				zap.String("userId", userID),
				zap.String("studentId", in.Event.StudentID),
			)
		}
	}
}

// dedupe drops duplicates and empty entries, preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
