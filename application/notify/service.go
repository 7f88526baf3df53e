// Package notify implements the "notify now" pass: subscription matching,
// message composition, channel fan-out and escalation scheduling.
package notify

import (
	"context"
	"sync"
	"time"

	"behaviortrack/application/ports"
	"behaviortrack/domain/events"
	"behaviortrack/domain/notification"
	"behaviortrack/domain/tracking"
	apperrors "behaviortrack/pkg/errors"

	"go.uber.org/zap"
)

// Service runs the notify pass for a single behavior event.
type Service struct {
	students   ports.StudentReader
	subs       ports.SubscriptionReader
	dispatcher *Dispatcher
	scheduler  ports.EscalationScheduler
	resolvers  map[tracking.DeviceKind]ports.SourceNameResolver
	bus        ports.EventBus
	metrics    ports.MetricsCollector
	delay      time.Duration
	window     time.Duration
	logger     *zap.Logger
}

// NewService wires a notify service. resolvers must contain one
// SourceNameResolver per device kind that can appear in events.
func NewService(
	students ports.StudentReader,
	subs ports.SubscriptionReader,
	dispatcher *Dispatcher,
	scheduler ports.EscalationScheduler,
	resolvers map[tracking.DeviceKind]ports.SourceNameResolver,
	bus ports.EventBus,
	metrics ports.MetricsCollector,
	resolutionDelay time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		students:   students,
		subs:       subs,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		resolvers:  resolvers,
		bus:        bus,
		metrics:    metrics,
		delay:      resolutionDelay,
		window:     tracking.EscalationWindow,
		logger:     logger,
	}
}

// Notify runs one notify pass. Channel delivery failures never fail the
// pass; only load failures (student, subscriptions) return an error.
func (s *Service) Notify(ctx context.Context, ev tracking.BehaviorEvent, opts ports.NotifyOptions) (*ports.NotifyResult, error) {
	defer s.metrics.Flush(ctx)

	student, err := s.students.GetStudent(ctx, ev.StudentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load student", err)
	}

	groups, err := s.subs.GetSubscriptions(ctx, ev.StudentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load subscriptions", err)
	}

	matched := tracking.MatchSubscriptions(ev, groups)
	matched = filterGroups(matched, opts.OnlyGroupIDs)
	if len(matched) == 0 {
		s.logger.Info("no subscriptions matched",
			zap.String("studentId", ev.StudentID),
			zap.String("behaviorId", ev.BehaviorID),
		)
		return &ports.NotifyResult{}, nil
	}

	def, known := student.Definition(ev.BehaviorID)
	if !known {
		def = tracking.BehaviorDef{ID: ev.BehaviorID, Name: ev.BehaviorID, IsDuration: ev.IsDuration}
	}
	started := tracking.StartState(def, ev)
	isResponse := student.IsResponse(ev.BehaviorID)
	resolveSource := s.lazySourceName(ev.Source)

	var wg sync.WaitGroup
	for _, m := range matched {
		wg.Add(1)
		go func(group tracking.SubscriptionGroup) {
			defer wg.Done()
			s.notifyGroup(ctx, group, dispatchContext{
				event:         ev,
				student:       student,
				behaviorName:  def.Name,
				isResponse:    isResponse,
				started:       started,
				skipRecord:    opts.SkipRecord,
				resolveSource: resolveSource,
			})
		}(m.Group)
	}
	wg.Wait()

	escalated := s.scheduleEscalation(ctx, ev, matched)

	s.publishAudit(ctx, events.NotificationDispatched{
		StudentID:  ev.StudentID,
		BehaviorID: ev.BehaviorID,
		Matched:    len(matched),
		Escalated:  escalated,
		Timestamp:  time.Now().UTC(),
	})

	return &ports.NotifyResult{Matched: len(matched), Escalated: escalated}, nil
}

type dispatchContext struct {
	event         tracking.BehaviorEvent
	student       *tracking.Student
	behaviorName  string
	isResponse    bool
	started       *bool
	skipRecord    bool
	resolveSource notification.SourceNameFunc
}

func (s *Service) notifyGroup(ctx context.Context, group tracking.SubscriptionGroup, dc dispatchContext) {
	messages, err := notification.Compose(ctx, group.Templates, notification.Context{
		Student:      dc.student,
		BehaviorName: dc.behaviorName,
	}, dc.resolveSource)
	if err != nil {
		s.logger.Error("message composition failed",
			zap.Error(err),
			zap.String("subscriptionId", group.ID),
			zap.String("studentId", dc.event.StudentID),
		)
		return
	}

	err = s.dispatcher.Dispatch(ctx, DispatchInput{
		Event:        dc.event,
		Group:        group,
		Student:      dc.student,
		BehaviorName: dc.behaviorName,
		IsResponse:   dc.isResponse,
		Started:      dc.started,
		Messages:     messages,
		SkipRecord:   dc.skipRecord,
	})
	if err != nil {
		// Only the email branch propagates errors out of Dispatch; the
		// other channels are best-effort and already logged.
		s.logger.Error("email dispatch failed",
			zap.Error(err),
			zap.String("subscriptionId", group.ID),
			zap.String("studentId", dc.event.StudentID),
		)
	}
}

// scheduleEscalation triggers the deferred resolution pass when at least
// one matched subscription is escalation-eligible and the event is still
// inside the live window. Fire-and-forget: scheduling failures are logged,
// never surfaced.
func (s *Service) scheduleEscalation(ctx context.Context, ev tracking.BehaviorEvent, matched []tracking.MatchedSubscription) bool {
	eligible := false
	for _, m := range matched {
		if m.EscalationEligible {
			eligible = true
			break
		}
	}
	if !eligible {
		return false
	}
	if time.Since(ev.EventTime) >= s.window {
		s.logger.Info("escalation window elapsed, skipping schedule",
			zap.String("studentId", ev.StudentID),
			zap.String("behaviorId", ev.BehaviorID),
			zap.Time("eventTime", ev.EventTime),
		)
		return false
	}

	state := tracking.NewEscalationState(ev)
	if err := s.scheduler.ScheduleDelayedInvocation(ctx, state, s.delay); err != nil {
		s.logger.Error("failed to schedule resolution pass",
			zap.Error(err),
			zap.String("studentId", ev.StudentID),
			zap.String("behaviorId", ev.BehaviorID),
		)
		return false
	}
	return true
}

// lazySourceName defers the source display-name lookup until a template
// actually references {WhoTracked}, and memoizes the single call.
func (s *Service) lazySourceName(source tracking.EventSource) notification.SourceNameFunc {
	var once sync.Once
	var name string
	return func(ctx context.Context) (string, error) {
		once.Do(func() {
			resolver, ok := s.resolvers[source.Device]
			if !ok {
				s.logger.Warn("no source name resolver for device kind",
					zap.String("deviceKind", string(source.Device)),
				)
				return
			}
			resolved, err := resolver.ResolveSourceDisplayName(ctx, source.Rater)
			if err != nil {
				// Best-effort: a failed lookup degrades to an empty
				// substitution rather than blocking the message.
				s.logger.Warn("source name lookup failed",
					zap.Error(err),
					zap.String("deviceKind", string(source.Device)),
					zap.String("rater", source.Rater),
				)
				return
			}
			name = resolved
		})
		return name, nil
	}
}

func (s *Service) publishAudit(ctx context.Context, event events.DomainEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("audit event publish failed",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
		)
	}
}

func filterGroups(matched []tracking.MatchedSubscription, onlyIDs []string) []tracking.MatchedSubscription {
	if len(onlyIDs) == 0 {
		return matched
	}
	allowed := make(map[string]struct{}, len(onlyIDs))
	for _, id := range onlyIDs {
		allowed[id] = struct{}{}
	}
	filtered := matched[:0:0]
	for _, m := range matched {
		if _, ok := allowed[m.Group.ID]; ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
