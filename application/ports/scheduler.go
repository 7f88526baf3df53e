package ports

import (
	"context"
	"time"

	"behaviortrack/domain/events"
	"behaviortrack/domain/tracking"
)

// EscalationScheduler hands an escalation state to the durable-timer
// collaborator for re-invocation after at least the given delay.
// At-least-once delivery is acceptable; the resolution pass is idempotent.
type EscalationScheduler interface {
	ScheduleDelayedInvocation(ctx context.Context, state tracking.EscalationState, delay time.Duration) error
}

// EventBus publishes audit events to the reporting pipeline.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Dispatch outcomes reported to the metrics collector.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// MetricsCollector counts per-channel dispatch outcomes. Implementations
// are best-effort and must never block dispatch.
type MetricsCollector interface {
	CountDispatch(channel, outcome string)
	Flush(ctx context.Context)
}

// NotifyOptions tunes a notify pass.
type NotifyOptions struct {
	// SkipRecord suppresses the in-app "last behavior notification"
	// bookkeeping. Set on resolution-driven re-notifications.
	SkipRecord bool
	// OnlyGroupIDs restricts the pass to the named subscription groups.
	// Empty means all matching groups.
	OnlyGroupIDs []string
}

// NotifyResult summarizes a notify pass.
type NotifyResult struct {
	Matched   int
	Escalated bool
}

// Notifier is the notify-pass capability. The resolution engine receives
// one by constructor injection so re-notification is an explicit
// dependency, not a mutable module-level hook.
type Notifier interface {
	Notify(ctx context.Context, ev tracking.BehaviorEvent, opts NotifyOptions) (*NotifyResult, error)
}
