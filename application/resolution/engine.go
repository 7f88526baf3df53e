// Package resolution implements the deferred re-evaluation of whether a
// behavior event received its awaited response, updating per-user
// outstanding-alert flags and re-notifying subscriptions still unanswered.
package resolution

import (
	"context"
	"sort"
	"strings"
	"time"

	"behaviortrack/application/ports"
	"behaviortrack/domain/events"
	"behaviortrack/domain/tracking"
	apperrors "behaviortrack/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine is the response resolution engine. It is stateless across
// invocations; all correlation arrives in the EscalationState payload.
type Engine struct {
	subs     ports.SubscriptionReader
	reports  ports.ReportReader
	team     ports.TeamReader
	flags    ports.AlertFlagWriter
	notifier ports.Notifier
	bus      ports.EventBus
	logger   *zap.Logger

	loc    *time.Location
	window time.Duration
	clock  func() time.Time
}

// Option overrides an Engine default.
type Option func(*Engine)

// WithClock injects the time source. Tests pin it to exercise the timeout
// boundary.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithWindow overrides the live escalation window.
func WithWindow(window time.Duration) Option {
	return func(e *Engine) { e.window = window }
}

// WithLocation sets the reference time zone for calendar-day alignment.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// NewEngine wires a resolution engine. The Notifier capability is injected
// here so resolution-driven re-notification is an explicit dependency.
func NewEngine(
	subs ports.SubscriptionReader,
	reports ports.ReportReader,
	team ports.TeamReader,
	flags ports.AlertFlagWriter,
	notifier ports.Notifier,
	bus ports.EventBus,
	logger *zap.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		subs:     subs,
		reports:  reports,
		team:     team,
		flags:    flags,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
		loc:      time.UTC,
		window:   tracking.EscalationWindow,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the resolution outcome returned to the caller for workflow
// branching and testability.
type Result struct {
	State         tracking.EscalationState
	HasResponse   bool
	HasTimeout    bool
	NeedsResponse bool
	Matched       int
	Renotified    int
}

// subscriptionStatus pairs an escalation-eligible group with whether a
// qualifying response arrived after the trigger.
type subscriptionStatus struct {
	group    tracking.SubscriptionGroup
	resolved bool
}

// Resolve runs one resolution pass. Re-invoking it with the same state and
// unchanged underlying data yields the same outcome.
func (e *Engine) Resolve(ctx context.Context, state tracking.EscalationState) (*Result, error) {
	ev := state.Event()

	dayStart, dayEnd := dayBounds(ev.EventTime, e.loc)
	report, err := e.reports.GetDayReport(ctx, ev.StudentID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load day report", err)
	}
	groups, err := e.subs.GetSubscriptions(ctx, ev.StudentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load subscriptions", err)
	}

	statuses := e.classify(ev, groups, report)
	result := &Result{State: state, Matched: len(statuses)}
	if len(statuses) == 0 {
		// Nothing awaited a response; nothing to resolve.
		result.HasResponse = true
		return result, nil
	}

	needAlert := buildAlertMap(statuses)

	hasResponse := true
	for _, st := range statuses {
		if !st.resolved {
			hasResponse = false
			break
		}
	}

	hasTimeout := false
	if !state.SkipTimeout {
		hasTimeout = e.clock().Sub(ev.EventTime) >= e.window
	}

	// Override rules, first match wins.
	needsResponse := false
	switch {
	case triggerDeleted(ev, report):
		// The triggering occurrence is gone; a stale scheduled resolution
		// degrades gracefully here.
		hasResponse = true
		clearAlerts(needAlert)
	case ev.IsDuration && sameDayCount(ev, report)%2 == 0:
		// The start/stop pair has closed; no response required.
		hasResponse = true
		clearAlerts(needAlert)
	default:
		needsResponse = !hasResponse && !hasTimeout
	}

	result.HasResponse = hasResponse
	result.HasTimeout = hasTimeout
	result.NeedsResponse = needsResponse

	if needsResponse {
		result.Renotified = e.renotify(ctx, ev, statuses)
	}

	if err := e.updateFlags(ctx, ev, needAlert); err != nil {
		return nil, err
	}

	e.publishAudit(ctx, events.EscalationResolved{
		StudentID:   ev.StudentID,
		BehaviorID:  ev.BehaviorID,
		HasResponse: hasResponse,
		HasTimeout:  hasTimeout,
		Renotified:  result.Renotified,
		Timestamp:   e.clock().UTC(),
	})

	return result, nil
}

// classify selects the escalation-eligible groups subscribed to the
// trigger behavior and computes, per group, whether the earliest subsequent
// occurrence of a qualifying response exists strictly after the trigger.
func (e *Engine) classify(ev tracking.BehaviorEvent, groups []tracking.SubscriptionGroup, report []tracking.BehaviorOccurrence) []subscriptionStatus {
	var statuses []subscriptionStatus
	for _, m := range tracking.MatchSubscriptions(ev, groups) {
		if !m.EscalationEligible {
			continue
		}
		statuses = append(statuses, subscriptionStatus{
			group:    m.Group,
			resolved: firstResponseAfter(ev, m.Group, report) != nil,
		})
	}
	return statuses
}

// firstResponseAfter finds the earliest non-deleted occurrence of one of
// the group's response behaviors strictly after the trigger timestamp.
func firstResponseAfter(ev tracking.BehaviorEvent, group tracking.SubscriptionGroup, report []tracking.BehaviorOccurrence) *tracking.BehaviorOccurrence {
	var earliest *tracking.BehaviorOccurrence
	for i := range report {
		occ := report[i]
		if occ.Deleted || !occ.Timestamp.After(ev.EventTime) || !group.IsResponse(occ.BehaviorID) {
			continue
		}
		if earliest == nil || occ.Timestamp.Before(earliest.Timestamp) {
			earliest = &report[i]
		}
	}
	return earliest
}

// buildAlertMap computes the per-user "still needs alert" map: every user
// on an unresolved subscription is flagged true; a user only on resolved
// subscriptions is flagged false. The unresolved flag wins when a user
// appears on both.
func buildAlertMap(statuses []subscriptionStatus) map[string]bool {
	needAlert := make(map[string]bool)
	for _, st := range statuses {
		if st.resolved {
			continue
		}
		for _, userID := range st.group.UserIDs {
			needAlert[userID] = true
		}
	}
	for _, st := range statuses {
		if !st.resolved {
			continue
		}
		for _, userID := range st.group.UserIDs {
			if _, ok := needAlert[userID]; !ok {
				needAlert[userID] = false
			}
		}
	}
	return needAlert
}

func clearAlerts(needAlert map[string]bool) {
	for userID := range needAlert {
		needAlert[userID] = false
	}
}

// triggerDeleted reports whether the triggering occurrence has since been
// deleted or removed from the report.
func triggerDeleted(ev tracking.BehaviorEvent, report []tracking.BehaviorOccurrence) bool {
	for _, occ := range report {
		if occ.BehaviorID == ev.BehaviorID && occ.Timestamp.Equal(ev.EventTime) {
			return occ.Deleted
		}
	}
	return true
}

// sameDayCount counts the day's surviving occurrences of the trigger
// behavior itself.
func sameDayCount(ev tracking.BehaviorEvent, report []tracking.BehaviorOccurrence) int {
	count := 0
	for _, occ := range report {
		if occ.BehaviorID == ev.BehaviorID && !occ.Deleted {
			count++
		}
	}
	return count
}

// renotify re-invokes the notify pass for the subscriptions still awaiting
// a response, with bookkeeping suppressed. Notify failures are logged and
// do not abort the resolution pass.
func (e *Engine) renotify(ctx context.Context, ev tracking.BehaviorEvent, statuses []subscriptionStatus) int {
	var groupIDs []string
	for _, st := range statuses {
		if !st.resolved {
			groupIDs = append(groupIDs, st.group.ID)
		}
	}
	if len(groupIDs) == 0 {
		return 0
	}

	res, err := e.notifier.Notify(ctx, ev, ports.NotifyOptions{
		SkipRecord:   true,
		OnlyGroupIDs: groupIDs,
	})
	if err != nil {
		e.logger.Error("re-notification failed",
			zap.Error(err),
			zap.String("studentId", ev.StudentID),
			zap.String("behaviorId", ev.BehaviorID),
			zap.Strings("subscriptionIds", groupIDs),
		)
		return 0
	}
	return res.Matched
}

// updateFlags persists the outstanding-alert flag for each flagged user who
// is currently a team member with sufficient behavior access. Email-style
// identifiers are skipped. Per-user failures are logged and do not abort
// the remaining users.
func (e *Engine) updateFlags(ctx context.Context, ev tracking.BehaviorEvent, needAlert map[string]bool) error {
	if len(needAlert) == 0 {
		return nil
	}

	members, err := e.team.GetTeam(ctx, ev.StudentID)
	if err != nil {
		return apperrors.NewPersistenceError("load team", err)
	}
	byID := make(map[string]tracking.TeamMember, len(members))
	for _, m := range members {
		byID[m.UserID] = m
	}

	userIDs := make([]string, 0, len(needAlert))
	for userID := range needAlert {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	var g errgroup.Group
	for _, userID := range userIDs {
		if strings.Contains(userID, "@") {
			continue
		}
		member, ok := byID[userID]
		if !ok || !member.CanSee(ev.BehaviorID) {
			continue
		}
		outstanding := needAlert[userID]
		uid := userID
		g.Go(func() error {
			if err := e.flags.SetOutstandingAlert(ctx, uid, ev.StudentID, outstanding); err != nil {
				e.logger.Error("failed to update outstanding-alert flag",
					zap.Error(err),
					zap.String("userId", uid),
					zap.String("studentId", ev.StudentID),
					zap.Bool("outstanding", outstanding),
				)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Engine) publishAudit(ctx context.Context, event events.DomainEvent) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, event); err != nil {
		e.logger.Warn("audit event publish failed",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
		)
	}
}
