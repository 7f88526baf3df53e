package tracking

// StartState determines whether a duration behavior occurrence opens or
// closes its start/stop pair. It returns nil for non-duration behaviors.
// For duration behaviors the relevant parity field is the day parity when
// the behavior is flagged as a daytime behavior, the week parity otherwise;
// parity 0 means the occurrence starts the pair.
//
// The value is advisory text-shaping input for message composition and
// never gates whether a message is sent.
func StartState(def BehaviorDef, ev BehaviorEvent) *bool {
	if !def.IsDuration {
		return nil
	}
	parity := ev.WeekParity
	if def.Daytime {
		parity = ev.DayParity
	}
	started := parity == 0
	return &started
}

// IsStopOccurrence reports whether the occurrence closes an already-open
// duration pair. Used to suppress bookkeeping noise for resolved durations.
func IsStopOccurrence(def BehaviorDef, ev BehaviorEvent) bool {
	started := StartState(def, ev)
	return started != nil && !*started
}
