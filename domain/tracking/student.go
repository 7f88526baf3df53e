package tracking

import "strings"

// AccessFull grants a team member visibility into every behavior of a
// student; any other access level restricts visibility to the allow-list.
const AccessFull = "full"

// BehaviorDef is a behavior or response definition from a student's
// tracking configuration. Daytime selects which parity field (day vs week)
// drives the start/stop evaluation for duration behaviors.
type BehaviorDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsDuration bool   `json:"isDuration"`
	Daytime    bool   `json:"daytime"`
}

// Student is the notification-relevant slice of a student's configuration.
type Student struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Nickname  string        `json:"nickname"`
	Behaviors []BehaviorDef `json:"behaviors"`
	Responses []BehaviorDef `json:"responses"`
}

// FullName renders the student's display name.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Definition looks up a behavior or response definition by ID. The second
// return value reports whether it was found.
func (s *Student) Definition(behaviorID string) (BehaviorDef, bool) {
	for _, b := range s.Behaviors {
		if b.ID == behaviorID {
			return b, true
		}
	}
	for _, r := range s.Responses {
		if r.ID == behaviorID {
			return r, true
		}
	}
	return BehaviorDef{}, false
}

// IsResponse reports whether the ID names a response definition.
func (s *Student) IsResponse(behaviorID string) bool {
	for _, r := range s.Responses {
		if r.ID == behaviorID {
			return true
		}
	}
	return false
}

// TeamMember is a user with access to a student. An empty AllowedBehaviorIDs
// with a non-full access level means the member sees no behaviors.
type TeamMember struct {
	UserID             string   `json:"userId"`
	AccessLevel        string   `json:"accessLevel"`
	AllowedBehaviorIDs []string `json:"allowedBehaviorIds,omitempty"`
}

// CanSee reports whether the member's access level covers the behavior,
// either by the unrestricted level or by explicit allow-list.
func (m TeamMember) CanSee(behaviorID string) bool {
	if m.AccessLevel == AccessFull {
		return true
	}
	for _, id := range m.AllowedBehaviorIDs {
		if id == behaviorID {
			return true
		}
	}
	return false
}
