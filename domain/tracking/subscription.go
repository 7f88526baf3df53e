package tracking

// Channel is a message delivery channel with its own template slot.
type Channel string

const (
	ChannelApp   Channel = "app"
	ChannelEmail Channel = "email"
	ChannelText  Channel = "text"
)

// Channels lists every template-driven channel in dispatch order.
var Channels = []Channel{ChannelApp, ChannelEmail, ChannelText}

// MessageTemplates holds the per-channel message templates of a
// subscription group. A channel without a custom template falls back to
// Default; if both are empty the channel produces no message.
type MessageTemplates struct {
	Default string `json:"default"`
	App     string `json:"app,omitempty"`
	Email   string `json:"email,omitempty"`
	Text    string `json:"text,omitempty"`
}

// ForChannel returns the effective template for a channel.
func (t MessageTemplates) ForChannel(ch Channel) string {
	switch ch {
	case ChannelApp:
		if t.App != "" {
			return t.App
		}
	case ChannelEmail:
		if t.Email != "" {
			return t.Email
		}
	case ChannelText:
		if t.Text != "" {
			return t.Text
		}
	}
	return t.Default
}

// SubscriptionGroup is a named rule binding trigger behaviors to acceptable
// response behaviors, recipients and message templates. ID is the stable
// correlation key across the notify and resolution passes; Name is display
// only and may be renamed without breaking in-flight escalations.
type SubscriptionGroup struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	BehaviorIDs         []string         `json:"behaviorIds"`
	ResponseIDs         []string         `json:"responseIds,omitempty"`
	NotifyUntilResponse bool             `json:"notifyUntilResponse"`
	Emails              []string         `json:"emails,omitempty"`
	Mobiles             []string         `json:"mobiles,omitempty"`
	UserIDs             []string         `json:"userIds,omitempty"`
	DeviceIDs           []string         `json:"deviceIds,omitempty"`
	Templates           MessageTemplates `json:"messageTemplates"`
}

// Matches reports whether the group subscribes to the behavior.
func (g *SubscriptionGroup) Matches(behaviorID string) bool {
	for _, id := range g.BehaviorIDs {
		if id == behaviorID {
			return true
		}
	}
	return false
}

// IsResponse reports whether the behavior counts as a response for this
// group.
func (g *SubscriptionGroup) IsResponse(behaviorID string) bool {
	for _, id := range g.ResponseIDs {
		if id == behaviorID {
			return true
		}
	}
	return false
}

// EscalationEligible reports whether the group is configured to keep
// alerting until a qualifying response event is observed.
func (g *SubscriptionGroup) EscalationEligible() bool {
	return len(g.ResponseIDs) > 0 && g.NotifyUntilResponse
}

// MatchedSubscription is a subscription group selected for an event,
// tagged with its escalation eligibility. The tag is computed at match
// time, before any dispatch.
type MatchedSubscription struct {
	Group              SubscriptionGroup
	EscalationEligible bool
}

// MatchSubscriptions selects the groups whose trigger behaviors contain the
// event's behavior. Empty input means no subscriptions matched, not an
// error.
func MatchSubscriptions(ev BehaviorEvent, groups []SubscriptionGroup) []MatchedSubscription {
	var matched []MatchedSubscription
	for _, g := range groups {
		if !g.Matches(ev.BehaviorID) {
			continue
		}
		matched = append(matched, MatchedSubscription{
			Group:              g,
			EscalationEligible: g.EscalationEligible(),
		})
	}
	return matched
}
