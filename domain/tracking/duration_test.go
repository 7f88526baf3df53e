package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartState(t *testing.T) {
	tests := []struct {
		name    string
		def     BehaviorDef
		event   BehaviorEvent
		started *bool
	}{
		{
			name:    "non-duration behavior",
			def:     BehaviorDef{ID: "234"},
			event:   BehaviorEvent{DayParity: 0, WeekParity: 0},
			started: nil,
		},
		{
			name:    "daytime duration starting",
			def:     BehaviorDef{ID: "234", IsDuration: true, Daytime: true},
			event:   BehaviorEvent{DayParity: 0, WeekParity: 1},
			started: boolPtr(true),
		},
		{
			name:    "daytime duration stopping",
			def:     BehaviorDef{ID: "234", IsDuration: true, Daytime: true},
			event:   BehaviorEvent{DayParity: 1, WeekParity: 0},
			started: boolPtr(false),
		},
		{
			name:    "weekly duration starting",
			def:     BehaviorDef{ID: "234", IsDuration: true},
			event:   BehaviorEvent{DayParity: 1, WeekParity: 0},
			started: boolPtr(true),
		},
		{
			name:    "weekly duration stopping",
			def:     BehaviorDef{ID: "234", IsDuration: true},
			event:   BehaviorEvent{DayParity: 0, WeekParity: 1},
			started: boolPtr(false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartState(tt.def, tt.event)
			if tt.started == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.started, *got)
		})
	}
}

func TestIsStopOccurrence(t *testing.T) {
	def := BehaviorDef{ID: "234", IsDuration: true, Daytime: true}

	assert.False(t, IsStopOccurrence(def, BehaviorEvent{DayParity: 0}))
	assert.True(t, IsStopOccurrence(def, BehaviorEvent{DayParity: 1}))
	assert.False(t, IsStopOccurrence(BehaviorDef{ID: "234"}, BehaviorEvent{DayParity: 1}))
}

func TestTeamMember_CanSee(t *testing.T) {
	full := TeamMember{UserID: "u1", AccessLevel: AccessFull}
	restricted := TeamMember{UserID: "u2", AccessLevel: "limited", AllowedBehaviorIDs: []string{"234"}}

	assert.True(t, full.CanSee("anything"))
	assert.True(t, restricted.CanSee("234"))
	assert.False(t, restricted.CanSee("456"))
}

func boolPtr(v bool) *bool { return &v }
