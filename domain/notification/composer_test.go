package notification

import (
	"context"
	"errors"
	"testing"

	"behaviortrack/domain/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composerContext() Context {
	return Context{
		Student: &tracking.Student{
			ID:        "student-1",
			FirstName: "Alex",
			LastName:  "Rivera",
			Nickname:  "Al",
		},
		BehaviorName: "Out of seat",
	}
}

func TestCompose_Substitution(t *testing.T) {
	templates := tracking.MessageTemplates{
		Default: "{FirstName} {LastName} ({Nickname}): {Behavior}",
	}

	messages, err := Compose(context.Background(), templates, composerContext(), nil)

	require.NoError(t, err)
	require.Len(t, messages, 3)
	for _, ch := range tracking.Channels {
		assert.Equal(t, "Alex Rivera (Al): Out of seat", messages[ch])
	}
}

func TestCompose_CaseInsensitivePlaceholders(t *testing.T) {
	templates := tracking.MessageTemplates{
		Default: "{FIRSTNAME} did {behavior}",
	}

	messages, err := Compose(context.Background(), templates, composerContext(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Alex did Out of seat", messages[tracking.ChannelApp])
}

func TestCompose_ChannelWithoutTemplateSkipped(t *testing.T) {
	templates := tracking.MessageTemplates{
		Text: "text only: {Behavior}",
	}

	messages, err := Compose(context.Background(), templates, composerContext(), nil)

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "text only: Out of seat", messages[tracking.ChannelText])
}

func TestCompose_NoTemplatesAtAll(t *testing.T) {
	messages, err := Compose(context.Background(), tracking.MessageTemplates{}, composerContext(), nil)

	require.NoError(t, err)
	assert.Nil(t, messages)
}

func TestCompose_LazySourceResolution(t *testing.T) {
	calls := 0
	resolve := func(ctx context.Context) (string, error) {
		calls++
		return "Ms. Chen", nil
	}

	// No template references {WhoTracked}: the resolver must not run.
	templates := tracking.MessageTemplates{Default: "{Behavior} for {FirstName}"}
	_, err := Compose(context.Background(), templates, composerContext(), resolve)
	require.NoError(t, err)
	assert.Zero(t, calls)

	// Referenced in two channels: the resolver runs exactly once.
	templates = tracking.MessageTemplates{
		Default: "tracked by {WhoTracked}",
		Text:    "{whotracked} saw {Behavior}",
	}
	messages, err := Compose(context.Background(), templates, composerContext(), resolve)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "tracked by Ms. Chen", messages[tracking.ChannelApp])
	assert.Equal(t, "Ms. Chen saw Out of seat", messages[tracking.ChannelText])
}

func TestCompose_SourceResolutionError(t *testing.T) {
	resolve := func(ctx context.Context) (string, error) {
		return "", errors.New("lookup failed")
	}
	templates := tracking.MessageTemplates{Default: "by {WhoTracked}"}

	_, err := Compose(context.Background(), templates, composerContext(), resolve)

	assert.Error(t, err)
}
