// Package notification renders per-channel message text from subscription
// templates and event context.
package notification

import (
	"context"
	"regexp"
	"strings"

	"behaviortrack/domain/tracking"
)

// placeholderPattern matches the supported template placeholders,
// case-insensitively.
var placeholderPattern = regexp.MustCompile(`(?i)\{(firstname|lastname|nickname|whotracked|behavior)\}`)

// SourceNameFunc lazily resolves the display name of whoever recorded the
// event. It requires a network call, so the composer only invokes it when a
// selected template actually references {WhoTracked}, and at most once.
type SourceNameFunc func(ctx context.Context) (string, error)

// Context carries the literal values substituted into templates.
type Context struct {
	Student      *tracking.Student
	BehaviorName string
}

// Compose renders one message per channel that has a non-empty
// template-or-default. Channels without any template are skipped.
// Placeholder substitution is case-insensitive over {FirstName},
// {LastName}, {Nickname}, {WhoTracked} and {Behavior}.
func Compose(ctx context.Context, templates tracking.MessageTemplates, c Context, resolveSource SourceNameFunc) (map[tracking.Channel]string, error) {
	selected := make(map[tracking.Channel]string, len(tracking.Channels))
	needsSource := false
	for _, ch := range tracking.Channels {
		tpl := templates.ForChannel(ch)
		if tpl == "" {
			continue
		}
		selected[ch] = tpl
		if referencesWhoTracked(tpl) {
			needsSource = true
		}
	}
	if len(selected) == 0 {
		return nil, nil
	}

	sourceName := ""
	if needsSource && resolveSource != nil {
		name, err := resolveSource(ctx)
		if err != nil {
			return nil, err
		}
		sourceName = name
	}

	messages := make(map[tracking.Channel]string, len(selected))
	for ch, tpl := range selected {
		messages[ch] = substitute(tpl, c, sourceName)
	}
	return messages, nil
}

func referencesWhoTracked(tpl string) bool {
	for _, m := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
		if strings.EqualFold(m[1], "whotracked") {
			return true
		}
	}
	return false
}

func substitute(tpl string, c Context, sourceName string) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		key := strings.ToLower(strings.Trim(match, "{}"))
		switch key {
		case "firstname":
			return c.Student.FirstName
		case "lastname":
			return c.Student.LastName
		case "nickname":
			return c.Student.Nickname
		case "whotracked":
			return sourceName
		case "behavior":
			return c.BehaviorName
		}
		return match
	})
}
