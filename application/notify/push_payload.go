package notify

import (
	"encoding/json"
	"fmt"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"
)

const pushTitle = "Behavior Tracker"

// apnsPayload is the iOS push body shape.
type apnsPayload struct {
	APS apsBlock `json:"aps"`
}

type apsBlock struct {
	Alert apsAlert `json:"alert"`
	Sound string   `json:"sound"`
}

type apsAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// fcmPayload is the Android push body shape.
type fcmPayload struct {
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// buildPushPayload renders the SNS message-structure envelope for the
// device's platform. Responses get a "<Behavior> for <FirstName>" body;
// behaviors a generic one; both can come from the subscription's app
// template instead. Duration behaviors get a started/stopped suffix.
func buildPushPayload(platform string, in DispatchInput) ([]byte, error) {
	body := pushBody(in)

	var platformJSON []byte
	var platformKey string
	var err error

	switch platform {
	case ports.PlatformIOS:
		platformKey = "APNS"
		platformJSON, err = json.Marshal(apnsPayload{
			APS: apsBlock{
				Alert: apsAlert{Title: pushTitle, Body: body},
				Sound: "default",
			},
		})
	case ports.PlatformAndroid:
		platformKey = "GCM"
		platformJSON, err = json.Marshal(fcmPayload{
			Notification: fcmNotification{Title: pushTitle, Body: body},
			Data: map[string]string{
				"studentId":  in.Event.StudentID,
				"behaviorId": in.Event.BehaviorID,
			},
		})
	default:
		return nil, fmt.Errorf("unknown push platform %q", platform)
	}
	if err != nil {
		return nil, err
	}

	envelope := map[string]string{
		"default":   body,
		platformKey: string(platformJSON),
	}
	return json.Marshal(envelope)
}

func pushBody(in DispatchInput) string {
	body := in.Messages[tracking.ChannelApp]
	if body == "" {
		if in.IsResponse {
			body = fmt.Sprintf("%s for %s", in.BehaviorName, in.Student.FirstName)
		} else {
			body = fmt.Sprintf("%s recorded for %s", in.BehaviorName, in.Student.FirstName)
		}
	}
	if in.Started != nil {
		if *in.Started {
			body += " has started"
		} else {
			body += " has stopped"
		}
	}
	return body
}
