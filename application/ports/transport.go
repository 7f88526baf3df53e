package ports

import "context"

// Push platforms as stored on the device's push endpoint record.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// PushEndpoint is a registered mobile push target.
type PushEndpoint struct {
	Platform    string
	EndpointRef string
}

// PushEndpointReader looks up the push endpoint registered for a device.
// A nil endpoint with a nil error means no endpoint is on file; the device
// is skipped silently.
type PushEndpointReader interface {
	GetPushEndpoint(ctx context.Context, deviceID string) (*PushEndpoint, error)
}

// PushSender delivers a platform payload to a push endpoint. Best-effort:
// callers log failures and move on.
type PushSender interface {
	SendPush(ctx context.Context, endpointRef string, payload []byte) error
}

// EmailSender delivers an HTML email. Failures must surface to the caller;
// email is not best-effort.
type EmailSender interface {
	SendEmail(ctx context.Context, addresses []string, subject, htmlBody string) error
}

// SMSSender delivers a text message to each number.
type SMSSender interface {
	SendSMS(ctx context.Context, numbers []string, body string) error
}

// TemplateFetcher loads a fallback HTML template from the template store.
type TemplateFetcher interface {
	FetchTemplate(ctx context.Context, path string) (string, error)
}

// SourceNameResolver resolves the display name of whoever recorded an
// event. One implementation exists per device kind (app device name,
// physical device name, web user display name).
type SourceNameResolver interface {
	ResolveSourceDisplayName(ctx context.Context, raterID string) (string, error)
}
