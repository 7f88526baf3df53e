// Package sns delivers mobile push notifications and SMS through AWS SNS.
package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// snsClient is the slice of the SNS API the senders need.
type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// PushSender implements ports.PushSender against SNS platform endpoints.
// Delivery is best-effort; callers swallow the returned error after
// logging.
type PushSender struct {
	client snsClient
	logger *zap.Logger
}

// NewPushSender creates a new PushSender
func NewPushSender(client *sns.Client, logger *zap.Logger) *PushSender {
	return &PushSender{client: client, logger: logger}
}

// SendPush publishes a message-structure payload to a platform endpoint.
func (s *PushSender) SendPush(ctx context.Context, endpointRef string, payload []byte) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        aws.String(endpointRef),
		Message:          aws.String(string(payload)),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return fmt.Errorf("failed to publish push to %s: %w", endpointRef, err)
	}
	return nil
}
