package sns

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// SMSSender implements ports.SMSSender with direct-to-number SNS publishes.
type SMSSender struct {
	client snsClient
	logger *zap.Logger
}

// NewSMSSender creates a new SMSSender
func NewSMSSender(client *sns.Client, logger *zap.Logger) *SMSSender {
	return &SMSSender{client: client, logger: logger}
}

// SendSMS publishes the body to every number. Per-number failures are
// joined into one error so the caller sees a single best-effort outcome.
func (s *SMSSender) SendSMS(ctx context.Context, numbers []string, body string) error {
	var errs []error
	for _, number := range numbers {
		_, err := s.client.Publish(ctx, &sns.PublishInput{
			PhoneNumber: aws.String(number),
			Message:     aws.String(body),
		})
		if err != nil {
			s.logger.Warn("sms publish failed",
				zap.Error(err),
				zap.String("number", number),
			)
			errs = append(errs, fmt.Errorf("send to %s: %w", number, err))
		}
	}
	return errors.Join(errs...)
}
