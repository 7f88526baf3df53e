// Package ses delivers HTML email through AWS SES. Email is not
// best-effort: failures propagate to the dispatcher's email branch.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailSender implements ports.EmailSender on SES.
type EmailSender struct {
	client sesClient
	sender string
	logger *zap.Logger
}

// NewEmailSender creates a new EmailSender
func NewEmailSender(client *sesv2.Client, sender string, logger *zap.Logger) *EmailSender {
	return &EmailSender{client: client, sender: sender, logger: logger}
}

// SendEmail delivers one HTML email to all addresses.
func (s *EmailSender) SendEmail(ctx context.Context, addresses []string, subject, htmlBody string) error {
	if len(addresses) == 0 {
		return nil
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination:      &sestypes.Destination{ToAddresses: addresses},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %d recipients: %w", len(addresses), err)
	}

	s.logger.Info("email sent",
		zap.Int("recipients", len(addresses)),
		zap.String("subject", subject),
	)
	return nil
}
