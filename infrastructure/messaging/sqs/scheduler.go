// Package sqs schedules the deferred resolution pass on an SQS delay
// queue. The queue's consumer is the resolve Lambda; DelaySeconds provides
// the durable timer.
package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"behaviortrack/domain/tracking"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxDelay is the SQS DelaySeconds ceiling.
const maxDelay = 15 * time.Minute

// sqsClient is the slice of the SQS API the scheduler needs. Narrowed for
// test injection.
type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// DelayScheduler implements ports.EscalationScheduler on an SQS delay
// queue.
type DelayScheduler struct {
	client   sqsClient
	queueURL string
	logger   *zap.Logger
}

// NewDelayScheduler creates a new DelayScheduler
func NewDelayScheduler(client *sqs.Client, queueURL string, logger *zap.Logger) *DelayScheduler {
	return &DelayScheduler{client: client, queueURL: queueURL, logger: logger}
}

// newDelaySchedulerWithClient injects a fake client for tests.
func newDelaySchedulerWithClient(client sqsClient, queueURL string, logger *zap.Logger) *DelayScheduler {
	return &DelayScheduler{client: client, queueURL: queueURL, logger: logger}
}

// ScheduleDelayedInvocation enqueues the escalation state with the given
// delay, capped at the SQS maximum. At-least-once delivery is fine; the
// resolution pass is idempotent.
func (s *DelayScheduler) ScheduleDelayedInvocation(ctx context.Context, state tracking.EscalationState, delay time.Duration) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal escalation state: %w", err)
	}

	if delay > maxDelay {
		s.logger.Warn("requested delay exceeds SQS maximum, capping",
			zap.Duration("requested", delay),
			zap.Duration("capped", maxDelay),
		)
		delay = maxDelay
	}
	if delay < 0 {
		delay = 0
	}

	scheduleID := uuid.NewString()
	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.queueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"scheduleId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(scheduleID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue escalation state: %w", err)
	}

	s.logger.Info("scheduled resolution pass",
		zap.String("scheduleId", scheduleID),
		zap.String("studentId", state.StudentID),
		zap.String("behaviorId", state.BehaviorID),
		zap.Duration("delay", delay),
	)
	return nil
}
