package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"behaviortrack/domain/tracking"
	"behaviortrack/infrastructure/config"
	"behaviortrack/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Global variables for Lambda lifecycle management
var (
	container *di.Container
	validate  *validator.Validate
)

// init runs during cold start
func init() {
	start := time.Now()
	log.Println("Lambda cold start initiated")

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	validate = validator.New()

	log.Printf("Lambda cold start completed in %v", time.Since(start))
}

// Handler consumes escalation states from the delay queue. Per-record
// failures are logged and swallowed: the design is self-healing, so a
// missed resolution is re-derived by a later event rather than retried
// through the queue's dead-letter path.
func Handler(ctx context.Context, event events.SQSEvent) error {
	logger := container.Logger

	for _, record := range event.Records {
		var state tracking.EscalationState
		if err := json.Unmarshal([]byte(record.Body), &state); err != nil {
			logger.Error("unparseable escalation state",
				zap.Error(err),
				zap.String("messageId", record.MessageId),
			)
			continue
		}
		if err := validate.Struct(state); err != nil {
			logger.Error("invalid escalation state",
				zap.Error(err),
				zap.String("messageId", record.MessageId),
				zap.String("studentId", state.StudentID),
			)
			continue
		}

		result, err := container.ResolutionEngine.Resolve(ctx, state)
		if err != nil {
			logger.Error("resolution pass failed",
				zap.Error(err),
				zap.String("messageId", record.MessageId),
				zap.String("studentId", state.StudentID),
				zap.String("behaviorId", state.BehaviorID),
			)
			continue
		}

		logger.Info("resolution pass completed",
			zap.String("studentId", state.StudentID),
			zap.String("behaviorId", state.BehaviorID),
			zap.Bool("hasResponse", result.HasResponse),
			zap.Bool("hasTimeout", result.HasTimeout),
			zap.Int("renotified", result.Renotified),
		)
	}

	return nil
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(Handler)
}
