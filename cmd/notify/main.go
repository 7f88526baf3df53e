package main

import (
	"context"
	"log"
	"time"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"
	"behaviortrack/infrastructure/config"
	"behaviortrack/infrastructure/di"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Global variables for Lambda lifecycle management
var (
	container *di.Container
	validate  *validator.Validate
	coldStart = true
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

// NotifyRequest is the behavior event envelope delivered by the upstream
// tracking pipeline.
type NotifyRequest struct {
	StudentID  string               `json:"studentId" validate:"required"`
	BehaviorID string               `json:"behaviorId" validate:"required"`
	EventTime  time.Time            `json:"eventTime" validate:"required"`
	Source     tracking.EventSource `json:"source"`
	DayParity  int                  `json:"dayParity" validate:"min=0,max=1"`
	WeekParity int                  `json:"weekParity" validate:"min=0,max=1"`
	IsDuration bool                 `json:"isDuration"`
}

// NotifyResponse reports the notify pass outcome back to the caller.
type NotifyResponse struct {
	Matched   int  `json:"matched"`
	Escalated bool `json:"escalated"`
}

// Handler is the Lambda function handler. Channel failures never surface
// here: self-healing semantics mean the upstream pipeline must not retry or
// dead-letter on our account.
func Handler(ctx context.Context, req NotifyRequest) (NotifyResponse, error) {
	logger := container.Logger
	if coldStart {
		logger.Info("handling first invocation after cold start")
		coldStart = false
	}

	if err := validate.Struct(req); err != nil {
		logger.Error("invalid notify request", zap.Error(err))
		return NotifyResponse{}, err
	}

	event := tracking.BehaviorEvent{
		StudentID:  req.StudentID,
		BehaviorID: req.BehaviorID,
		EventTime:  req.EventTime,
		Source:     req.Source,
		DayParity:  req.DayParity,
		WeekParity: req.WeekParity,
		IsDuration: req.IsDuration,
	}

	result, err := container.NotifyService.Notify(ctx, event, ports.NotifyOptions{})
	if err != nil {
		logger.Error("notify pass failed",
			zap.Error(err),
			zap.String("studentId", req.StudentID),
			zap.String("behaviorId", req.BehaviorID),
		)
		return NotifyResponse{}, nil
	}

	logger.Info("notify pass completed",
		zap.String("studentId", req.StudentID),
		zap.String("behaviorId", req.BehaviorID),
		zap.Int("matched", result.Matched),
		zap.Bool("escalated", result.Escalated),
	)
	return NotifyResponse{Matched: result.Matched, Escalated: result.Escalated}, nil
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(Handler)
}
