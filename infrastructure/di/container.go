//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"behaviortrack/application/notify"
	"behaviortrack/application/ports"
	"behaviortrack/application/resolution"
	"behaviortrack/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *zap.Logger
	NotifyService    *notify.Service
	ResolutionEngine *resolution.Engine
	Metrics          ports.MetricsCollector
}

// InitializeContainer creates a fully wired container. Kept in lockstep
// with the provider set declared in wire.go.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg)
	sqsClient := ProvideSQSClient(awsCfg)
	snsClient := ProvideSNSClient(awsCfg)
	sesClient := ProvideSESClient(awsCfg)
	s3Client := ProvideS3Client(awsCfg)
	eventBridgeClient := ProvideEventBridgeClient(awsCfg)
	cloudWatchClient := ProvideCloudWatchClient(awsCfg)

	students := ProvideStudentReader(dynamoClient, cfg, logger)
	subs := ProvideSubscriptionReader(dynamoClient, cfg, logger)
	reports := ProvideReportReader(dynamoClient, cfg, logger)
	team := ProvideTeamReader(dynamoClient, cfg, logger)
	userState := ProvideUserStateRepository(dynamoClient, cfg, logger)
	endpoints := ProvidePushEndpointReader(dynamoClient, cfg, logger)
	resolvers := ProvideSourceNameResolvers(dynamoClient, cfg)

	scheduler := ProvideScheduler(sqsClient, cfg, logger)
	bus := ProvideEventBus(eventBridgeClient, cfg, logger)
	metrics := ProvideMetrics(cloudWatchClient, cfg, logger)

	push := ProvidePushSender(snsClient, logger)
	sms := ProvideSMSSender(snsClient, logger)
	email := ProvideEmailSender(sesClient, cfg, logger)
	templates := ProvideTemplateFetcher(s3Client, cfg, logger)

	dispatcher := ProvideDispatcher(endpoints, push, email, sms, templates, userState, metrics, cfg, logger)
	notifyService := ProvideNotifyService(students, subs, dispatcher, scheduler, resolvers, bus, metrics, cfg, logger)
	engine := ProvideResolutionEngine(subs, reports, team, userState, notifyService, bus, cfg, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		NotifyService:    notifyService,
		ResolutionEngine: engine,
		Metrics:          metrics,
	}, nil
}
