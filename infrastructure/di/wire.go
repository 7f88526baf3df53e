//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"behaviortrack/application/notify"
	"behaviortrack/application/ports"
	"behaviortrack/application/resolution"
	"behaviortrack/infrastructure/config"

	"github.com/google/wire"
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

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideSQSClient,
	ProvideSNSClient,
	ProvideSESClient,
	ProvideS3Client,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideStudentReader,
	ProvideSubscriptionReader,
	ProvideReportReader,
	ProvideTeamReader,
	ProvideUserStateRepository,
	ProvidePushEndpointReader,
	ProvideSourceNameResolvers,
	ProvideScheduler,
	ProvideEventBus,
	ProvideMetrics,
	ProvidePushSender,
	ProvideSMSSender,
	ProvideEmailSender,
	ProvideTemplateFetcher,
	ProvideDispatcher,
	ProvideNotifyService,
	ProvideResolutionEngine,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
