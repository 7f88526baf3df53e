package di

import (
	"context"
	"fmt"

	"behaviortrack/application/notify"
	"behaviortrack/application/ports"
	"behaviortrack/application/resolution"
	"behaviortrack/domain/tracking"
	"behaviortrack/infrastructure/config"
	"behaviortrack/infrastructure/messaging/eventbridge"
	sqsmessaging "behaviortrack/infrastructure/messaging/sqs"
	"behaviortrack/infrastructure/observability"
	dynamodbpersistence "behaviortrack/infrastructure/persistence/dynamodb"
	"behaviortrack/infrastructure/sourcename"
	s3transport "behaviortrack/infrastructure/transport/s3"
	"behaviortrack/infrastructure/transport/ses"
	snstransport "behaviortrack/infrastructure/transport/sns"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideSESClient creates a SESv2 client
func ProvideSESClient(awsCfg aws.Config) *awssesv2.Client {
	return awssesv2.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideStudentReader creates the student repository
func ProvideStudentReader(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.StudentReader {
	return dynamodbpersistence.NewStudentRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideSubscriptionReader creates the subscription repository
func ProvideSubscriptionReader(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SubscriptionReader {
	return dynamodbpersistence.NewSubscriptionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideReportReader creates the day-report repository
func ProvideReportReader(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReportReader {
	return dynamodbpersistence.NewReportRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTeamReader creates the team repository
func ProvideTeamReader(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TeamReader {
	return dynamodbpersistence.NewTeamRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideUserStateRepository creates the per-user alert state repository
func ProvideUserStateRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) *dynamodbpersistence.UserStateRepository {
	return dynamodbpersistence.NewUserStateRepository(client, cfg.DynamoDBTable, logger)
}

// ProvidePushEndpointReader creates the device push endpoint repository
func ProvidePushEndpointReader(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PushEndpointReader {
	return dynamodbpersistence.NewDeviceRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideSourceNameResolvers creates the per-device-kind resolver registry
func ProvideSourceNameResolvers(client *awsdynamodb.Client, cfg *config.Config) map[tracking.DeviceKind]ports.SourceNameResolver {
	return sourcename.Registry(client, cfg.DynamoDBTable)
}

// ProvideScheduler creates the SQS delay-queue scheduler
func ProvideScheduler(client *awssqs.Client, cfg *config.Config, logger *zap.Logger) ports.EscalationScheduler {
	return sqsmessaging.NewDelayScheduler(client, cfg.EscalationQueueURL, logger)
}

// ProvideEventBus creates the EventBridge audit publisher
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.MetricsCollector {
	if !cfg.EnableMetrics {
		return observability.NoopMetrics{}
	}
	namespace := fmt.Sprintf("BehaviorTrack/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvidePushSender creates the SNS push sender
func ProvidePushSender(client *awssns.Client, logger *zap.Logger) ports.PushSender {
	return snstransport.NewPushSender(client, logger)
}

// ProvideSMSSender creates the SNS SMS sender
func ProvideSMSSender(client *awssns.Client, logger *zap.Logger) ports.SMSSender {
	return snstransport.NewSMSSender(client, logger)
}

// ProvideEmailSender creates the SES email sender
func ProvideEmailSender(client *awssesv2.Client, cfg *config.Config, logger *zap.Logger) ports.EmailSender {
	return ses.NewEmailSender(client, cfg.EmailSender, logger)
}

// ProvideTemplateFetcher creates the S3 template store
func ProvideTemplateFetcher(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.TemplateFetcher {
	return s3transport.NewTemplateStore(client, cfg.TemplateBucket, logger)
}

// ProvideDispatcher creates the channel dispatcher
func ProvideDispatcher(
	endpoints ports.PushEndpointReader,
	push ports.PushSender,
	email ports.EmailSender,
	sms ports.SMSSender,
	templates ports.TemplateFetcher,
	userState *dynamodbpersistence.UserStateRepository,
	metrics ports.MetricsCollector,
	cfg *config.Config,
	logger *zap.Logger,
) *notify.Dispatcher {
	return notify.NewDispatcher(
		endpoints,
		push,
		email,
		sms,
		templates,
		userState,
		metrics,
		cfg.FallbackTemplateKey,
		logger,
	)
}

// ProvideNotifyService creates the notify-pass service
func ProvideNotifyService(
	students ports.StudentReader,
	subs ports.SubscriptionReader,
	dispatcher *notify.Dispatcher,
	scheduler ports.EscalationScheduler,
	resolvers map[tracking.DeviceKind]ports.SourceNameResolver,
	bus ports.EventBus,
	metrics ports.MetricsCollector,
	cfg *config.Config,
	logger *zap.Logger,
) *notify.Service {
	return notify.NewService(
		students,
		subs,
		dispatcher,
		scheduler,
		resolvers,
		bus,
		metrics,
		cfg.ResolutionDelay,
		logger,
	)
}

// ProvideResolutionEngine creates the response resolution engine. The
// notify service doubles as its injected Notifier capability.
func ProvideResolutionEngine(
	subs ports.SubscriptionReader,
	reports ports.ReportReader,
	team ports.TeamReader,
	userState *dynamodbpersistence.UserStateRepository,
	notifier *notify.Service,
	bus ports.EventBus,
	cfg *config.Config,
	logger *zap.Logger,
) *resolution.Engine {
	return resolution.NewEngine(
		subs,
		reports,
		team,
		userState,
		notifier,
		bus,
		logger,
		resolution.WithLocation(cfg.Location()),
		resolution.WithWindow(cfg.EscalationWindow),
	)
}
