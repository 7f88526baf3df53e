// Package observability emits per-channel dispatch metrics to CloudWatch.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

type cloudwatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics buffers dispatch counts during a pass and flushes them in one
// PutMetricData call at the end. Best-effort: a failed flush is logged and
// forgotten.
type Metrics struct {
	namespace string
	client    cloudwatchClient
	logger    *zap.Logger

	mu     sync.Mutex
	counts map[[2]string]float64
}

// NewMetrics creates a CloudWatch-backed metrics collector.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
		counts:    make(map[[2]string]float64),
	}
}

// CountDispatch records one dispatch outcome for a channel.
func (m *Metrics) CountDispatch(channel, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[[2]string{channel, outcome}]++
}

// Flush sends the buffered counts and resets the buffer.
func (m *Metrics) Flush(ctx context.Context) {
	m.mu.Lock()
	counts := m.counts
	m.counts = make(map[[2]string]float64)
	m.mu.Unlock()

	if len(counts) == 0 {
		return
	}

	now := time.Now()
	data := make([]cwtypes.MetricDatum, 0, len(counts))
	for key, value := range counts {
		data = append(data, cwtypes.MetricDatum{
			MetricName: aws.String("NotificationDispatch"),
			Value:      aws.Float64(value),
			Unit:       cwtypes.StandardUnitCount,
			Timestamp:  aws.Time(now),
			Dimensions: []cwtypes.Dimension{
				{Name: aws.String("Channel"), Value: aws.String(key[0])},
				{Name: aws.String("Outcome"), Value: aws.String(key[1])},
			},
		})
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil {
		m.logger.Warn("metric flush failed", zap.Error(err))
	}
}

// NoopMetrics discards everything. Used in tests and when metrics are
// disabled.
type NoopMetrics struct{}

func (NoopMetrics) CountDispatch(channel, outcome string) {}
func (NoopMetrics) Flush(ctx context.Context)             {}
