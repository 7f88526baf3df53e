package dynamodb

import (
	"context"
	"fmt"
	"time"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ReportRepository implements ports.ReportReader on DynamoDB. Occurrences
// are stored under a timestamp-sortable sort key, so a day window is a
// single key-range query.
type ReportRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ReportReader {
	return &ReportRepository{client: client, tableName: tableName, logger: logger}
}

type occurrenceItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	BehaviorID string `dynamodbav:"BehaviorID"`
	Timestamp  string `dynamodbav:"Timestamp"`
	Deleted    bool   `dynamodbav:"Deleted"`
}

// GetDayReport loads every occurrence in [dayStart, dayEnd).
func (r *ReportRepository) GetDayReport(ctx context.Context, studentID string, dayStart, dayEnd time.Time) ([]tracking.BehaviorOccurrence, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(studentPK(studentID))).
		And(expression.Key("SK").Between(
			expression.Value(eventSKPrefixAt(dayStart)),
			expression.Value(eventSKPrefixAt(dayEnd)),
		))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build day report query: %w", err)
	}

	var occurrences []tracking.BehaviorOccurrence
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query day report for %s: %w", studentID, err)
		}

		var items []occurrenceItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal day report for %s: %w", studentID, err)
		}
		for _, item := range items {
			ts, err := time.Parse(time.RFC3339Nano, item.Timestamp)
			if err != nil {
				r.logger.Warn("skipping occurrence with unparseable timestamp",
					zap.String("studentId", studentID),
					zap.String("sk", item.SK),
					zap.String("timestamp", item.Timestamp),
				)
				continue
			}
			occurrences = append(occurrences, tracking.BehaviorOccurrence{
				BehaviorID: item.BehaviorID,
				Timestamp:  ts,
				Deleted:    item.Deleted,
			})
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return occurrences, nil
}
