package dynamodb

import (
	"context"
	"fmt"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// SubscriptionRepository implements ports.SubscriptionReader on DynamoDB.
type SubscriptionRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.SubscriptionReader {
	return &SubscriptionRepository{client: client, tableName: tableName, logger: logger}
}

type subscriptionItem struct {
	PK                  string   `dynamodbav:"PK"`
	SK                  string   `dynamodbav:"SK"`
	GroupID             string   `dynamodbav:"GroupID"`
	Name                string   `dynamodbav:"Name"`
	BehaviorIDs         []string `dynamodbav:"BehaviorIDs,omitempty"`
	ResponseIDs         []string `dynamodbav:"ResponseIDs,omitempty"`
	NotifyUntilResponse bool     `dynamodbav:"NotifyUntilResponse"`
	Emails              []string `dynamodbav:"Emails,omitempty"`
	Mobiles             []string `dynamodbav:"Mobiles,omitempty"`
	UserIDs             []string `dynamodbav:"UserIDs,omitempty"`
	DeviceIDs           []string `dynamodbav:"DeviceIDs,omitempty"`
	DefaultTemplate     string   `dynamodbav:"DefaultTemplate,omitempty"`
	AppTemplate         string   `dynamodbav:"AppTemplate,omitempty"`
	EmailTemplate       string   `dynamodbav:"EmailTemplate,omitempty"`
	TextTemplate        string   `dynamodbav:"TextTemplate,omitempty"`
}

// GetSubscriptions loads every subscription group of a student.
func (r *SubscriptionRepository) GetSubscriptions(ctx context.Context, studentID string) ([]tracking.SubscriptionGroup, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(studentPK(studentID))).
		And(expression.Key("SK").BeginsWith("SUBSCRIPTION#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build subscription query: %w", err)
	}

	var groups []tracking.SubscriptionGroup
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
			return nil, fmt.Errorf("failed to query subscriptions for %s: %w", studentID, err)
		}

		var items []subscriptionItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscriptions for %s: %w", studentID, err)
		}
		for _, item := range items {
			groups = append(groups, tracking.SubscriptionGroup{
				ID:                  item.GroupID,
				Name:                item.Name,
				BehaviorIDs:         item.BehaviorIDs,
				ResponseIDs:         item.ResponseIDs,
				NotifyUntilResponse: item.NotifyUntilResponse,
				Emails:              item.Emails,
				Mobiles:             item.Mobiles,
				UserIDs:             item.UserIDs,
				DeviceIDs:           item.DeviceIDs,
				Templates: tracking.MessageTemplates{
					Default: item.DefaultTemplate,
					App:     item.AppTemplate,
					Email:   item.EmailTemplate,
					Text:    item.TextTemplate,
				},
			})
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return groups, nil
}
