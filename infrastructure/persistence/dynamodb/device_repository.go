package dynamodb

import (
	"context"
	"fmt"

	"behaviortrack/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DeviceRepository implements ports.PushEndpointReader on DynamoDB.
type DeviceRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewDeviceRepository creates a new DeviceRepository
func NewDeviceRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.PushEndpointReader {
	return &DeviceRepository{client: client, tableName: tableName, logger: logger}
}

type pushEndpointItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	Platform    string `dynamodbav:"Platform"`
	EndpointArn string `dynamodbav:"EndpointArn"`
}

// GetPushEndpoint looks up the push endpoint registered for a device.
// Returns nil (no error) when none is on file.
func (r *DeviceRepository) GetPushEndpoint(ctx context.Context, deviceID string) (*ports.PushEndpoint, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: devicePK("APP", deviceID)},
			"SK": &types.AttributeValueMemberS{Value: "PUSH"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get push endpoint for device %s: %w", deviceID, err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item pushEndpointItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push endpoint for device %s: %w", deviceID, err)
	}
	if item.EndpointArn == "" {
		return nil, nil
	}
	return &ports.PushEndpoint{Platform: item.Platform, EndpointRef: item.EndpointArn}, nil
}
