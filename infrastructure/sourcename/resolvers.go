// Package sourcename resolves the display name of whoever recorded an
// event. One resolver exists per device kind; the notify service selects
// by kind instead of switching inline, so each variant is independently
// testable and injectable.
package sourcename

import (
	"context"
	"fmt"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type namedItem struct {
	Name        string `dynamodbav:"Name,omitempty"`
	DisplayName string `dynamodbav:"DisplayName,omitempty"`
	FirstName   string `dynamodbav:"FirstName,omitempty"`
	LastName    string `dynamodbav:"LastName,omitempty"`
}

func (i namedItem) displayName() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	if i.Name != "" {
		return i.Name
	}
	full := i.FirstName
	if i.LastName != "" {
		if full != "" {
			full += " "
		}
		full += i.LastName
	}
	return full
}

func lookup(ctx context.Context, client *dynamodb.Client, tableName, pk, sk string) (string, error) {
	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up %s/%s: %w", pk, sk, err)
	}
	if out.Item == nil {
		return "", nil
	}
	var item namedItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s/%s: %w", pk, sk, err)
	}
	return item.displayName(), nil
}

// AppDeviceResolver resolves the name a user gave their mobile app install.
type AppDeviceResolver struct {
	client    *dynamodb.Client
	tableName string
}

// NewAppDeviceResolver creates a resolver for mobile app installs.
func NewAppDeviceResolver(client *dynamodb.Client, tableName string) *AppDeviceResolver {
	return &AppDeviceResolver{client: client, tableName: tableName}
}

func (r *AppDeviceResolver) ResolveSourceDisplayName(ctx context.Context, raterID string) (string, error) {
	return lookup(ctx, r.client, r.tableName, fmt.Sprintf("DEVICE#APP#%s", raterID), "META")
}

// LegacyDeviceResolver resolves the name of a paired physical device.
type LegacyDeviceResolver struct {
	client    *dynamodb.Client
	tableName string
}

// NewLegacyDeviceResolver creates a resolver for paired physical devices.
func NewLegacyDeviceResolver(client *dynamodb.Client, tableName string) *LegacyDeviceResolver {
	return &LegacyDeviceResolver{client: client, tableName: tableName}
}

func (r *LegacyDeviceResolver) ResolveSourceDisplayName(ctx context.Context, raterID string) (string, error) {
	return lookup(ctx, r.client, r.tableName, fmt.Sprintf("DEVICE#HW#%s", raterID), "META")
}

// WebUserResolver resolves the display name of a web-console user.
type WebUserResolver struct {
	client    *dynamodb.Client
	tableName string
}

// NewWebUserResolver creates a resolver for web-console users.
func NewWebUserResolver(client *dynamodb.Client, tableName string) *WebUserResolver {
	return &WebUserResolver{client: client, tableName: tableName}
}

func (r *WebUserResolver) ResolveSourceDisplayName(ctx context.Context, raterID string) (string, error) {
	return lookup(ctx, r.client, r.tableName, fmt.Sprintf("USER#%s", raterID), "PROFILE")
}

// Registry builds the device-kind to resolver map consumed by the notify
// service.
func Registry(client *dynamodb.Client, tableName string) map[tracking.DeviceKind]ports.SourceNameResolver {
	return map[tracking.DeviceKind]ports.SourceNameResolver{
		tracking.DeviceApp:    NewAppDeviceResolver(client, tableName),
		tracking.DeviceLegacy: NewLegacyDeviceResolver(client, tableName),
		tracking.DeviceWeb:    NewWebUserResolver(client, tableName),
	}
}
