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
	"go.uber.org/zap"
)

// TeamRepository implements ports.TeamReader on DynamoDB.
type TeamRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TeamReader {
	return &TeamRepository{client: client, tableName: tableName, logger: logger}
}

type teamMemberItem struct {
	PK                 string   `dynamodbav:"PK"`
	SK                 string   `dynamodbav:"SK"`
	UserID             string   `dynamodbav:"UserID"`
	AccessLevel        string   `dynamodbav:"AccessLevel"`
	AllowedBehaviorIDs []string `dynamodbav:"AllowedBehaviorIDs,omitempty"`
}

// GetTeam loads the team members with access to a student.
func (r *TeamRepository) GetTeam(ctx context.Context, studentID string) ([]tracking.TeamMember, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(studentPK(studentID))).
		And(expression.Key("SK").BeginsWith("TEAM#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build team query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query team for %s: %w", studentID, err)
	}

	var items []teamMemberItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team for %s: %w", studentID, err)
	}

	members := make([]tracking.TeamMember, 0, len(items))
	for _, item := range items {
		members = append(members, tracking.TeamMember{
			UserID:             item.UserID,
			AccessLevel:        item.AccessLevel,
			AllowedBehaviorIDs: item.AllowedBehaviorIDs,
		})
	}
	return members, nil
}
