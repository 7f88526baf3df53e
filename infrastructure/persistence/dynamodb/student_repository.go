package dynamodb

import (
	"context"
	"fmt"

	"behaviortrack/application/ports"
	"behaviortrack/domain/tracking"
	apperrors "behaviortrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// StudentRepository implements ports.StudentReader on DynamoDB.
type StudentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.StudentReader {
	return &StudentRepository{client: client, tableName: tableName, logger: logger}
}

type behaviorDefItem struct {
	ID         string `dynamodbav:"ID"`
	Name       string `dynamodbav:"Name"`
	IsDuration bool   `dynamodbav:"IsDuration"`
	Daytime    bool   `dynamodbav:"Daytime"`
}

type studentItem struct {
	PK        string            `dynamodbav:"PK"`
	SK        string            `dynamodbav:"SK"`
	StudentID string            `dynamodbav:"StudentID"`
	FirstName string            `dynamodbav:"FirstName"`
	LastName  string            `dynamodbav:"LastName"`
	Nickname  string            `dynamodbav:"Nickname,omitempty"`
	Behaviors []behaviorDefItem `dynamodbav:"Behaviors,omitempty"`
	Responses []behaviorDefItem `dynamodbav:"Responses,omitempty"`
}

// GetStudent loads the notification-relevant student configuration.
func (r *StudentRepository) GetStudent(ctx context.Context, studentID string) (*tracking.Student, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: studentPK(studentID)},
			"SK": &types.AttributeValueMemberS{Value: "PROFILE"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", studentID, err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", studentID))
	}

	var item studentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal student %s: %w", studentID, err)
	}

	return &tracking.Student{
		ID:        item.StudentID,
		FirstName: item.FirstName,
		LastName:  item.LastName,
		Nickname:  item.Nickname,
		Behaviors: toDefs(item.Behaviors),
		Responses: toDefs(item.Responses),
	}, nil
}

func toDefs(items []behaviorDefItem) []tracking.BehaviorDef {
	if len(items) == 0 {
		return nil
	}
	defs := make([]tracking.BehaviorDef, len(items))
	for i, it := range items {
		defs[i] = tracking.BehaviorDef{
			ID:         it.ID,
			Name:       it.Name,
			IsDuration: it.IsDuration,
			Daytime:    it.Daytime,
		}
	}
	return defs
}
