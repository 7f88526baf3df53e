package dynamodb

import (
	"context"
	"fmt"
	"time"

	apperrors "behaviortrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStateRepository persists per-(user, student) alert state: the
// outstanding-alert flag and the last-behavior-notification record. Both
// live on the same item, so it implements ports.AlertFlagWriter and
// ports.NotificationRecorder together.
type UserStateRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserStateRepository creates a new UserStateRepository
func NewUserStateRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *UserStateRepository {
	return &UserStateRepository{client: client, tableName: tableName, logger: logger}
}

// SetOutstandingAlert persists the outstanding-alert flag for a (user,
// student) pair. The write is an upsert; repeating it with the same value
// is a no-op, which keeps duplicate resolution passes harmless.
func (r *UserStateRepository) SetOutstandingAlert(ctx context.Context, userID, studentID string, outstanding bool) error {
	update := expression.Set(expression.Name("OutstandingAlert"), expression.Value(outstanding)).
		Set(expression.Name("UpdatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build alert flag update: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: userStudentSK(studentID)},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return apperrors.NewPersistenceError(
			fmt.Sprintf("set outstanding alert for user %s student %s", userID, studentID), err)
	}
	return nil
}

// RecordUserNotification persists the "last behavior notification" record
// for a (user, student) pair.
func (r *UserStateRepository) RecordUserNotification(ctx context.Context, userID, studentID, behaviorID string, at time.Time) error {
	update := expression.Set(expression.Name("LastNotifiedBehaviorID"), expression.Value(behaviorID)).
		Set(expression.Name("LastNotifiedAt"), expression.Value(at.UTC().Format(time.RFC3339))).
		Set(expression.Name("LastNotificationID"), expression.Value(uuid.NewString()))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build notification record update: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: userStudentSK(studentID)},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return apperrors.NewPersistenceError(
			fmt.Sprintf("record notification for user %s student %s", userID, studentID), err)
	}
	return nil
}
