// Package dynamodb implements the engine's data-access collaborators on a
// single DynamoDB table.
//
// Key layout:
//
//	STUDENT#<id>  PROFILE                    student configuration
//	STUDENT#<id>  SUBSCRIPTION#<groupId>     subscription group
//	STUDENT#<id>  EVENT#<rfc3339>#<ulid>     behavior occurrence
//	STUDENT#<id>  TEAM#<userId>              team membership
//	USER#<id>     STUDENT#<studentId>        per-user alert state
//	DEVICE#<kind>#<id>  META | PUSH          device records
package dynamodb

import (
	"fmt"
	"time"
)

func studentPK(studentID string) string {
	return fmt.Sprintf("STUDENT#%s", studentID)
}

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

func subscriptionSK(groupID string) string {
	return fmt.Sprintf("SUBSCRIPTION#%s", groupID)
}

func teamSK(userID string) string {
	return fmt.Sprintf("TEAM#%s", userID)
}

func userStudentSK(studentID string) string {
	return fmt.Sprintf("STUDENT#%s", studentID)
}

func eventSKPrefixAt(t time.Time) string {
	return fmt.Sprintf("EVENT#%s", t.UTC().Format(time.RFC3339Nano))
}

func devicePK(kind, deviceID string) string {
	return fmt.Sprintf("DEVICE#%s#%s", kind, deviceID)
}
