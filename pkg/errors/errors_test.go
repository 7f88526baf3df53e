package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_MessageIncludesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewPersistenceError("load student", cause)

	assert.Contains(t, err.Error(), "PERSISTENCE")
	assert.Contains(t, err.Error(), "load student")
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIsType_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewTemplateError("fetch fallback", stderrors.New("404")))

	assert.True(t, IsType(err, ErrorTypeTemplate))
	assert.False(t, IsType(err, ErrorTypeTransport))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeTemplate))
}

func TestGetType_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrorTypePersistence, GetType(NewPersistenceError("x", nil)))
	assert.Equal(t, ErrorTypeInternal, GetType(stderrors.New("plain")))
}
