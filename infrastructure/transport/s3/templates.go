// Package s3 loads fallback HTML email templates from the template bucket.
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

type s3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// TemplateStore implements ports.TemplateFetcher on an S3 bucket.
type TemplateStore struct {
	client s3Client
	bucket string
	logger *zap.Logger
}

// NewTemplateStore creates a new TemplateStore
func NewTemplateStore(client *s3.Client, bucket string, logger *zap.Logger) *TemplateStore {
	return &TemplateStore{client: client, bucket: bucket, logger: logger}
}

// FetchTemplate reads the object at path. A failure here must surface: the
// email branch of a dispatch fails visibly when the fallback template is
// unavailable.
func (t *TemplateStore) FetchTemplate(ctx context.Context, path string) (string, error) {
	out, err := t.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch template %s/%s: %w", t.bucket, path, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s/%s: %w", t.bucket, path, err)
	}
	return string(body), nil
}
