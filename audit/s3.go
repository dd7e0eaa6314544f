package audit

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Sink implements Sink backed by S3

type S3Sink struct {
	bucket string
	prefix string
	s3     *s3.Client
}

func NewS3Sink(s3Client *s3.Client, bucket, prefix string) *S3Sink {
	return &S3Sink{
		bucket: bucket,
		prefix: prefix,
		s3:     s3Client,
	}
}

// Store uploads the document under a key that is unique per session, so
// successive server runs never overwrite each other.
func (s *S3Sink) Store(ctx context.Context, data []byte) error {
	key := path.Join(s.prefix, fmt.Sprintf("%d.%s.audit.json", time.Now().Unix(), uuid.NewString()))
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put audit object to S3: %w", err)
	}
	return nil
}
