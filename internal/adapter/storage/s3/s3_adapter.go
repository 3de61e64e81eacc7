package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ResumeStorage stores uploaded resume files in a MinIO bucket.
type ResumeStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewResumeStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger *zap.Logger) (*ResumeStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
	}

	logger.Info("resume storage initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucketName))

	return &ResumeStorage{
		client: client,
		bucket: bucketName,
		logger: logger.Named("ResumeStorage"),
	}, nil
}

func (s *ResumeStorage) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("failed to upload resume",
			zap.String("object", objectName),
			zap.Error(err))
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}
	s.logger.Info("resume uploaded",
		zap.String("object", objectName),
		zap.Int("size", len(data)))
	return nil
}

func (s *ResumeStorage) Remove(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", objectName, s.bucket, err)
	}
	return nil
}
