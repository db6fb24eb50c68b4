package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"shipdocs/shipdocs/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient archives raw scraper run output so failed runs can be
// inspected after the fact.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(cfg config.Config) (*MinIOClient, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

func runLogKey(runID string) string {
	return fmt.Sprintf("runs/%s.log", runID)
}

// UploadRunLog stores the combined stdout/stderr of a finished run.
func (m *MinIOClient) UploadRunLog(ctx context.Context, runID, output string) (string, error) {
	key := runLogKey(runID)
	_, err := m.client.PutObject(ctx, m.bucket, key,
		strings.NewReader(output), int64(len(output)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinIOClient) GetRunLog(ctx context.Context, runID string) (string, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, runLogKey(runID), minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
