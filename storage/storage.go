package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"portal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Buckets used by the portal.
const (
	BucketCertificates = "certificates"
	BucketDocuments    = "documents"
	BucketAvatars      = "avatars"
)

// Client is the global object storage client
var Client *minio.Client

// Connect initializes the MinIO client and ensures the portal buckets
// exist. Fatal on failure, like the database connection.
func Connect() {
	cfg := config.AppConfig

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range []string{BucketCertificates, BucketDocuments, BucketAvatars} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			log.Fatalf("Failed to check bucket %s: %v", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				log.Fatalf("Failed to create bucket %s: %v", bucket, err)
			}
		}
	}

	Client = client
}

// Put uploads an object.
func Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := Client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// PublicURL builds the URL under which an uploaded object is served.
func PublicURL(bucket, key string) string {
	scheme := "http"
	if config.AppConfig.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, config.AppConfig.MinioEndpoint, bucket, key)
}

// Remove deletes an object.
func Remove(ctx context.Context, bucket, key string) error {
	if err := Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
