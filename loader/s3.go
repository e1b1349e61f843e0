package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Fetcher fetches s3://bucket/key resources from any S3-compatible
// object store.
type S3Fetcher struct {
	client *minio.Client
}

// NewS3Fetcher creates a fetcher against the given S3 endpoint.
func NewS3Fetcher(endpoint, accessKey, secretKey string, useSsl bool) (*S3Fetcher, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Fetcher{
		client: client,
	}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, key, err := splitS3URI(uri)
	if err != nil {
		return nil, err
	}

	obj, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// splitS3URI splits s3://bucket/key into its bucket and key parts.
func splitS3URI(uri string) (bucket, key string, err error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}

	if parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", fmt.Errorf("invalid s3 uri: %s", uri)
	}

	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}
