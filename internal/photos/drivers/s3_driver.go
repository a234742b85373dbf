package drivers

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Photo binaries never change after upload, so downstream caches may hold
// them for a long time.
const photoCacheControl = "public, max-age=86400, immutable"

const fallbackContentType = "application/octet-stream"

// S3Driver stores photo binaries in an S3-compatible bucket. URLs are
// presigned unless a public base URL is configured.
type S3Driver struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

// NewS3Driver creates a new S3Driver for the given bucket.
func NewS3Driver(client *s3.Client, bucket string, publicURL string) *S3Driver {
	return &S3Driver{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (d *S3Driver) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(d.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(resolvePhotoContentType(key, contentType)),
		CacheControl: aws.String(photoCacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload photo %s: %w", key, err)
	}
	return nil
}

func (d *S3Driver) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	resp, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch photo %s: %w", key, err)
	}

	contentType := fallbackContentType
	if resp.ContentType != nil && *resp.ContentType != "" {
		contentType = *resp.ContentType
	}
	return resp.Body, contentType, nil
}

func (d *S3Driver) Delete(ctx context.Context, key string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", key, err)
	}
	return nil
}

func (d *S3Driver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if d.baseURL != "" {
		return d.baseURL + "/" + key, nil
	}

	if expires == 0 {
		expires = time.Hour
	}

	presignedReq, err := d.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign photo URL: %w", err)
	}
	return presignedReq.URL, nil
}

// resolvePhotoContentType picks the stored content type. Phone cameras and
// the legacy PDI uploader often omit or mangle the header, so an absent or
// generic type is re-derived from the key's extension before falling back.
func resolvePhotoContentType(key string, contentType string) string {
	if contentType != "" && contentType != fallbackContentType {
		return contentType
	}
	if byExt := mime.TypeByExtension(path.Ext(key)); byExt != "" {
		return byExt
	}
	return fallbackContentType
}
