package exporter

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const markdownContentType = "text/markdown; charset=utf-8"

type uploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Uploader exports documents to a bucket.
type S3Uploader struct {
	client uploadAPI
	bucket string
	prefix string
}

// NewS3Uploader builds an uploader from the default AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, prefix, region string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no export bucket configured (export.s3_bucket)")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client: manager.NewUploader(s3.NewFromConfig(cfg)),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Key is the object key used for a document title.
func (u *S3Uploader) Key(title string) string {
	prefix := strings.Trim(u.prefix, "/")
	if prefix == "" {
		return FileName(title)
	}
	return path.Join(prefix, FileName(title))
}

// Upload stores content under Key(title) and returns the object location.
func (u *S3Uploader) Upload(ctx context.Context, title, content string) (string, error) {
	key := u.Key(title)
	out, err := u.client.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(content)),
		ContentType: aws.String(markdownContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", u.bucket, key, err)
	}
	if out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
