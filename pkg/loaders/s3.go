package loaders

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/routeview/pkg/routes"
)

// ObjectGetter is the part of *s3.Client used by S3JSON.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ ObjectGetter = (*s3.Client)(nil)

// S3JSON returns a loader that reads bucket/key and decodes it as JSON.
func S3JSON(client ObjectGetter, bucket, key string) routes.LoaderFunc {
	return func(ctx context.Context) (any, error) {
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
		}
		defer out.Body.Close()
		return decodeJSON(out.Body)
	}
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region string

	// Endpoint overrides the service endpoint, for S3-compatible stores.
	Endpoint string

	// PathStyle addresses buckets as path segments instead of hosts.
	PathStyle bool
}

// NewS3Client creates an anonymous S3 client, suitable for public buckets
// and local S3-compatible stores.
func NewS3Client(opts S3Options) *s3.Client {
	return s3.New(s3.Options{
		Region:       opts.Region,
		BaseEndpoint: endpoint(opts.Endpoint),
		UsePathStyle: opts.PathStyle,
		Credentials:  aws.AnonymousCredentials{},
	})
}

func endpoint(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
