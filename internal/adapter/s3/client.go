// Package s3 lists Met Office forecast objects and stores STAC documents in
// Amazon S3 or an S3-compatible endpoint.
package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ClientOptions selects the region, endpoint and signing of an S3 client.
type ClientOptions struct {
	Region string
	// Endpoint overrides the AWS endpoint and switches to path-style
	// addressing, for local S3-compatible stores.
	Endpoint string
	// Anonymous skips request signing. The Met Office bucket is public.
	Anonymous bool
}

// NewClient creates an S3 client from the default AWS configuration chain.
func NewClient(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Anonymous {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
