package s3

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/observability"
)

const pageSize = 1000

// Lister pages through ListObjectsV2 under a prefix.
// It implements pipeline.Lister.
type Lister struct {
	client  s3.ListObjectsV2APIClient
	bucket  string
	baseURL string
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLister creates a Lister for bucket. Each page request waits on a token
// bucket allowing rps requests per second. Object hrefs are baseURL followed
// by the key, so baseURL should end in a slash.
func NewLister(client s3.ListObjectsV2APIClient, bucket, baseURL string, rps float64, logger *slog.Logger, metrics *observability.Metrics) *Lister {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Lister{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
		metrics: metrics,
	}
}

// ListObjects returns every object under prefix.
func (l *Lister) ListObjects(ctx context.Context, prefix string) ([]domain.RawObject, error) {
	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(prefix),
	}, func(o *s3.ListObjectsV2PaginatorOptions) {
		o.Limit = pageSize
	})

	var objects []domain.RawObject
	for paginator.HasMorePages() {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			l.metrics.ListRequests.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("list %s%s: %w", l.baseURL, prefix, err)
		}
		l.metrics.ListRequests.WithLabelValues("success").Inc()

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			objects = append(objects, domain.RawObject{
				Key:          key,
				Href:         l.baseURL + key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified).UTC(),
			})
		}
	}

	l.logger.Debug("listed prefix", "prefix", prefix, "objects", len(objects))
	return objects, nil
}
