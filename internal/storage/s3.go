package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/site-admin/internal/cache"
)

var storageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

const presignTTL = 15 * time.Minute

type presignedURL struct {
	url     string
	expires time.Time
}

// S3Resolver presigns object URLs for deployments that keep attachment
// binaries in a private bucket. Signed URLs are cached until shortly before
// they expire.
type S3Resolver struct {
	presign *s3.PresignClient
	bucket  string
	urls    *cache.Cache[string, presignedURL]
}

func NewS3Resolver(accessKeyID, accessKeySecret, baseEndpoint, bucket string) (*S3Resolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("init S3 client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
		}
	})

	return &S3Resolver{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		urls:    cache.NewCache[string, presignedURL](),
	}, nil
}

func (r *S3Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}

	if cached, ok := r.urls.Get(ref); ok && time.Until(cached.expires) > time.Minute {
		return cached.url, nil
	}

	key := strings.TrimLeft(ref, "/")
	req, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", ref, err)
	}

	storageLogger.Debug().Str("ref", ref).Msg("Presigned attachment URL")
	r.urls.Set(ref, presignedURL{url: req.URL, expires: time.Now().Add(presignTTL)})
	return req.URL, nil
}
