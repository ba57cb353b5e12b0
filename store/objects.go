// Package store holds the two durable collaborators of the intake workflow:
// an S3-compatible object store for resume files and a MySQL-backed
// submission counter.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/careerlift/resumeaudit/config"
)

// Objects is a stateless handle to the resume bucket on an S3-compatible
// endpoint (MinIO, Supabase's S3 gateway, or AWS proper).
type Objects struct {
	client *s3.Client
	bucket string
}

// NewObjects builds an object-store handle from configuration.
func NewObjects(ctx context.Context, cfg appconfig.AppConfig) (*Objects, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	return &Objects{client: client, bucket: cfg.StorageBucket}, nil
}

// Put stores body under key with create-do-not-replace semantics: a key
// collision is rejected by the store rather than silently overwritten.
func (o *Objects) Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(o.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// ObjectInfo describes one stored resume for the maintenance tooling.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// List returns every object in the resume bucket.
func (o *Objects) List(ctx context.Context) ([]ObjectInfo, error) {
	var infos []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(o.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(o.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// EnsureBucket creates the resume bucket when it does not exist yet.
func (o *Objects) EnsureBucket(ctx context.Context) error {
	if _, err := o.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(o.bucket)}); err == nil {
		return nil
	}
	_, err := o.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(o.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", o.bucket, err)
	}
	return nil
}
