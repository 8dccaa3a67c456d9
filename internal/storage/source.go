package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source opens import files by location: a local path or s3://bucket/key.
type Source interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint is set for S3-compatible stores (MinIO, LocalStack).
	Endpoint string
}

type Opener struct {
	s3 *s3.Client
}

func NewOpener(cfg S3Config) *Opener {
	awsCfg := aws.Config{Region: cfg.Region}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Opener{s3: client}
}

func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, ok := ParseS3URL(location)
	if !ok {
		return os.Open(location)
	}

	out, err := o.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", location, err)
	}
	return out.Body, nil
}

// ParseS3URL splits s3://bucket/key. ok is false for anything else.
func ParseS3URL(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
