// Package storage archives synthesized audio in an S3-compatible bucket and
// hands out short-lived download links for it.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/polyglot/internal/server/config"
	"github.com/google/uuid"
)

// LinkExpiry is how long a presigned download link stays valid.
const LinkExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Archive stores audio and returns its key and a download URL.
type Archive interface {
	Store(ctx context.Context, data []byte, contentType string) (key string, url string, err error)
}

// S3Archive is an Archive backed by S3 or MinIO.
type S3Archive struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
}

// NewS3Archive builds the S3 clients from the archive settings in cfg.
func NewS3Archive(ctx context.Context, cfg *sc.Config) (*S3Archive, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archive{
		bucket:  cfg.S3Bucket,
		client:  client,
		presign: newS3PresignClient(client),
	}, nil
}

// AudioKey returns a fresh object key for one translation's audio.
func AudioKey() string {
	d := now()
	return fmt.Sprintf("translations/%d/%d/%d/%v.mp3", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Store uploads data under a new key and presigns a GET for it.
func (a *S3Archive) Store(ctx context.Context, data []byte, contentType string) (string, string, error) {
	key := AudioKey()
	bucket := a.bucket

	_, err := putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	req, err := presignGetObject(a.presign, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(LinkExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presign get: %w", err)
	}

	return key, req.URL, nil
}
