package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	sc "github.com/avelov/shopapi/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// ImageUpload describes a pending product-image upload: the object key, the
// presigned PUT URL the client uploads to, and the public URL the product
// record should reference afterwards.
type ImageUpload struct {
	Key       string
	UploadURL string
	ImageURL  string
}

// ImageUploadService hands out presigned S3 PUT URLs for product images.
type ImageUploadService struct {
	config *sc.Config
}

func NewImageUploadService(config *sc.Config) *ImageUploadService {
	return &ImageUploadService{config: config}
}

// GetRandomStorageKey builds a date-partitioned unique object key.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ImageUploadService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// PresignImageUpload issues a 15-minute presigned PUT URL for a fresh object
// key and derives the public image URL from the configured base.
func (s *ImageUploadService) PresignImageUpload(ctx context.Context) (*ImageUpload, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return nil, err
	}

	return &ImageUpload{
		Key:       key,
		UploadURL: req.URL,
		ImageURL:  strings.TrimSuffix(s.config.ImageBaseURL, "/") + "/" + key,
	}, nil
}
