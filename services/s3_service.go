package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/heavydutyrent/machinery-api/config"
	"github.com/heavydutyrent/machinery-api/utils"
)

// S3Interface defines the interface for S3 operations
type S3Interface interface {
	// UploadFile stores the file under key and returns its object URL
	UploadFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (string, error)
	GetPresignedURL(ctx context.Context, key string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	// KeyFromURL returns the object key for a URL this bucket produced
	KeyFromURL(url string) (string, bool)
}

// S3Service handles all S3-related operations
type S3Service struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// InitS3Service builds the S3 client for the configured bucket. Static
// credentials are used when given, the default AWS chain otherwise.
func InitS3Service(ctx context.Context, cfg *appConfig.Config) (*S3Service, error) {
	options := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" {
		options = append(options, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	// Load AWS configuration with explicit options
	awsConfig, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.AWSEndpointURL != "" {
			// S3-compatible stores are addressed path-style
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		}
	})

	log.Printf("Storing machinery images in S3 bucket %s", cfg.AWSS3Bucket)
	return &S3Service{
		client:  client,
		bucket:  cfg.AWSS3Bucket,
		baseURL: bucketBaseURL(cfg),
	}, nil
}

// bucketBaseURL returns the URL prefix shared by every object in the bucket
func bucketBaseURL(cfg *appConfig.Config) string {
	if cfg.AWSEndpointURL != "" {
		return fmt.Sprintf("%s/%s/", strings.TrimRight(cfg.AWSEndpointURL, "/"), cfg.AWSS3Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.AWSS3Bucket, cfg.AWSRegion)
}

// UploadFile uploads a file to S3 and returns the object URL
func (s *S3Service) UploadFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (string, error) {
	// Open the uploaded file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	contentType, ok := utils.ImageContentType(fileHeader.Filename)
	if !ok {
		contentType = "application/octet-stream"
	}

	// Upload to S3 with proper settings
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(fileHeader.Size),
		ContentType:   aws.String(contentType),
		// Note: ACL is not set here - bucket permissions should handle access
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.baseURL + key, nil
}

// GetPresignedURL generates a presigned URL for accessing a private S3 object
// The URL expires after 1 hour
func (s *S3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DeleteFile deletes a file from S3
func (s *S3Service) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// KeyFromURL returns the object key of a URL under this bucket
func (s *S3Service) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.baseURL, url)
}

func keyFromURL(baseURL, url string) (string, bool) {
	key, ok := strings.CutPrefix(url, baseURL)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
