package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	appConfig "github.com/heavydutyrent/machinery-api/config"
	"github.com/heavydutyrent/machinery-api/utils"
)

// ErrStorageUnavailable is returned by uploads when no image storage is set up
var ErrStorageUnavailable = errors.New("image storage is not configured")

// ImageStorage handles machinery image files: upload, retrieval and deletion.
// Images are identified by the URL UploadImage returns.
type ImageStorage interface {
	// UploadImage validates and stores an image for a machinery, returns its URL
	UploadImage(ctx context.Context, machineryID uint, fileHeader *multipart.FileHeader) (string, error)

	// GetImageURL returns a URL a client can download the image from
	GetImageURL(ctx context.Context, url string) (string, error)

	// DeleteImage removes a stored image. URLs the storage did not produce
	// are ignored.
	DeleteImage(ctx context.Context, url string) error
}

var imageStorageInstance ImageStorage

// InitImageStorage initializes image storage: S3 when a bucket is
// configured, the local upload directory otherwise
func InitImageStorage(ctx context.Context, cfg *appConfig.Config) (ImageStorage, error) {
	if !cfg.S3Enabled() {
		log.Printf("No S3 bucket configured, storing images in %s", cfg.UploadDir)
		utils.UploadDir = cfg.UploadDir
		imageStorageInstance = NewLocalImageStorage(cfg.UploadDir)
		return imageStorageInstance, nil
	}

	s3Service, err := InitS3Service(ctx, cfg)
	if err != nil {
		return nil, err
	}
	imageStorageInstance = NewS3ImageStorage(s3Service)
	return imageStorageInstance, nil
}

// GetImageStorage returns the initialized image storage, or nil
func GetImageStorage() ImageStorage {
	return imageStorageInstance
}

// SetImageStorage sets the image storage instance (primarily for testing)
func SetImageStorage(storage ImageStorage) {
	imageStorageInstance = storage
}

// imageFilename builds a collision-free name that keeps the upload's extension
func imageFilename(fileHeader *multipart.FileHeader) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
}

// S3ImageStorage implements ImageStorage using AWS S3
type S3ImageStorage struct {
	s3Service S3Interface
}

// NewS3ImageStorage returns image storage backed by s3Service
func NewS3ImageStorage(s3Service S3Interface) *S3ImageStorage {
	return &S3ImageStorage{s3Service: s3Service}
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageStorage) UploadImage(ctx context.Context, machineryID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := fmt.Sprintf("machineries/%d/%s", machineryID, imageFilename(fileHeader))
	url, err := s.s3Service.UploadFile(ctx, key, fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

// GetImageURL generates a presigned URL for images in the bucket and
// returns foreign URLs unchanged
func (s *S3ImageStorage) GetImageURL(ctx context.Context, url string) (string, error) {
	key, ok := s.s3Service.KeyFromURL(url)
	if !ok {
		return url, nil
	}

	presigned, err := s.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}

	return presigned, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageStorage) DeleteImage(ctx context.Context, url string) error {
	key, ok := s.s3Service.KeyFromURL(url)
	if !ok {
		return nil
	}

	if err := s.s3Service.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// LocalImageStorage implements ImageStorage on the local filesystem; files
// are served by the uploads endpoint
type LocalImageStorage struct {
	dir string
}

// NewLocalImageStorage returns image storage writing to dir
func NewLocalImageStorage(dir string) *LocalImageStorage {
	return &LocalImageStorage{dir: dir}
}

// Dir returns the directory images are written to
func (s *LocalImageStorage) Dir() string {
	return s.dir
}

// UploadImage validates and saves an image file to disk
func (s *LocalImageStorage) UploadImage(ctx context.Context, machineryID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", machineryID, imageFilename(fileHeader))
	if err := utils.SaveUploadedFile(fileHeader, s.dir, filename); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return utils.GetImageURL(filename), nil
}

// GetImageURL returns the URL unchanged; local files are public
func (s *LocalImageStorage) GetImageURL(ctx context.Context, url string) (string, error) {
	return url, nil
}

// DeleteImage removes a locally stored image
func (s *LocalImageStorage) DeleteImage(ctx context.Context, url string) error {
	filename, ok := utils.FilenameFromImageURL(url)
	if !ok {
		return nil
	}

	if err := utils.RemoveUploadedFile(s.dir, filename); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// deleteStoredImages removes files behind urls after their rows are gone.
// Failures are logged, not returned: the database is already committed.
func deleteStoredImages(ctx context.Context, urls []string) {
	storage := GetImageStorage()
	if storage == nil {
		return
	}
	for _, url := range urls {
		if err := storage.DeleteImage(ctx, url); err != nil {
			log.Printf("warning: failed to delete stored image %s: %v", url, err)
		}
	}
}
