package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// allowedImageTypes maps accepted extensions to their content type
var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

var (
	// UploadDir is the directory where uploaded files are stored when no
	// object storage is configured. Can be overridden for testing
	UploadDir = "./uploads"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	if fileHeader.Size == 0 {
		return &FileUploadError{
			Code:    "EMPTY_FILE",
			Message: "File is empty",
		}
	}

	// Check file extension
	if _, ok := ImageContentType(fileHeader.Filename); !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only .png, .jpg and .jpeg files are allowed",
		}
	}

	return nil
}

// ImageContentType returns the content type for an image filename based on
// its extension, and whether the extension is accepted
func ImageContentType(filename string) (string, bool) {
	contentType, ok := allowedImageTypes[strings.ToLower(filepath.Ext(filename))]
	return contentType, ok
}

// SaveUploadedFile saves the uploaded file to uploadDir under filename
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, filename string) (err error) {
	// Create uploads directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Full path to save the file
	fullPath := filepath.Join(uploadDir, filepath.Base(filename))

	// Open the uploaded file
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			// Log error since we're reading; not critical enough to fail the operation
			fmt.Printf("warning: failed to close source file: %v\n", closeErr)
		}
	}()

	// Create the destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	// Copy the file
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// RemoveUploadedFile deletes a previously saved file; a missing file is not an error
func RemoveUploadedFile(uploadDir, filename string) error {
	err := os.Remove(filepath.Join(uploadDir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// GetImageURL returns the URL path for accessing a locally stored image
func GetImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/uploads/%s", filename)
}

// FilenameFromImageURL is the inverse of GetImageURL
func FilenameFromImageURL(url string) (string, bool) {
	filename, ok := strings.CutPrefix(url, "/api/v1/uploads/")
	if !ok || filename == "" || strings.ContainsAny(filename, `/\`) {
		return "", false
	}
	return filename, true
}
