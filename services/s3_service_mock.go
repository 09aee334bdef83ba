package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

const mockBucketURL = "https://test-bucket.s3.us-east-1.amazonaws.com/"

type mockObject struct {
	content     []byte
	contentType string
}

// MockS3Service is an in-memory bucket implementing S3Interface for tests
type MockS3Service struct {
	mu      sync.RWMutex
	objects map[string]mockObject
	deleted []string
}

// NewMockS3Service returns an empty in-memory bucket
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{objects: make(map[string]mockObject)}
}

// UploadFile keeps the file's bytes under key
func (m *MockS3Service) UploadFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = mockObject{content: content, contentType: fileHeader.Header.Get("Content-Type")}

	return mockBucketURL + key, nil
}

// GetPresignedURL fails for keys the bucket does not hold
func (m *MockS3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.objects[key]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("no object %q in mock bucket", key)
	}

	return fmt.Sprintf("%s%s?mock=true", mockBucketURL, key), nil
}

// DeleteFile drops the object and records the key
func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)

	return nil
}

// KeyFromURL recognizes URLs returned by UploadFile
func (m *MockS3Service) KeyFromURL(url string) (string, bool) {
	return keyFromURL(mockBucketURL, url)
}

// GetUploadedFiles returns a copy of the stored objects' contents by key
func (m *MockS3Service) GetUploadedFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.objects))
	for key, object := range m.objects {
		files[key] = object.content
	}
	return files
}

// DeletedKeys returns the keys passed to DeleteFile, in call order
func (m *MockS3Service) DeletedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.deleted...)
}
