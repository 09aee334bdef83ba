package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	passwordHashCost = bcrypt.MinCost
}

// newUnitOfWork opens a fresh database and returns a unit of work on it
func newUnitOfWork(t *testing.T) (*gorm.DB, *repository.UnitOfWork) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return db, repository.NewUnitOfWork(db)
}

// withImageStorage installs storage for the duration of the test
func withImageStorage(t *testing.T, storage ImageStorage) {
	t.Helper()
	previous := GetImageStorage()
	SetImageStorage(storage)
	t.Cleanup(func() { SetImageStorage(previous) })
}

// passwordMatches reports whether password matches the account's stored hash
func passwordMatches(account models.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
}

func accountRequest(name string) dto.AccountRequest {
	return dto.AccountRequest{
		UserName:    name,
		Email:       name + "@example.com",
		Password:    "password-" + name,
		PhoneNumber: "+380-" + name,
	}
}

// createTestFileHeader builds a multipart.FileHeader holding content
func createTestFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

// recordingStorage always hands out the same URL and records deletions
type recordingStorage struct {
	url     string
	mu      sync.Mutex
	deleted []string
}

func (r *recordingStorage) UploadImage(ctx context.Context, machineryID uint, fileHeader *multipart.FileHeader) (string, error) {
	return r.url, nil
}

func (r *recordingStorage) GetImageURL(ctx context.Context, url string) (string, error) {
	return url, nil
}

func (r *recordingStorage) DeleteImage(ctx context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, url)
	return nil
}
