package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/heavydutyrent/machinery-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCreateAndLookup(t *testing.T) {
	db, uow := newUnitOfWork(t)
	ctx := context.Background()
	seller := testutil.CreateSeller(t, db, "acme")
	tractor := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	crane := testutil.CreateMachinery(t, db, seller.ID, "Crane")

	service := NewImageService(uow)
	url := "https://cdn.example.com/tractor.png"

	image, err := service.Create(ctx, dto.ImageRequest{URL: url, MachineryID: tractor.ID})
	require.NoError(t, err)
	assert.Equal(t, url, image.URL)

	t.Run("Duplicate URL", func(t *testing.T) {
		_, err := service.Create(ctx, dto.ImageRequest{URL: url, MachineryID: crane.ID})

		var conflict *repository.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "url", conflict.Field)
	})

	t.Run("Unknown machinery", func(t *testing.T) {
		_, err := service.Create(ctx, dto.ImageRequest{URL: "https://cdn.example.com/x.png", MachineryID: 999})

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "machinery_id", validationErr.Field)
	})

	t.Run("Lookup", func(t *testing.T) {
		found, err := service.Lookup(ctx, tractor.ID, url)
		require.NoError(t, err)
		assert.Equal(t, tractor.ID, found.MachineryID)

		_, err = service.Lookup(ctx, crane.ID, url)
		assert.True(t, repository.IsNotFound(err), "image belongs to another machinery")
	})

	t.Run("List", func(t *testing.T) {
		images, err := service.ListByMachinery(ctx, tractor.ID)
		require.NoError(t, err)
		assert.Len(t, images, 1)

		images, err = service.ListByMachinery(ctx, crane.ID)
		require.NoError(t, err)
		assert.NotNil(t, images)
		assert.Empty(t, images)

		_, err = service.ListByMachinery(ctx, 999)
		assert.True(t, repository.IsNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, tractor.ID, url))
		assert.True(t, repository.IsNotFound(service.Delete(ctx, tractor.ID, url)))
	})
}

func TestImageUploadToS3(t *testing.T) {
	db, uow := newUnitOfWork(t)
	ctx := context.Background()
	s3 := NewMockS3Service()
	withImageStorage(t, NewS3ImageStorage(s3))

	seller := testutil.CreateSeller(t, db, "acme")
	tractor := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	service := NewImageService(uow)

	image, err := service.Upload(ctx, tractor.ID, createTestFileHeader(t, "Tractor.PNG", []byte("png bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(image.URL, mockBucketURL+"machineries/"))
	assert.True(t, strings.HasSuffix(image.URL, ".png"))

	key, ok := s3.KeyFromURL(image.URL)
	require.True(t, ok)
	assert.Equal(t, []byte("png bytes"), s3.GetUploadedFiles()[key])

	download, err := service.DownloadURL(ctx, image)
	require.NoError(t, err)
	assert.Contains(t, download, "mock=true")

	t.Run("Rejects other formats", func(t *testing.T) {
		_, err := service.Upload(ctx, tractor.ID, createTestFileHeader(t, "tractor.gif", []byte("gif")))

		var uploadErr *utils.FileUploadError
		require.True(t, errors.As(err, &uploadErr))
		assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)
	})

	t.Run("Unknown machinery", func(t *testing.T) {
		_, err := service.Upload(ctx, 999, createTestFileHeader(t, "tractor.png", []byte("png")))
		assert.True(t, repository.IsNotFound(err))
		assert.Len(t, s3.GetUploadedFiles(), 1)
	})

	require.NoError(t, service.Delete(ctx, tractor.ID, image.URL))
	assert.Empty(t, s3.GetUploadedFiles())
}

func TestImageUploadRemovesFileWhenCommitFails(t *testing.T) {
	db, uow := newUnitOfWork(t)
	seller := testutil.CreateSeller(t, db, "acme")
	tractor := testutil.CreateMachinery(t, db, seller.ID, "Tractor")

	// the storage hands out a URL whose row already exists
	existing := testutil.CreateImage(t, db, tractor.ID, "https://cdn.example.com/taken.png")
	storage := &recordingStorage{url: existing.URL}
	withImageStorage(t, storage)

	_, err := NewImageService(uow).Upload(context.Background(), tractor.ID, createTestFileHeader(t, "a.png", []byte("png")))
	require.Error(t, err)
	assert.True(t, repository.IsConflict(err))
	assert.Equal(t, []string{existing.URL}, storage.deleted)

	var count int64
	db.Model(&models.Image{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestImageUploadWithoutStorage(t *testing.T) {
	_, uow := newUnitOfWork(t)
	withImageStorage(t, nil)

	_, err := NewImageService(uow).Upload(context.Background(), 1, createTestFileHeader(t, "a.png", []byte("png")))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestS3ImageStorageIgnoresForeignURLs(t *testing.T) {
	s3 := NewMockS3Service()
	storage := NewS3ImageStorage(s3)

	assert.NoError(t, storage.DeleteImage(context.Background(), "https://elsewhere.example.com/x.png"))

	url, err := storage.GetImageURL(context.Background(), "https://elsewhere.example.com/x.png")
	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.example.com/x.png", url)
}
