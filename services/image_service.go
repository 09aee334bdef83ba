package services

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/uniqueness"
)

// ImageService implements the machinery image use cases on one unit of work.
// Rows are managed here; files go through the configured ImageStorage.
type ImageService struct {
	uow         *repository.UnitOfWork
	images      *repository.GormRepository[models.Image, string]
	machineries *repository.GormRepository[models.Machinery, uint]
	unique      *uniqueness.Validator[models.Image, string]
}

// NewImageService creates an image service bound to uow
func NewImageService(uow *repository.UnitOfWork) *ImageService {
	images := repository.New[models.Image, string](uow)
	return &ImageService{
		uow:         uow,
		images:      images,
		machineries: repository.New[models.Machinery, uint](uow),
		unique: uniqueness.New[models.Image, string](images,
			uniqueness.Field[models.Image]{
				Name:   "url",
				Column: "url",
				Value:  func(i *models.Image) string { return i.URL },
			},
		),
	}
}

// ListByMachinery returns the images of an existing machinery
func (s *ImageService) ListByMachinery(ctx context.Context, machineryID uint) ([]models.Image, error) {
	if _, err := s.machineries.GetByID(ctx, machineryID); err != nil {
		return nil, err
	}
	return s.images.FindBy(ctx, repository.Eq("machinery_id", machineryID))
}

// Lookup returns the image with url if it belongs to machineryID
func (s *ImageService) Lookup(ctx context.Context, machineryID uint, url string) (*models.Image, error) {
	image, err := s.images.Include().
		Where(repository.And(repository.KeyEq(url), repository.Eq("machinery_id", machineryID))).
		First(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &repository.NotFoundError{Entity: "Image", ID: url}
		}
		return nil, err
	}
	return image, nil
}

// DownloadURL returns a URL the client can fetch the image from
func (s *ImageService) DownloadURL(ctx context.Context, image *models.Image) (string, error) {
	storage := GetImageStorage()
	if storage == nil {
		return image.URL, nil
	}
	return storage.GetImageURL(ctx, image.URL)
}

// Create registers an externally hosted image URL for a machinery
func (s *ImageService) Create(ctx context.Context, req dto.ImageRequest) (*models.Image, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.machineries.GetByID(ctx, req.MachineryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, missingReference("machinery_id", "machinery", req.MachineryID)
		}
		return nil, err
	}

	image := &models.Image{URL: req.URL, MachineryID: req.MachineryID}
	if err := s.unique.Validate(ctx, image, nil); err != nil {
		return nil, err
	}

	s.images.Add(image)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return image, nil
}

// Upload stores an image file and registers it for a machinery. The stored
// file is removed again if the row cannot be committed.
func (s *ImageService) Upload(ctx context.Context, machineryID uint, fileHeader *multipart.FileHeader) (*models.Image, error) {
	storage := GetImageStorage()
	if storage == nil {
		return nil, ErrStorageUnavailable
	}

	if _, err := s.machineries.GetByID(ctx, machineryID); err != nil {
		return nil, err
	}

	url, err := storage.UploadImage(ctx, machineryID, fileHeader)
	if err != nil {
		return nil, err
	}

	image := &models.Image{URL: url, MachineryID: machineryID}
	s.images.Add(image)
	if err := s.uow.SaveChanges(ctx); err != nil {
		if deleteErr := storage.DeleteImage(ctx, url); deleteErr != nil {
			log.Printf("warning: failed to remove orphaned upload %s: %v", url, deleteErr)
		}
		return nil, err
	}

	return image, nil
}

// Delete removes the image with url from machineryID, then its stored file
func (s *ImageService) Delete(ctx context.Context, machineryID uint, url string) error {
	image, err := s.Lookup(ctx, machineryID, url)
	if err != nil {
		return err
	}

	s.images.Remove(image)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return err
	}

	deleteStoredImages(ctx, []string{image.URL})
	return nil
}
