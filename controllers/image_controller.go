package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListMachineryImages handles GET /api/v1/machineries/:id/images
func ListMachineryImages(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	machineryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := services.NewImageService(uow).ListByMachinery(c.Request.Context(), machineryID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewImageResponses(images))
}

// LookupMachineryImage handles GET /api/v1/machineries/:id/images/lookup?url=...
// and returns the image together with a URL the client can download it from
func LookupMachineryImage(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	machineryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	url, ok := requireImageURL(c)
	if !ok {
		return
	}

	service := services.NewImageService(uow)
	image, err := service.Lookup(c.Request.Context(), machineryID, url)
	if err != nil {
		respondError(c, err)
		return
	}

	downloadURL, err := service.DownloadURL(c.Request.Context(), image)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"image":        dto.NewImageResponse(*image),
		"download_url": downloadURL,
	})
}

// CreateImage handles POST /api/v1/images - registers an externally hosted image
func CreateImage(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.ImageRequest
	if !bindJSON(c, &req) {
		return
	}

	image, err := services.NewImageService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewImageResponse(*image))
}

// UploadMachineryImage handles POST /api/v1/machineries/:id/images/upload
// with a multipart "image" file
func UploadMachineryImage(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	machineryID, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondErrorCode(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required in the 'image' field")
		return
	}

	image, err := services.NewImageService(uow).Upload(c.Request.Context(), machineryID, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewImageResponse(*image))
}

// DeleteMachineryImage handles DELETE /api/v1/machineries/:id/images?url=...
func DeleteMachineryImage(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	machineryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	url, ok := requireImageURL(c)
	if !ok {
		return
	}

	if err := services.NewImageService(uow).Delete(c.Request.Context(), machineryID, url); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func requireImageURL(c *gin.Context) (string, bool) {
	url := c.Query("url")
	if url == "" {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "The url query parameter is required")
		return "", false
	}
	return url, true
}
