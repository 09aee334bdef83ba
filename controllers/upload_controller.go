package controllers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/utils"
)

const uploadCacheControl = "public, max-age=86400"

// GetUploadedImage handles GET /api/v1/uploads/:filename. It serves machinery
// images written by the local image storage; with S3 configured the
// directory is simply empty.
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// names are generated as <machinery id>_<uuid><ext>; anything that could
	// leave the upload directory is refused
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	contentType, ok := utils.ImageContentType(filename)
	if !ok {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PNG and JPEG files are supported")
		return
	}

	path := filepath.Join(utils.UploadDir, filename)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		respondErrorCode(c, http.StatusNotFound, "FILE_NOT_FOUND", "Image not found")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", uploadCacheControl)
	c.File(path)
}
