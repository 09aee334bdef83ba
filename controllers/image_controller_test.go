package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/services"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withImageStorage installs storage for the duration of the test
func withImageStorage(t *testing.T, storage services.ImageStorage) {
	t.Helper()
	previous := services.GetImageStorage()
	services.SetImageStorage(storage)
	t.Cleanup(func() { services.SetImageStorage(previous) })
}

// performUpload posts content as the multipart "image" field
func performUpload(t *testing.T, router *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImageEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)
	seller := testutil.CreateSeller(t, db, "acme")
	machinery := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	other := testutil.CreateMachinery(t, db, seller.ID, "Loader")
	imageURL := "https://cdn.example.com/tractor.png"
	imagesPath := fmt.Sprintf("/api/v1/machineries/%d/images", machinery.ID)

	t.Run("create", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/images", map[string]interface{}{
			"url":          imageURL,
			"machinery_id": machinery.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, imageURL, responseData(t, w)["url"])
	})

	t.Run("create duplicate url", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/images", map[string]interface{}{
			"url":          imageURL,
			"machinery_id": other.ID,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "url", errorBody(t, w)["field"])
	})

	t.Run("create for unknown machinery", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/images", map[string]interface{}{
			"url":          "https://cdn.example.com/ghost.png",
			"machinery_id": 999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "machinery_id", errorBody(t, w)["field"])
	})

	t.Run("list by machinery", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, imagesPath, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, responseList(t, w), 1)

		w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/machineries/%d/images", other.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, responseList(t, w))

		w = performRequest(router, http.MethodGet, "/api/v1/machineries/999/images", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lookup", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, imagesPath+"/lookup?url="+url.QueryEscape(imageURL), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := responseData(t, w)
		assert.Equal(t, imageURL, data["download_url"])

		// belongs to another machinery
		w = performRequest(router, http.MethodGet,
			fmt.Sprintf("/api/v1/machineries/%d/images/lookup?url=%s", other.ID, url.QueryEscape(imageURL)), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = performRequest(router, http.MethodGet, imagesPath+"/lookup", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, imagesPath+"?url="+url.QueryEscape(imageURL), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = performRequest(router, http.MethodDelete, imagesPath+"?url="+url.QueryEscape(imageURL), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUploadMachineryImage_LocalStorage(t *testing.T) {
	router, db := setupTestRouter(t)
	dir := useUploadDir(t)
	withImageStorage(t, services.NewLocalImageStorage(dir))
	seller := testutil.CreateSeller(t, db, "acme")
	machinery := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	imagesPath := fmt.Sprintf("/api/v1/machineries/%d/images", machinery.ID)
	content := []byte("fake PNG content")

	w := performUpload(t, router, imagesPath+"/upload", "tractor.png", content)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	imageURL := responseData(t, w)["url"].(string)
	assert.True(t, strings.HasPrefix(imageURL, "/api/v1/uploads/"), imageURL)

	// the stored file is served back
	w = performRequest(router, http.MethodGet, imageURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	// deleting the image removes the file
	w = performRequest(router, http.MethodDelete, imagesPath+"?url="+url.QueryEscape(imageURL), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadMachineryImage_S3(t *testing.T) {
	router, db := setupTestRouter(t)
	mockS3 := services.NewMockS3Service()
	withImageStorage(t, services.NewS3ImageStorage(mockS3))
	seller := testutil.CreateSeller(t, db, "acme")
	machinery := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	imagesPath := fmt.Sprintf("/api/v1/machineries/%d/images", machinery.ID)

	w := performUpload(t, router, imagesPath+"/upload", "tractor.jpg", []byte("fake JPEG content"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	imageURL := responseData(t, w)["url"].(string)
	require.Len(t, mockS3.GetUploadedFiles(), 1)

	w = performRequest(router, http.MethodGet, imagesPath+"/lookup?url="+url.QueryEscape(imageURL), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, responseData(t, w)["download_url"], "mock=true")

	// removing the machinery removes the object
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/machineries/%d", machinery.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, mockS3.GetUploadedFiles())
}

func TestUploadMachineryImage_Errors(t *testing.T) {
	router, db := setupTestRouter(t)
	seller := testutil.CreateSeller(t, db, "acme")
	machinery := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	uploadPath := fmt.Sprintf("/api/v1/machineries/%d/images/upload", machinery.ID)

	t.Run("no storage configured", func(t *testing.T) {
		withImageStorage(t, nil)
		w := performUpload(t, router, uploadPath, "tractor.png", []byte("png"))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "STORAGE_UNAVAILABLE", errorBody(t, w)["code"])
	})

	dir := useUploadDir(t)
	withImageStorage(t, services.NewLocalImageStorage(dir))

	tests := []struct {
		name           string
		path           string
		filename       string
		content        []byte
		expectedStatus int
		expectedError  string
	}{
		{"missing file", uploadPath, "", nil, http.StatusBadRequest, "MISSING_FILE"},
		{"wrong format", uploadPath, "tractor.gif", []byte("gif"), http.StatusBadRequest, "INVALID_FILE_FORMAT"},
		{"empty file", uploadPath, "tractor.png", []byte{}, http.StatusBadRequest, "EMPTY_FILE"},
		{"unknown machinery", "/api/v1/machineries/999/images/upload", "tractor.png", []byte("png"), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performUpload(t, router, tt.path, tt.filename, tt.content)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedError, errorBody(t, w)["code"])
		})
	}

	// nothing was written for the rejected uploads
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
