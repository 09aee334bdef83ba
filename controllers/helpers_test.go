package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/middleware"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestRouter mounts the API on a fresh in-memory database
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1", middleware.UnitOfWork(db)))
	return router, db
}

// performRequest sends body as JSON (when not nil) and records the response
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse parses the JSON envelope
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

// responseData returns the "data" object of a successful response
func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	response := decodeResponse(t, w)
	require.True(t, response["success"].(bool), w.Body.String())
	return response["data"].(map[string]interface{})
}

// responseList returns the "data" array of a successful response
func responseList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	response := decodeResponse(t, w)
	require.True(t, response["success"].(bool), w.Body.String())
	return response["data"].([]interface{})
}

// errorBody returns the "error" object of a failed response
func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	response := decodeResponse(t, w)
	require.False(t, response["success"].(bool), w.Body.String())
	return response["error"].(map[string]interface{})
}

// ids extracts the numeric "id" of every object in list
func ids(list []interface{}) []uint {
	out := make([]uint, 0, len(list))
	for _, item := range list {
		out = append(out, uint(item.(map[string]interface{})["id"].(float64)))
	}
	return out
}

func buyerPayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"username":     name,
		"email":        name + "@example.com",
		"password":     "password-" + name,
		"phone_number": "+380-" + name,
		"name":         name,
	}
}

func sellerPayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"username":     name,
		"email":        name + "@example.com",
		"password":     "password-" + name,
		"phone_number": "+380-" + name,
		"address_line": "Depot 7",
	}
}
