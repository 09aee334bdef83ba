package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryMembershipReplacement(t *testing.T) {
	router, db := setupTestRouter(t)
	seller := testutil.CreateSeller(t, db, "acme")
	m1 := testutil.CreateMachinery(t, db, seller.ID, "Tractor A")
	m2 := testutil.CreateMachinery(t, db, seller.ID, "Tractor B")
	m3 := testutil.CreateMachinery(t, db, seller.ID, "Tractor C")

	w := performRequest(router, http.MethodPost, "/api/v1/categories", map[string]interface{}{
		"name":          "Tractors",
		"machinery_ids": []uint{m1.ID, m2.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := responseData(t, w)
	assert.Equal(t, "tractors", created["slug"])
	assert.ElementsMatch(t, []uint{m1.ID, m2.ID}, ids(created["machineries"].([]interface{})))

	categoryID := uint(created["id"].(float64))
	path := fmt.Sprintf("/api/v1/categories/%d", categoryID)

	w = performRequest(router, http.MethodPut, path, map[string]interface{}{
		"name":          "Tractors",
		"machinery_ids": []uint{m2.ID, m3.ID, 999},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []uint{m2.ID, m3.ID}, ids(responseData(t, w)["machineries"].([]interface{})))

	w = performRequest(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	members := responseData(t, w)["machineries"].([]interface{})
	assert.ElementsMatch(t, []uint{m2.ID, m3.ID}, ids(members))
	for _, member := range members {
		assert.NotContains(t, member.(map[string]interface{}), "categories")
	}

	// the machinery removed from the category still exists
	var count int64
	db.Model(&models.Machinery{}).Where("id = ?", m1.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCategory(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := performRequest(router, http.MethodPost, "/api/v1/categories",
		map[string]interface{}{"name": "Excavators", "machinery_ids": []uint{}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		expectedField  string
	}{
		{
			name:           "Successfully create empty category",
			requestBody:    map[string]interface{}{"name": "Cranes", "machinery_ids": []uint{}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail with duplicate name",
			requestBody:    map[string]interface{}{"name": "Excavators", "machinery_ids": []uint{}},
			expectedStatus: http.StatusConflict,
			expectedError:  "CONFLICT",
			expectedField:  "name",
		},
		{
			name:           "Successfully create name sharing a slug",
			requestBody:    map[string]interface{}{"name": "EXCAVATORS!", "machinery_ids": []uint{}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fail without machinery_ids",
			requestBody:    map[string]interface{}{"name": "Loaders"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail without name",
			requestBody:    map[string]interface{}{"machinery_ids": []uint{}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/v1/categories", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedError != "" {
				body := errorBody(t, w)
				assert.Equal(t, tt.expectedError, body["code"])
				if tt.expectedField != "" {
					assert.Equal(t, tt.expectedField, body["field"])
				}
			}
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	router, db := setupTestRouter(t)
	seller := testutil.CreateSeller(t, db, "acme")
	tractor := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	first := testutil.CreateCategory(t, db, "Tractors", tractor)
	second := testutil.CreateCategory(t, db, "Farm", tractor)
	third := testutil.CreateCategory(t, db, "Heavy")

	w := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", first.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodDelete, "/api/v1/categories",
		map[string]interface{}{"ids": []uint{second.ID, third.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), responseData(t, w)["deleted"])

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/machineries/%d", tractor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, responseData(t, w)["categories"])
}
