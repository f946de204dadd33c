package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-records-server/internal/config"
	"clinic-records-server/internal/models"
	"clinic-records-server/internal/routes"
	"clinic-records-server/internal/store"
)

func newTestRouter(st store.PatientStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router, st, &config.Config{ListLimit: 100, ListMaxLimit: 500})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPatientLifecycle(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/patients", gin.H{
		"full_name": "Ama Owusu",
		"gender":    "Female",
		"age":       34,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "Ama Owusu", created["full_name"])
	id := int(created["id"].(float64))
	require.Equal(t, 1, id)

	// Read back
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Ama Owusu", got.FullName)
	assert.Equal(t, "Female", got.Gender)
	require.NotNil(t, got.Age)
	assert.Equal(t, 34, *got.Age)

	// Update
	time.Sleep(10 * time.Millisecond)
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/patients/%d", id), gin.H{
		"full_name": "Ama K. Owusu",
		"gender":    "Female",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Ama K. Owusu", updated.FullName)
	assert.Nil(t, updated.Age, "update overwrites fields wholesale")
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	// Delete
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/patients/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ama K. Owusu", decode(t, rec)["full_name"])

	// Gone
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/patients/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateValidation(t *testing.T) {
	st := store.NewMemoryStore()
	router := newTestRouter(st)

	cases := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"missing name", gin.H{"gender": "Female"}, "full_name"},
		{"blank name", gin.H{"full_name": "   ", "gender": "Female"}, "full_name"},
		{"missing gender", gin.H{"full_name": "Ama Owusu"}, "gender"},
		{"age too high", gin.H{"full_name": "Ama Owusu", "gender": "Female", "age": 200}, "age"},
		{"age negative", gin.H{"full_name": "Ama Owusu", "gender": "Female", "age": -1}, "age"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/patients", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.field, decode(t, rec)["field"])
		})
	}

	// No rows were created by any rejected payload
	rec := doJSON(t, router, http.MethodGet, "/api/patients/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestUpdateValidatesLikeCreate(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rec := doJSON(t, router, http.MethodPost, "/api/patients", gin.H{"full_name": "Ama Owusu", "gender": "Female"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/patients/1", gin.H{"full_name": "", "gender": "Female"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "full_name", decode(t, rec)["field"])
}

func TestDeleteMissingLeavesCountUnchanged(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rec := doJSON(t, router, http.MethodPost, "/api/patients", gin.H{"full_name": "Ama Owusu", "gender": "Female"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/patients/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/patients/count", nil)
	assert.Equal(t, float64(1), decode(t, rec)["count"])
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := doJSON(t, router, method, "/api/patients/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	for _, p := range []gin.H{
		{"full_name": "Ama Owusu", "gender": "Female"},
		{"full_name": "Kofi Mensah", "gender": "Male"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/patients", p)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/patients/search?name=owusu", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	patients := body["patients"].([]interface{})
	require.Len(t, patients, 1)
	assert.Equal(t, "Ama Owusu", patients[0].(map[string]interface{})["full_name"])
	assert.Equal(t, float64(1), body["total"])

	// name parameter is required on the search route
	rec = doJSON(t, router, http.MethodGet, "/api/patients/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name", decode(t, rec)["field"])
}

func TestListUsesEnvelopeAndPreviewOrder(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rec := doJSON(t, router, http.MethodPost, "/api/patients", gin.H{"full_name": "Zainab Iddrisu", "gender": "Female"})
	require.Equal(t, http.StatusCreated, rec.Code)
	time.Sleep(10 * time.Millisecond)
	rec = doJSON(t, router, http.MethodPost, "/api/patients", gin.H{"full_name": "Ama Owusu", "gender": "Female"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Default order: alphabetical, wrapped in the envelope
	rec = doJSON(t, router, http.MethodGet, "/api/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	patients := body["patients"].([]interface{})
	require.Len(t, patients, 2)
	assert.Equal(t, "Ama Owusu", patients[0].(map[string]interface{})["full_name"])
	assert.Equal(t, float64(2), body["total"])

	// Preview: newest first
	rec = doJSON(t, router, http.MethodGet, "/api/patients?preview=true&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	patients = decode(t, rec)["patients"].([]interface{})
	require.Len(t, patients, 1)
	assert.Equal(t, "Ama Owusu", patients[0].(map[string]interface{})["full_name"])

	// List with a name parameter behaves as search
	rec = doJSON(t, router, http.MethodGet, "/api/patients?name=zainab", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	patients = decode(t, rec)["patients"].([]interface{})
	require.Len(t, patients, 1)
	assert.Equal(t, "Zainab Iddrisu", patients[0].(map[string]interface{})["full_name"])
}
