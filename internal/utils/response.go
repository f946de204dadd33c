package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-records-server/internal/models"
)

// ErrorResponse is the error payload shape for every failing request. Field
// is set when a validation failure can name the offending input.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// PatientList is the envelope for every collection-returning endpoint.
type PatientList struct {
	Patients []models.Patient `json:"patients"`
	Total    int              `json:"total"`
}

// Collection sends the standard envelope for a list of patients.
func Collection(c *gin.Context, patients []models.Patient) {
	if patients == nil {
		patients = []models.Patient{}
	}
	c.JSON(http.StatusOK, PatientList{Patients: patients, Total: len(patients)})
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ErrorResponse{Error: errorMessage})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// BadRequestField sends a 400 naming the input field that failed validation.
func BadRequestField(c *gin.Context, field, errorMessage string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: errorMessage, Field: field})
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, errorMessage string) {
	Error(c, http.StatusConflict, errorMessage)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, errorMessage)
}
