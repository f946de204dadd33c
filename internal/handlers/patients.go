package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-records-server/internal/config"
	"clinic-records-server/internal/middleware"
	"clinic-records-server/internal/models"
	"clinic-records-server/internal/store"
	"clinic-records-server/internal/utils"
)

// PatientHandler handles patient CRUD and search requests.
type PatientHandler struct {
	Store        store.PatientStore
	defaultLimit int
	maxLimit     int
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(s store.PatientStore, cfg *config.Config) *PatientHandler {
	return &PatientHandler{
		Store:        s,
		defaultLimit: cfg.ListLimit,
		maxLimit:     cfg.ListMaxLimit,
	}
}

// PatientRequest is the request body for creating or updating a patient.
// Create and update validate identically; update overwrites every field.
type PatientRequest struct {
	FullName      string `json:"full_name" validate:"required,notblank"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	Age           *int   `json:"age" validate:"omitempty,min=0,max=150"`
	Gender        string `json:"gender" validate:"required,notblank"`
	DateOfBirth   string `json:"date_of_birth"`
	LastDiagnosis string `json:"last_diagnosis"`
}

// toModel converts the request into a Patient, trimming free-text fields.
func (r *PatientRequest) toModel() models.Patient {
	return models.Patient{
		FullName:      strings.TrimSpace(r.FullName),
		PhoneNumber:   strings.TrimSpace(r.PhoneNumber),
		Address:       strings.TrimSpace(r.Address),
		Age:           r.Age,
		Gender:        strings.TrimSpace(r.Gender),
		DateOfBirth:   strings.TrimSpace(r.DateOfBirth),
		LastDiagnosis: strings.TrimSpace(r.LastDiagnosis),
	}
}

// CreatePatient handles adding a new patient record.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := req.toModel()
	if err := h.Store.Create(c.Request.Context(), &patient); err != nil {
		h.storeError(c, "create patient", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        patient.ID,
		"full_name": patient.FullName,
		"message":   "Patient added successfully",
	})
}

// GetPatientByID handles fetching a single patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}

	patient, err := h.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "get patient", err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdatePatient handles overwriting a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}

	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := req.toModel()
	updated, err := h.Store.Update(c.Request.Context(), id, &patient)
	if err != nil {
		h.storeError(c, "update patient", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePatient handles removing a patient record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := patientID(c)
	if !ok {
		return
	}

	name, err := h.Store.Delete(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, "delete patient", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"full_name": name,
		"message":   fmt.Sprintf("Patient %q has been deleted successfully", name),
	})
}

// ListPatients handles fetching all patients, or searching when a name
// parameter is present. The preview flag switches the order to most recently
// created, for dashboard previews.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	limit, offset := h.paging(c)

	var (
		patients []models.Patient
		err      error
	)
	if name := c.Query("name"); name != "" {
		patients, err = h.Store.Search(c.Request.Context(), name, limit, offset)
	} else {
		patients, err = h.Store.List(c.Request.Context(), store.ListOptions{
			Limit:       limit,
			Offset:      offset,
			NewestFirst: c.Query("preview") == "true",
		})
	}
	if err != nil {
		h.storeError(c, "list patients", err)
		return
	}
	utils.Collection(c, patients)
}

// SearchPatients handles name-only search; the name parameter is required.
func (h *PatientHandler) SearchPatients(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		utils.BadRequestField(c, "name", "name is required")
		return
	}

	limit, offset := h.paging(c)
	patients, err := h.Store.Search(c.Request.Context(), name, limit, offset)
	if err != nil {
		h.storeError(c, "search patients", err)
		return
	}
	utils.Collection(c, patients)
}

// CountPatients handles fetching the total patient count.
func (h *PatientHandler) CountPatients(c *gin.Context) {
	count, err := h.Store.Count(c.Request.Context())
	if err != nil {
		h.storeError(c, "count patients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// paging reads limit/offset query parameters, applying the configured default
// and cap. Unparseable values fall back to the defaults.
func (h *PatientHandler) paging(c *gin.Context) (limit, offset int) {
	limit = h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// storeError maps a store error onto the HTTP error taxonomy. Internal
// details are logged with the request ID and never sent to the client.
func (h *PatientHandler) storeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFound(c, "Patient not found")
	case errors.Is(err, store.ErrConflict):
		utils.Conflict(c, "Patient conflicts with an existing record")
	default:
		reqID, _ := middleware.GetRequestID(c)
		log.Printf("[%s] %s: %v", reqID, op, err)
		utils.InternalServerError(c, "Database error")
	}
}

// patientID parses the :id path parameter, responding 400 when it is not a
// positive integer.
func patientID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.BadRequestField(c, "id", "Invalid patient ID")
		return 0, false
	}
	return uint(id), true
}
