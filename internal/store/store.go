// Package store is the query/command layer between the HTTP handlers and the
// record store. Handlers depend on the PatientStore interface only, so the
// production GORM implementation can be swapped for the in-memory one in
// tests.
package store

import (
	"context"
	"errors"

	"clinic-records-server/internal/models"
)

// Sentinel errors returned by every PatientStore implementation. Handlers map
// these onto HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("constraint violation")
	ErrUnavailable = errors.New("store unavailable")
)

// ListOptions bounds and orders a listing. NewestFirst switches the order
// from alphabetical by full name to most recently created.
type ListOptions struct {
	Limit       int
	Offset      int
	NewestFirst bool
}

// Stats is the aggregate snapshot served by the stats endpoints.
type Stats struct {
	TotalPatients int64            `json:"total_patients"`
	NewLast7Days  int64            `json:"new_last_7_days"`
	NewLast30Days int64            `json:"new_last_30_days"`
	ByGender      map[string]int64 `json:"by_gender"`
	ByAgeGroup    map[string]int64 `json:"by_age_group"`
}

// Age bucket labels used by Stats.ByAgeGroup. Rows without an age are counted
// in TotalPatients but in no bucket.
const (
	AgeGroupUnder18 = "under_18"
	AgeGroup18To35  = "18_35"
	AgeGroup36To50  = "36_50"
	AgeGroup51To65  = "51_65"
	AgeGroupOver65  = "over_65"
)

// AgeGroupFor returns the bucket label for an age.
func AgeGroupFor(age int) string {
	switch {
	case age < 18:
		return AgeGroupUnder18
	case age <= 35:
		return AgeGroup18To35
	case age <= 50:
		return AgeGroup36To50
	case age <= 65:
		return AgeGroup51To65
	default:
		return AgeGroupOver65
	}
}

// PatientStore defines the operations available against the record store.
// Every operation is a single round trip; none open a transaction.
type PatientStore interface {
	// Create inserts a new patient and fills in its ID and timestamps.
	Create(ctx context.Context, patient *models.Patient) error

	// GetByID returns one patient or ErrNotFound.
	GetByID(ctx context.Context, id uint) (*models.Patient, error)

	// Update overwrites every mutable field of the addressed patient in a
	// single conditional statement and returns the updated row. Zero rows
	// affected reports ErrNotFound.
	Update(ctx context.Context, id uint, patient *models.Patient) (*models.Patient, error)

	// Delete removes the addressed patient, returning its full name for
	// confirmation messaging. Zero rows affected reports ErrNotFound.
	Delete(ctx context.Context, id uint) (string, error)

	// Search returns patients whose full name contains the text,
	// case-insensitively, ordered alphabetically. An empty result is not an
	// error.
	Search(ctx context.Context, name string, limit, offset int) ([]models.Patient, error)

	// List returns patients ordered per opts.
	List(ctx context.Context, opts ListOptions) ([]models.Patient, error)

	// Count returns the total number of patients.
	Count(ctx context.Context) (int64, error)

	// Stats returns the aggregate snapshot.
	Stats(ctx context.Context) (*Stats, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
