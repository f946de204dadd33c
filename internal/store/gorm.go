package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"clinic-records-server/internal/models"
)

// GormStore is the PostgreSQL-backed PatientStore.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an initialized gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConflict
	default:
		return err
	}
}

// Create inserts a new patient and fills in its ID and timestamps.
func (s *GormStore) Create(ctx context.Context, patient *models.Patient) error {
	if err := s.db.WithContext(ctx).Create(patient).Error; err != nil {
		return translate(err)
	}
	return nil
}

// GetByID returns one patient or ErrNotFound.
func (s *GormStore) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// Update overwrites every mutable field in one conditional UPDATE, so a
// concurrently deleted row surfaces as ErrNotFound rather than racing a
// separate existence check. gorm refreshes updated_at as part of Updates.
func (s *GormStore) Update(ctx context.Context, id uint, patient *models.Patient) (*models.Patient, error) {
	res := s.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"full_name":      patient.FullName,
		"phone_number":   patient.PhoneNumber,
		"address":        patient.Address,
		"age":            patient.Age,
		"gender":         patient.Gender,
		"date_of_birth":  patient.DateOfBirth,
		"last_diagnosis": patient.LastDiagnosis,
	})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes the addressed patient and returns its full name. The name is
// read first for the confirmation message; the DELETE itself is conditional,
// so a row removed in between still yields ErrNotFound.
func (s *GormStore) Delete(ctx context.Context, id uint) (string, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).Select("id", "full_name").First(&patient, "id = ?", id).Error; err != nil {
		return "", translate(err)
	}

	res := s.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if res.Error != nil {
		return "", translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrNotFound
	}
	return patient.FullName, nil
}

// Search returns patients whose full name contains the text, case-insensitively.
func (s *GormStore) Search(ctx context.Context, name string, limit, offset int) ([]models.Patient, error) {
	var patients []models.Patient
	pattern := "%" + strings.ToLower(name) + "%"
	err := s.db.WithContext(ctx).
		Where("LOWER(full_name) LIKE ?", pattern).
		Order("full_name ASC").
		Limit(limit).
		Offset(offset).
		Find(&patients).Error
	if err != nil {
		return nil, translate(err)
	}
	return patients, nil
}

// List returns patients ordered per opts.
func (s *GormStore) List(ctx context.Context, opts ListOptions) ([]models.Patient, error) {
	order := "full_name ASC"
	if opts.NewestFirst {
		order = "created_at DESC"
	}

	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Order(order).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&patients).Error
	if err != nil {
		return nil, translate(err)
	}
	return patients, nil
}

// Count returns the total number of patients.
func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// groupCount receives one grouped aggregation row.
type groupCount struct {
	Label string
	Count int64
}

// Stats returns the aggregate snapshot: total, trailing-window counts, and
// counts grouped by gender and by age bucket.
func (s *GormStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByGender:   make(map[string]int64),
		ByAgeGroup: make(map[string]int64),
	}

	db := s.db.WithContext(ctx).Model(&models.Patient{})

	if err := db.Count(&stats.TotalPatients).Error; err != nil {
		return nil, translate(err)
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).
		Where("created_at >= ?", now.AddDate(0, 0, -7)).
		Count(&stats.NewLast7Days).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).
		Where("created_at >= ?", now.AddDate(0, 0, -30)).
		Count(&stats.NewLast30Days).Error; err != nil {
		return nil, translate(err)
	}

	var genders []groupCount
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).
		Select("gender AS label, COUNT(*) AS count").
		Group("gender").
		Scan(&genders).Error; err != nil {
		return nil, translate(err)
	}
	for _, g := range genders {
		stats.ByGender[g.Label] = g.Count
	}

	// Bucket boundaries must stay in sync with AgeGroupFor. NULL ages are
	// excluded from buckets.
	var ages []groupCount
	if err := s.db.WithContext(ctx).Model(&models.Patient{}).
		Select(`CASE
			WHEN age < 18 THEN 'under_18'
			WHEN age <= 35 THEN '18_35'
			WHEN age <= 50 THEN '36_50'
			WHEN age <= 65 THEN '51_65'
			ELSE 'over_65'
		END AS label, COUNT(*) AS count`).
		Where("age IS NOT NULL").
		Group("label").
		Scan(&ages).Error; err != nil {
		return nil, translate(err)
	}
	for _, a := range ages {
		stats.ByAgeGroup[a.Label] = a.Count
	}

	return stats, nil
}

// Ping reports whether the store is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return ErrUnavailable
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ErrUnavailable
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
