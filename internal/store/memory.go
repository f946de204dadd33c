package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-records-server/internal/models"
)

// MemoryStore is an in-memory PatientStore with the same semantics as the
// PostgreSQL implementation. It backs the handler tests; nothing stops it
// being used as a throwaway store in development.
type MemoryStore struct {
	mu       sync.RWMutex
	patients map[uint]models.Patient
	nextID   uint
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		patients: make(map[uint]models.Patient),
		nextID:   1,
	}
}

// Create inserts a new patient and fills in its ID and timestamps.
func (s *MemoryStore) Create(_ context.Context, patient *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	patient.ID = s.nextID
	s.nextID++
	patient.CreatedAt = now
	patient.UpdatedAt = now
	s.patients[patient.ID] = *patient
	return nil
}

// GetByID returns one patient or ErrNotFound.
func (s *MemoryStore) GetByID(_ context.Context, id uint) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patient, ok := s.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &patient, nil
}

// Update overwrites every mutable field of the addressed patient.
func (s *MemoryStore) Update(_ context.Context, id uint, patient *models.Patient) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.patients[id]
	if !ok {
		return nil, ErrNotFound
	}

	existing.FullName = patient.FullName
	existing.PhoneNumber = patient.PhoneNumber
	existing.Address = patient.Address
	existing.Age = patient.Age
	existing.Gender = patient.Gender
	existing.DateOfBirth = patient.DateOfBirth
	existing.LastDiagnosis = patient.LastDiagnosis
	existing.UpdatedAt = time.Now()
	s.patients[id] = existing

	updated := existing
	return &updated, nil
}

// Delete removes the addressed patient and returns its full name.
func (s *MemoryStore) Delete(_ context.Context, id uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.patients[id]
	if !ok {
		return "", ErrNotFound
	}
	delete(s.patients, id)
	return existing.FullName, nil
}

// Search returns patients whose full name contains the text, case-insensitively.
func (s *MemoryStore) Search(_ context.Context, name string, limit, offset int) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	var matched []models.Patient
	for _, p := range s.patients {
		if strings.Contains(strings.ToLower(p.FullName), needle) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].FullName < matched[j].FullName })
	return window(matched, limit, offset), nil
}

// List returns patients ordered per opts.
func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		all = append(all, p)
	}
	if opts.NewestFirst {
		sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	} else {
		sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	}
	return window(all, opts.Limit, opts.Offset), nil
}

// Count returns the total number of patients.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.patients)), nil
}

// Stats returns the aggregate snapshot.
func (s *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{
		ByGender:   make(map[string]int64),
		ByAgeGroup: make(map[string]int64),
	}
	now := time.Now()
	for _, p := range s.patients {
		stats.TotalPatients++
		if p.CreatedAt.After(now.AddDate(0, 0, -7)) {
			stats.NewLast7Days++
		}
		if p.CreatedAt.After(now.AddDate(0, 0, -30)) {
			stats.NewLast30Days++
		}
		stats.ByGender[p.Gender]++
		if p.Age != nil {
			stats.ByAgeGroup[AgeGroupFor(*p.Age)]++
		}
	}
	return stats, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// window applies limit/offset to an already ordered slice.
func window(rows []models.Patient, limit, offset int) []models.Patient {
	if offset >= len(rows) {
		return []models.Patient{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
