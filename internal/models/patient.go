package models

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Patient represents a patient record held by the clinic.
type Patient struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FullName      string    `gorm:"type:text;not null" json:"full_name"`
	PhoneNumber   string    `gorm:"type:text" json:"phone_number,omitempty"`
	Address       string    `gorm:"type:text" json:"address,omitempty"`
	Age           *int      `json:"age,omitempty"`
	Gender        string    `gorm:"type:text;not null" json:"gender"`
	DateOfBirth   string    `gorm:"type:text" json:"date_of_birth,omitempty"`
	LastDiagnosis string    `gorm:"type:text" json:"last_diagnosis,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations (not always preloaded)
	Visits []Visit `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// Visit represents a single patient visit. The table is migrated for future
// visit-history tracking; no current code path writes or reads it.
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PatientID uint      `gorm:"index;not null" json:"patient_id"`
	VisitDate time.Time `json:"visit_date"`
	Diagnosis string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment string    `gorm:"type:text" json:"treatment,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	// Connect to PostgreSQL database. TranslateError maps driver-level
	// constraint failures onto gorm.ErrDuplicatedKey / ErrForeignKeyViolated.
	db, err := gorm.Open(postgres.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = db.AutoMigrate(
		&Patient{},
		&Visit{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
