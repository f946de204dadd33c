// Package importer parses patient CSV exports for bulk loading.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"clinic-records-server/internal/models"
)

// Parse reads a CSV whose header row names patient columns (full_name,
// phone_number, address, age, gender, date_of_birth, last_diagnosis) and
// returns one Patient per data row. Column order is free; unknown columns are
// ignored. Ages that do not parse are imported as absent rather than
// rejecting the row.
func Parse(r io.Reader) ([]models.Patient, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var patients []models.Patient
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		patient := models.Patient{
			FullName:      field(row, "full_name"),
			PhoneNumber:   field(row, "phone_number"),
			Address:       field(row, "address"),
			Gender:        field(row, "gender"),
			DateOfBirth:   field(row, "date_of_birth"),
			LastDiagnosis: field(row, "last_diagnosis"),
		}
		if raw := field(row, "age"); raw != "" {
			if age, err := strconv.Atoi(raw); err == nil {
				patient.Age = &age
			}
		}
		patients = append(patients, patient)
	}
	return patients, nil
}
