// Command import-csv bulk-loads patient records from a CSV export into the
// clinic database, through the same store the server uses.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"clinic-records-server/internal/config"
	"clinic-records-server/internal/importer"
	"clinic-records-server/internal/models"
	"clinic-records-server/internal/store"
)

func main() {
	file := flag.String("file", "", "path to the CSV file to import")
	truncate := flag.Bool("truncate", false, "delete all existing patients before importing")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: import-csv -file patients.csv [-truncate]")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	st := store.NewGormStore(db)
	defer st.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening CSV: %v", err)
	}
	defer f.Close()

	patients, err := importer.Parse(f)
	if err != nil {
		log.Fatalf("Error parsing CSV: %v", err)
	}
	log.Printf("Found %d patients in %s", len(patients), *file)

	ctx := context.Background()

	if *truncate {
		log.Println("Clearing existing patients...")
		if err := db.WithContext(ctx).Exec("DELETE FROM patients").Error; err != nil {
			log.Fatalf("Error clearing patients: %v", err)
		}
	}

	imported := 0
	for i := range patients {
		if err := st.Create(ctx, &patients[i]); err != nil {
			log.Printf("Skipping row %d (%s): %v", i+1, patients[i].FullName, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d of %d patients", imported, len(patients))
}
