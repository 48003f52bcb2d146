package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmpark/company-catalog-backend/config"
	"github.com/jmpark/company-catalog-backend/internal/db"
	"github.com/jmpark/company-catalog-backend/internal/loader"
	"github.com/xuri/excelize/v2"
)

// Standalone bulk loader. Accepts the trilingual company snapshot as .csv
// or .xlsx with columns [name_ko, name_en, name_ja, tags_ko, tags_en,
// tags_ja], tag lists pipe-delimited, header row skipped.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <csv_or_xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	bulkLoader := loader.New(db.GetDB())

	var result *loader.Result
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		rows, err := readRowsFromXLSX(filePath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		fmt.Printf("Total rows to import: %d\n", len(rows))
		result, err = bulkLoader.LoadRows(rows)
		if err != nil {
			log.Fatal("Failed to import rows:", err)
		}
	default:
		result, err = bulkLoader.LoadCSV(filePath)
		if err != nil {
			log.Fatal("Failed to import CSV:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Companies created: %d, already present: %d, failed rows: %d\n",
		result.Created, result.Skipped, result.Failed)
}

func readRowsFromXLSX(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	// Skip header row
	return rows[1:], nil
}
