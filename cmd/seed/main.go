package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/patriotthanks/patriotthanks-backend/config"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected XLSX columns:
//
//	0: name, 1: business type, 2: description, 3: website, 4: phone,
//	5: email, 6: street address, 7: city, 8: state code, 9: zip code,
//	10: latitude, 11: longitude
const requiredColumns = 12

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
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
	if err := db.Seed(); err != nil {
		log.Fatal("Failed to seed lookup data:", err)
	}

	businessRepo := repository.NewBusinessRepository(db.GetDB())
	lookupRepo := repository.NewLookupRepository(db.GetDB())

	typeIDs, err := loadBusinessTypeIDs(lookupRepo)
	if err != nil {
		log.Fatal("Failed to load business types:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	businesses, skipped, err := readBusinessesFromXLSX(filePath, typeIDs)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total businesses to import: %d (skipped %d rows)\n", len(businesses), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := businessRepo.BulkCreate(businesses, batchSize); err != nil {
		log.Fatal("Failed to bulk create businesses:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total businesses imported: %d\n", len(businesses))
}

func loadBusinessTypeIDs(lookupRepo repository.LookupRepository) (map[string]uint, error) {
	types, err := lookupRepo.FindAllBusinessTypes()
	if err != nil {
		return nil, err
	}

	ids := make(map[string]uint, len(types))
	for _, t := range types {
		ids[strings.ToLower(t.Name)] = t.ID
	}
	return ids, nil
}

func readBusinessesFromXLSX(filePath string, typeIDs map[string]uint) ([]model.Business, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	otherTypeID := typeIDs["other"]

	var businesses []model.Business
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		// Header row
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < requiredColumns {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		typeName := strings.TrimSpace(row[1])
		street := strings.TrimSpace(row[6])
		city := strings.TrimSpace(row[7])
		stateCode := strings.ToUpper(strings.TrimSpace(row[8]))
		zipCode := strings.TrimSpace(row[9])

		if name == "" || street == "" || city == "" || stateCode == "" || zipCode == "" {
			skipped++
			continue
		}

		// Dedup on name + address
		key := strings.ToLower(name + "|" + street + "|" + city)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		typeID, ok := typeIDs[strings.ToLower(typeName)]
		if !ok {
			typeID = otherTypeID
		}

		business := model.Business{
			Name:           name,
			Description:    strings.TrimSpace(row[2]),
			Website:        strings.TrimSpace(row[3]),
			BusinessTypeID: typeID,
			IsActive:       true,
			Locations: []model.BusinessLocation{
				{
					Phone:     strings.TrimSpace(row[4]),
					Email:     strings.TrimSpace(row[5]),
					IsPrimary: true,
					IsActive:  true,
					Address: model.Address{
						StreetAddress: street,
						City:          city,
						StateCode:     stateCode,
						ZipCode:       zipCode,
						Latitude:      parseCoordinate(row[10]),
						Longitude:     parseCoordinate(row[11]),
					},
				},
			},
		}

		businesses = append(businesses, business)
	}

	return businesses, skipped, nil
}

func parseCoordinate(raw string) *float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &value
}
