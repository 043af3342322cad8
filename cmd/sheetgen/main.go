package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"route-planner-service/internal/config"
)

// sheetgen writes a customers workbook so the workbook backend can be
// tried without Google credentials. Rows come from a JSON seed file
// when one exists, otherwise from a built-in sample list.

type seedRecord struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

var sampleRecords = []seedRecord{
	{Name: "Alice Johnson", Address: "1 Main St, Springfield, IL"},
	{Name: "Bob Rivera", Address: "2 Oak Ave, Springfield, IL"},
	{Name: "Carol Chen", Address: "3 Elm Rd, Springfield, IL"},
	{Name: "Dana Whitfield", Address: "4 Pine Ct, Springfield, IL"},
	{Name: "Evan Sorensen", Address: "5 Birch Ln, Springfield, IL"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dir := config.Get("WORKBOOK_DIR", "data")
	seedPath := config.Get("SEED_PATH", "data/seeds/customers.json")
	name := config.Get("WORKBOOK_NAME", "customers.xlsx")

	records, err := loadSeed(seedPath)
	if err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(dir, name)
	if err := writeWorkbook(path, records); err != nil {
		log.Fatal(err)
	}

	log.Printf("Wrote %d customers to %s", len(records), path)
}

func loadSeed(path string) ([]seedRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Seed file %s not found, using built-in sample data", path)
		return sampleRecords, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seed file %s has no records", path)
	}
	return records, nil
}

func writeWorkbook(path string, records []seedRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workbook dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "Name"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Address"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Name); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Address); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
