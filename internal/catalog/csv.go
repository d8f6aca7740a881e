package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/smartbyte/shopassist/internal/domain"
)

// UploadStats summarises one CSV import
type UploadStats struct {
	TotalRows int      `json:"total_rows"`
	Loaded    int      `json:"loaded"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// Expected CSV header: sku,name,brand,product_type,category,price,stock,description
const expectedColumns = 8

// LoadCSV replaces the inventory with rows parsed from r. Rows that fail
// to parse are skipped and reported in the stats rather than aborting
// the import.
func (c *Catalog) LoadCSV(r io.Reader) (*UploadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = expectedColumns

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != expectedColumns || !strings.EqualFold(header[0], "sku") {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}

	stats := &UploadStats{Errors: []string{}}
	var products []domain.Product

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.TotalRows++
		if err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("row %d: %v", stats.TotalRows, err))
			continue
		}

		product, err := parseRow(record, len(products)+1)
		if err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("row %d: %v", stats.TotalRows, err))
			continue
		}

		products = append(products, product)
		stats.Loaded++
	}

	c.Replace(products)
	return stats, nil
}

// LoadFile loads the inventory from a CSV file on disk
func (c *Catalog) LoadFile(path string) (*UploadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return c.LoadCSV(f)
}

func parseRow(record []string, id int) (domain.Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q", record[5])
	}

	stock, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid stock %q", record[6])
	}

	sku := strings.TrimSpace(record[0])
	if sku == "" {
		return domain.Product{}, fmt.Errorf("missing sku")
	}

	return domain.Product{
		ID:          id,
		SKU:         sku,
		Name:        strings.TrimSpace(record[1]),
		Brand:       strings.TrimSpace(record[2]),
		ProductType: strings.TrimSpace(record[3]),
		Category:    strings.TrimSpace(record[4]),
		Price:       price,
		Stock:       stock,
		Description: strings.TrimSpace(record[7]),
	}, nil
}
