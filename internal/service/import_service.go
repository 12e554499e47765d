package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pc-crazy/product-analytics-api/internal/models"
	"github.com/pc-crazy/product-analytics-api/internal/utils"
)

// CategoryStore resolves categories by name during import.
type CategoryStore interface {
	GetOrCreate(name string) (*models.Category, error)
}

// ProductStore persists product batches during import.
type ProductStore interface {
	BulkInsertIgnoreConflicts(products []models.NewProduct) (int64, error)
}

// requiredColumns must all be present in the CSV header. Extra columns are
// ignored; lookup is by header name, not position.
var requiredColumns = []string{"name", "category", "price", "stock"}

// ImportReport summarizes an import run. Inserted can be lower than
// Submitted: rows whose name collides with an existing product are silently
// dropped by the conflict-ignoring bulk insert.
type ImportReport struct {
	Submitted int
	Inserted  int64
	Skipped   int
}

// ImportService streams a CSV file of products into the catalog. Bad rows
// are skipped with a warning; only a missing file, a missing required
// header, or an unexpected stream error abort the run. Batches flushed
// before an abort stay persisted.
type ImportService struct {
	categories CategoryStore
	products   ProductStore
	batchSize  int
}

// NewImportService constructs an ImportService flushing in batches of batchSize.
func NewImportService(categories CategoryStore, products ProductStore, batchSize int) *ImportService {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &ImportService{categories: categories, products: products, batchSize: batchSize}
}

// Run imports the CSV file at path and returns the run report.
func (s *ImportService) Run(path string) (*ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", utils.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.runStream(f)
}

// runStream processes an already-open CSV stream. Split out so tests can
// feed an in-memory reader.
func (s *ImportService) runStream(r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	// Rows may be ragged; missing trailing fields read as empty.
	reader.FieldsPerRecord = -1

	columns, err := s.readHeader(reader)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	// Categories already resolved this run; saves a round trip per row.
	resolved := make(map[string]int)
	batch := make([]models.NewProduct, 0, s.batchSize)

	rowNum := 1 // header row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Stream is broken; keep what was already flushed, drop the
			// unflushed batch, surface one top-level error.
			return report, fmt.Errorf("failed to process CSV: %w", err)
		}
		rowNum++

		product, ok := s.parseRow(record, columns, rowNum)
		if !ok {
			report.Skipped++
			continue
		}

		if product.categoryName != "" {
			id, found := resolved[product.categoryName]
			if !found {
				category, err := s.categories.GetOrCreate(product.categoryName)
				if err != nil {
					return report, fmt.Errorf("failed to resolve category %q: %w", product.categoryName, err)
				}
				id = category.ID
				resolved[product.categoryName] = id
			}
			categoryID := id
			product.row.CategoryID = &categoryID
		}

		batch = append(batch, product.row)
		report.Submitted++

		if len(batch) >= s.batchSize {
			if err := s.flush(&batch, report); err != nil {
				return report, err
			}
		}
	}

	if err := s.flush(&batch, report); err != nil {
		return report, err
	}
	return report, nil
}

// readHeader reads the header row and returns a name -> column index map,
// failing when a required column is absent.
func (s *ImportService) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	// Files exported on Windows often carry a UTF-8 BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", utils.ErrMissingColumn, name)
		}
	}
	return columns, nil
}

// parsedRow pairs a pending product with its not-yet-resolved category name.
type parsedRow struct {
	row          models.NewProduct
	categoryName string
}

// parseRow validates one data row. Invalid rows are logged with their
// 1-indexed row number (header is row 1) and reported as not ok.
func (s *ImportService) parseRow(record []string, columns map[string]int, rowNum int) (parsedRow, bool) {
	field := func(name string) string {
		idx := columns[name]
		if idx < len(record) {
			return record[idx]
		}
		return ""
	}

	name := strings.TrimSpace(field("name"))
	if name == "" {
		log.Warn().Int("row", rowNum).Msg("missing product name, skipping")
		return parsedRow{}, false
	}

	priceRaw := strings.TrimSpace(field("price"))
	price, err := decimal.NewFromString(priceRaw)
	if err != nil || price.IsNegative() {
		log.Warn().Int("row", rowNum).Str("price", priceRaw).Msg("invalid price, skipping")
		return parsedRow{}, false
	}

	stockRaw := strings.TrimSpace(field("stock"))
	stock, err := strconv.Atoi(stockRaw)
	if err != nil || stock < 0 {
		log.Warn().Int("row", rowNum).Str("stock", stockRaw).Msg("invalid stock, skipping")
		return parsedRow{}, false
	}

	return parsedRow{
		row: models.NewProduct{
			Name: name,
			// numeric(10,2) would round on insert anyway; rounding here keeps
			// the in-memory value in sync with what lands in the table.
			Price: decimal.NewNullDecimal(price.Round(2)),
			Stock: &stock,
		},
		categoryName: strings.TrimSpace(field("category")),
	}, true
}

// flush persists the pending batch and folds the outcome into the report.
func (s *ImportService) flush(batch *[]models.NewProduct, report *ImportReport) error {
	if len(*batch) == 0 {
		return nil
	}
	inserted, err := s.products.BulkInsertIgnoreConflicts(*batch)
	if err != nil {
		return fmt.Errorf("failed to insert product batch: %w", err)
	}
	report.Inserted += inserted
	log.Info().Int("submitted", report.Submitted).Int64("inserted", report.Inserted).Msg("import progress")
	*batch = (*batch)[:0]
	return nil
}
