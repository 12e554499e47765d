package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pc-crazy/product-analytics-api/internal/models"
	"github.com/pc-crazy/product-analytics-api/internal/utils"
)

// --- Mock stores ---

type mockCategoryStore struct {
	calls  int
	byName map[string]int
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{byName: map[string]int{}}
}

func (m *mockCategoryStore) GetOrCreate(name string) (*models.Category, error) {
	m.calls++
	id, ok := m.byName[name]
	if !ok {
		id = len(m.byName) + 1
		m.byName[name] = id
	}
	return &models.Category{ID: id, Name: name}, nil
}

type mockProductStore struct {
	batches [][]models.NewProduct

	// names already "persisted"; rows colliding with them count as conflicts
	existing map[string]bool
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{existing: map[string]bool{}}
}

func (m *mockProductStore) BulkInsertIgnoreConflicts(products []models.NewProduct) (int64, error) {
	batch := make([]models.NewProduct, len(products))
	copy(batch, products)
	m.batches = append(m.batches, batch)

	var inserted int64
	for _, p := range products {
		if !m.existing[p.Name] {
			m.existing[p.Name] = true
			inserted++
		}
	}
	return inserted, nil
}

func (m *mockProductStore) all() []models.NewProduct {
	var out []models.NewProduct
	for _, b := range m.batches {
		out = append(out, b...)
	}
	return out
}

// --- Tests ---

func TestImportFileNotFound(t *testing.T) {
	svc := NewImportService(newMockCategoryStore(), newMockProductStore(), 1000)

	_, err := svc.Run(filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrFileNotFound)
}

func TestImportMissingRequiredColumn(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 1000)

	csv := "name,category,price\nWidget,Tools,9.99\n"
	_, err := svc.runStream(strings.NewReader(csv))

	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMissingColumn)
	assert.Contains(t, err.Error(), "stock")
	assert.Empty(t, products.batches, "no rows must be inserted when a header is missing")
}

func TestImportHeaderOrderIndependent(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 1000)

	csv := "stock,extra,name,price,category\n4,ignored,Widget,9.99,Tools\n"
	report, err := svc.runStream(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, report.Submitted)
	rows := products.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, 4, *rows[0].Stock)
	assert.True(t, rows[0].Price.Decimal.Equal(decimal.RequireFromString("9.99")))
}

func TestImportSkipsInvalidRows(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 1000)

	csv := strings.Join([]string{
		"name,category,price,stock",
		",Tools,1.00,1",        // missing name
		"   ,Tools,1.00,1",     // whitespace-only name
		"NoPrice,Tools,,1",     // empty price
		"BadPrice,Tools,abc,1", // unparseable price
		"NegPrice,Tools,-1,1",  // negative price
		"BadStock,Tools,1.00,x",
		"NegStock,Tools,1.00,-3",
		"Good,Tools,1.00,3",
	}, "\n") + "\n"

	report, err := svc.runStream(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 7, report.Skipped)
	assert.Equal(t, 1, report.Submitted)
	rows := products.all()
	require.Len(t, rows, 1)
	assert.Equal(t, "Good", rows[0].Name)
}

func TestImportValidRowInvariants(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 1000)

	csv := "name,category,price,stock\n  Widget ,Tools,3.555,7\n"
	report, err := svc.runStream(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, report.Submitted)
	rows := products.all()
	require.Len(t, rows, 1)

	// name trimmed; price non-negative with 2 decimal digits; stock >= 0
	assert.Equal(t, "Widget", rows[0].Name)
	require.True(t, rows[0].Price.Valid)
	assert.False(t, rows[0].Price.Decimal.IsNegative())
	assert.LessOrEqual(t, int32(2), -rows[0].Price.Decimal.Exponent())
	assert.True(t, rows[0].Price.Decimal.Equal(decimal.RequireFromString("3.56")))
	require.NotNil(t, rows[0].Stock)
	assert.GreaterOrEqual(t, *rows[0].Stock, 0)
}

func TestImportCategoryResolution(t *testing.T) {
	categories := newMockCategoryStore()
	products := newMockProductStore()
	svc := NewImportService(categories, products, 1000)

	csv := strings.Join([]string{
		"name,category,price,stock",
		"A,Tools,1.00,1",
		"B,  Tools  ,2.00,2", // same category after trim
		"C,,3.00,3",          // no category
		"D,   ,4.00,4",       // whitespace-only category
		"E,Garden,5.00,5",
	}, "\n") + "\n"

	report, err := svc.runStream(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 5, report.Submitted)
	// "Tools" looked up once (memoized), "Garden" once
	assert.Equal(t, 2, categories.calls)
	assert.Len(t, categories.byName, 2)

	rows := products.all()
	require.Len(t, rows, 5)
	toolsID := categories.byName["Tools"]
	require.NotNil(t, rows[0].CategoryID)
	assert.Equal(t, toolsID, *rows[0].CategoryID)
	require.NotNil(t, rows[1].CategoryID)
	assert.Equal(t, toolsID, *rows[1].CategoryID)
	assert.Nil(t, rows[2].CategoryID)
	assert.Nil(t, rows[3].CategoryID)
}

func TestImportBatching(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 2)

	var sb strings.Builder
	sb.WriteString("name,category,price,stock\n")
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		sb.WriteString(n + ",,1.00,1\n")
	}

	report, err := svc.runStream(strings.NewReader(sb.String()))

	require.NoError(t, err)
	assert.Equal(t, 5, report.Submitted)
	require.Len(t, products.batches, 3)
	assert.Len(t, products.batches[0], 2)
	assert.Len(t, products.batches[1], 2)
	assert.Len(t, products.batches[2], 1)
}

func TestImportDuplicateNamesSilentlyDropped(t *testing.T) {
	products := newMockProductStore()
	products.existing["Widget"] = true
	svc := NewImportService(newMockCategoryStore(), products, 1000)

	csv := "name,category,price,stock\nWidget,,1.00,1\nGadget,,2.00,2\n"
	report, err := svc.runStream(strings.NewReader(csv))

	// The conflicting row is dropped without error, the rest of the batch
	// still lands, and the report distinguishes submitted from inserted.
	require.NoError(t, err)
	assert.Equal(t, 2, report.Submitted)
	assert.Equal(t, int64(1), report.Inserted)
	assert.Equal(t, 0, report.Skipped)
}

func TestImportBrokenStreamAborts(t *testing.T) {
	products := newMockProductStore()
	svc := NewImportService(newMockCategoryStore(), products, 2)

	// Batch of 2 flushes, then an unterminated quote breaks the stream.
	csv := "name,category,price,stock\nA,,1.00,1\nB,,2.00,2\nC,,3.00,\"broken\n"
	report, err := svc.runStream(strings.NewReader(csv))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process CSV")
	// The flushed batch stays; the unflushed remainder is lost.
	require.Len(t, products.batches, 1)
	assert.Equal(t, int64(2), report.Inserted)
}
