package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cafe-pos/internal/catalog"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/model"
	"cafe-pos/internal/repository"
	"cafe-pos/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleService(testDB *TestDB) service.SaleService {
	logger := zerolog.Nop()
	return service.NewSaleService(
		repository.NewTransactionRepository(testDB.Pool, logger),
		repository.NewMenuRepository(testDB.Pool, logger),
		metrics.New(),
		logger,
	)
}

func singleLatteSale(key *uuid.UUID) *model.SaleRequest {
	total := decimal.NewFromInt(25000)
	return &model.SaleRequest{
		Items:          []model.SaleItemRequest{{Name: "Latte", Price: decimal.NewFromInt(25000)}},
		Total:          &total,
		Method:         "qris",
		DineType:       "takeaway",
		IdempotencyKey: key,
	}
}

func TestSaleService_Concurrency_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	sales := newSaleService(testDB)
	ctx := context.Background()

	t.Run("concurrent sales never lose a decrement", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenu(t, testDB.Pool)

		const sellers = 15
		var wg sync.WaitGroup
		errs := make(chan error, sellers)

		for range sellers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := sales.RecordSale(ctx, singleLatteSale(nil))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		// Stock has no floor, so overselling 10 Lattes by 5 goes negative.
		assert.Equal(t, 10-sellers, StockOf(t, testDB.Pool, "Latte"))
		assert.Equal(t, sellers, CountRows(t, testDB.Pool, "transactions"))
		assert.Equal(t, sellers, CountRows(t, testDB.Pool, "transaction_items"))
	})

	t.Run("concurrent retries with one key record one sale", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedMenu(t, testDB.Pool)

		key := uuid.New()
		const retries = 8

		var wg sync.WaitGroup
		results := make(chan *model.SaleResult, retries)

		for range retries {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := sales.RecordSale(ctx, singleLatteSale(&key))
				if assert.NoError(t, err) {
					results <- res
				}
			}()
		}
		wg.Wait()
		close(results)

		ids := map[int64]struct{}{}
		replayed := 0
		for res := range results {
			ids[res.TransactionID] = struct{}{}
			if res.Replayed {
				replayed++
			}
		}

		assert.Len(t, ids, 1)
		assert.Equal(t, retries-1, replayed)
		assert.Equal(t, 1, CountRows(t, testDB.Pool, "transactions"))
		assert.Equal(t, 9, StockOf(t, testDB.Pool, "Latte"))
	})
}

func TestCatalogImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)
	SeedMenu(t, testDB.Pool)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("name,price,stock,min_stock,category,description,image\n" +
		"Latte,27000,30,8,coffee,,\n" +
		"Matcha,28000,12,,tea,Ceremonial grade,\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "menu.csv.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	logger := zerolog.Nop()
	menuRepo := repository.NewMenuRepository(testDB.Pool, logger)
	importer := catalog.NewImporter(catalog.NewRoutingSource(nil, catalog.NewFileSource(logger)), menuRepo, logger)

	result, err := importer.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	items, err := menuRepo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 3)

	byName := map[string]model.MenuItem{}
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.Equal(t, 30, byName["Latte"].Stock)
	assert.Equal(t, 8, byName["Latte"].MinStock)
	assert.True(t, decimal.NewFromInt(27000).Equal(byName["Latte"].Price))
	assert.Equal(t, model.DefaultMinStock, byName["Matcha"].MinStock)
	assert.Equal(t, 5, byName["Croissant"].Stock)
}
