package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"inventory/m/domain"
	"inventory/m/internal/store"
)

// Importer is the part of the store the loader writes through.
type Importer interface {
	ImportCatalog(ctx context.Context, items []store.CatalogItem) (int, error)
}

// LoadCatalogFile imports the catalog CSV at path.
func LoadCatalogFile(ctx context.Context, st Importer, path string, log *zap.Logger) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()
	return LoadCatalog(ctx, st, file, log)
}

// LoadCatalog reads rows of category,name,price,quantity[,expireDate] after a
// header line and imports them in one transaction. Malformed rows are skipped.
func LoadCatalog(ctx context.Context, st Importer, r io.Reader, log *zap.Logger) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read catalog header: %w", err)
	}

	var items []store.CatalogItem
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn("unable to read catalog row", zap.Error(err))
			continue
		}
		item, err := parseRow(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			log.Warn("skipping catalog row", zap.Int("line", line), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		log.Info("catalog has no importable rows")
		return 0, nil
	}

	n, err := st.ImportCatalog(ctx, items)
	if err != nil {
		return 0, err
	}
	log.Info("seeded catalog", zap.Int("products", n))
	return n, nil
}

func parseRow(record []string) (store.CatalogItem, error) {
	if len(record) < 4 {
		return store.CatalogItem{}, fmt.Errorf("expected at least 4 columns, got %d", len(record))
	}
	category := strings.TrimSpace(record[0])
	if category == "" {
		return store.CatalogItem{}, errors.New("category is empty")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return store.CatalogItem{}, fmt.Errorf("price %q: %w", record[2], err)
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
	if err != nil {
		return store.CatalogItem{}, fmt.Errorf("quantity %q: %w", record[3], err)
	}
	in := domain.ProductInput{
		Name:       record[1],
		Quantity:   qty,
		Price:      domain.NewMoney(price),
		CategoryID: 1, // resolved by name on import
	}
	if len(record) > 4 {
		in.ExpireDate = record[4]
	}
	p, err := in.NewProduct()
	if err != nil {
		return store.CatalogItem{}, err
	}
	p.CategoryID = 0
	return store.CatalogItem{Category: category, Product: p}, nil
}
