package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"vibecommerce/internal/domain"
)

type ProductWriter interface {
	Insert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a catalog CSV (name, price, description, image, category)
// and inserts/updates products by name. Prices are decimal dollars in the
// file and stored as cents.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.Insert(ctx, *p); err != nil {
			return imported, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	priceStr := pick(record, index, "price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q for product %q", priceStr, name)
	}
	if price < 0 {
		return nil, fmt.Errorf("negative price for product %q", name)
	}

	return &domain.Product{
		Name:        name,
		PriceCents:  int64(math.Round(price * 100)),
		Description: pick(record, index, "description"),
		ImageURL:    pick(record, index, "image"),
		Category:    pick(record, index, "category"),
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
