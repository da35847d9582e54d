package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cafe-pos/internal/model"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrInvalidRow is returned when a catalogue row cannot be imported.
var ErrInvalidRow = errors.New("invalid catalogue row")

// menuRow is one CSV record. Numeric columns are kept as text so that blank
// cells and bad values produce row-level errors.
type menuRow struct {
	Name        string `csv:"name"`
	Price       string `csv:"price"`
	Stock       string `csv:"stock"`
	MinStock    string `csv:"min_stock"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Image       string `csv:"image"`
}

// Importer loads menu items from a catalogue file into the menu store.
type Importer struct {
	source Source
	menu   MenuWriter
	logger zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(source Source, menu MenuWriter, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		menu:   menu,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import reads the catalogue at location and upserts every row by name.
// All rows are validated before anything is written, so a malformed file
// leaves the menu untouched.
func (i *Importer) Import(ctx context.Context, location string) (*Result, error) {
	rc, err := i.source.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	in, err := decompress(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", location, err)
	}

	var rows []*menuRow
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %w", location, err)
	}

	items := make([]*model.MenuItem, 0, len(rows))
	for n, row := range rows {
		item, err := row.toMenuItem()
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("%w at line %d: %v", ErrInvalidRow, n+2, err)
		}
		items = append(items, item)
	}

	result := &Result{Rows: len(rows)}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			i.logger.Warn().Int("imported", result.Imported).Msg("catalogue import cancelled")
			return result, err
		}
		if err := i.menu.Upsert(ctx, item); err != nil {
			return result, fmt.Errorf("failed to import %q: %w", item.Name, err)
		}
		result.Imported++
	}

	i.logger.Info().
		Str("location", location).
		Int("items_imported", result.Imported).
		Msg("catalogue imported")

	return result, nil
}

// decompress transparently unwraps gzip input and passes plain CSV through.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

func (r *menuRow) toMenuItem() (*model.MenuItem, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return nil, fmt.Errorf("price %q: %w", r.Price, err)
	}
	if price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(r.Stock))
	if err != nil {
		return nil, fmt.Errorf("stock %q: %w", r.Stock, err)
	}

	minStock := model.DefaultMinStock
	if s := strings.TrimSpace(r.MinStock); s != "" {
		if minStock, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("min_stock %q: %w", r.MinStock, err)
		}
		if minStock < 0 {
			return nil, errors.New("min_stock cannot be negative")
		}
	}

	return &model.MenuItem{
		Name:        name,
		Price:       price,
		Stock:       stock,
		MinStock:    minStock,
		Category:    strings.TrimSpace(r.Category),
		Description: strings.TrimSpace(r.Description),
		Image:       strings.TrimSpace(r.Image),
	}, nil
}
