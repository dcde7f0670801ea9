// Package importer loads product listings from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"artisanhub/internal/client"
	"artisanhub/internal/compose"
	"artisanhub/internal/domain"
)

// DefaultBatchSize matches the largest bulk request the API accepts.
const DefaultBatchSize = 100

type BulkWriter interface {
	CreateProductsBulk(ctx context.Context, in []client.ProductInput) ([]domain.Product, error)
}

// CSVImporter reads listing rows and creates products in bulk requests.
//
// Columns: name, description, categoryName, price, productType, imageUrl, videoUrl.
// A row without a name continues the previous product and adds its imageUrl.
type CSVImporter struct {
	reader    *csv.Reader
	writer    BulkWriter
	artistID  string
	batchSize int
}

func NewCSVImporter(r io.Reader, w BulkWriter, artistID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:    csvr,
		writer:    w,
		artistID:  artistID,
		batchSize: DefaultBatchSize,
	}
}

// WithBatchSize overrides how many products go into one request.
func (i *CSVImporter) WithBatchSize(n int) *CSVImporter {
	if n > 0 {
		i.batchSize = n
	}
	return i
}

type csvRow struct {
	Line      int
	Name      string
	Desc      string
	Category  string
	Price     string
	Type      string
	ImageURLs []string
	VideoURL  string
}

// Parse validates every row and returns the products without sending anything.
func (i *CSVImporter) Parse() ([]client.ProductInput, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return nil, errors.New(`missing "name" column`)
	}

	var (
		current *csvRow
		out     []client.ProductInput
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		in, err := i.compose(current)
		if err != nil {
			return err
		}
		out = append(out, in)
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.Line = line

		if row.Name != "" {
			if err := flush(); err != nil {
				return nil, err
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// Run parses the file and creates its products, one bulk request per batch.
// Rows are all validated before the first request is sent.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	products, err := i.Parse()
	if err != nil {
		return 0, err
	}

	imported := 0
	for start := 0; start < len(products); start += i.batchSize {
		end := min(start+i.batchSize, len(products))
		created, err := i.writer.CreateProductsBulk(ctx, products[start:end])
		if err != nil {
			return imported, fmt.Errorf("create products %d-%d: %w", start+1, end, err)
		}
		imported += len(created)
	}
	return imported, nil
}

func (i *CSVImporter) compose(row *csvRow) (client.ProductInput, error) {
	var (
		sub compose.Submission
		err error
	)
	switch domain.ProductType(row.Type) {
	case domain.ProductTypeDonation:
		sub, err = compose.Donation(compose.DonationForm{
			ArtistID:        i.artistID,
			Name:            row.Name,
			Description:     row.Desc,
			Category:        row.Category,
			SuggestedAmount: row.Price,
			ImageURLs:       row.ImageURLs,
		}, nil)
	case domain.ProductTypeProduct, "":
		sub, err = compose.Product(compose.ProductForm{
			ArtistID:    i.artistID,
			Name:        row.Name,
			Description: row.Desc,
			Category:    row.Category,
			Price:       row.Price,
			ImageURLs:   row.ImageURLs,
			VideoURL:    row.VideoURL,
		}, nil)
	default:
		err = domain.Invalid("productType", fmt.Sprintf("unknown type %q", row.Type))
	}
	if err != nil {
		return client.ProductInput{}, fmt.Errorf("line %d (%s): %w", row.Line, row.Name, err)
	}
	return sub.Input, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	imageURL := pick(record, index, "imageUrl")

	if name == "" && imageURL == "" {
		return nil
	}

	row := &csvRow{
		Name:     name,
		Desc:     pick(record, index, "description"),
		Category: pick(record, index, "categoryName"),
		Price:    pick(record, index, "price"),
		Type:     strings.ToLower(pick(record, index, "productType")),
		VideoURL: pick(record, index, "videoUrl"),
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
