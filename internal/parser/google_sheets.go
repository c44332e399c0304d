package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

// CatalogRow is one spreadsheet row of the catalog import format:
// name | description | base price | category | tags (csv) | veg | pieces
type CatalogRow struct {
	Name        string
	Description string
	BasePrice   float64
	Category    string
	Tags        []string
	IsVeg       bool
	Pieces      *int
}

func New(cfg Config) (*GoogleSheetsParser, error) {
	ctx := context.Background()

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

func (p *GoogleSheetsParser) ParseCatalog(ctx context.Context, spreadsheetID string) ([]CatalogRow, error) {
	readRange := "A:G"
	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("no data found in spreadsheet")
	}

	var rows []CatalogRow

	// skip header
	for i := 1; i < len(resp.Values); i++ {
		raw := resp.Values[i]
		if len(raw) == 0 {
			continue
		}

		row := CatalogRow{
			Name: cell(raw, 0),
		}
		if row.Name == "" {
			continue
		}

		row.Description = cell(raw, 1)

		if priceStr := cell(raw, 2); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q", i+1, priceStr)
			}
			row.BasePrice = price
		}

		row.Category = cell(raw, 3)

		if tagsStr := cell(raw, 4); tagsStr != "" {
			for _, tag := range strings.Split(tagsStr, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					row.Tags = append(row.Tags, tag)
				}
			}
		}

		row.IsVeg = strings.EqualFold(cell(raw, 5), "TRUE")

		if piecesStr := cell(raw, 6); piecesStr != "" {
			pieces, err := strconv.Atoi(piecesStr)
			if err == nil {
				row.Pieces = &pieces
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}
