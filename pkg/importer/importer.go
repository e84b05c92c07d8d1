// Package importer loads item-master snapshots from Excel workbooks into
// the items table. The rental POS exports one workbook per store; a YAML
// mapping file describes which sheets to read and how their column headers
// map onto item fields.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tealeg/xlsx/v3"
	"gopkg.in/yaml.v3"
)

// ImportOptions defines the configuration for an import run.
type ImportOptions struct {
	MappingPath string // default "configs/mapping/item_master.yaml"
	DryRun      bool
	MaxErrors   int // default 50
}

// RowError records one failed row.
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet.
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

// ImportSummary contains the overall import statistics.
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

// MappingConfig is the YAML mapping file.
type MappingConfig struct {
	Version int                    `yaml:"version"`
	Sheets  map[string]SheetConfig `yaml:"sheets"`
}

// SheetConfig maps one sheet's column headers to items fields. Aliases let
// a field match several header spellings.
type SheetConfig struct {
	StatusDefault string              `yaml:"status_default"`
	Columns       map[string]string   `yaml:"columns"` // header -> field
	Aliases       map[string][]string `yaml:"aliases"` // field -> extra headers
}

// itemFields is the whitelist of importable columns on the items table.
var itemFields = map[string]bool{
	"tag_id":            true,
	"common_name":       true,
	"bin_location":      true,
	"status":            true,
	"last_contract_num": true,
	"rental_class_num":  true,
	"scan_by":           true,
}

// ImportExcel processes an Excel workbook and upserts item rows keyed by
// tag_id. Each row is its own unit of work; row failures are sampled into
// the summary and do not stop the run until MaxErrors is exceeded.
func ImportExcel(ctx context.Context, db *pgxpool.Pool, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}

	if opts.MappingPath == "" {
		opts.MappingPath = "configs/mapping/item_master.yaml"
	}
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 50
	}

	mapping, err := loadMappingConfig(opts.MappingPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load mapping config: %w", err)
	}

	// xlsx needs an io.ReaderAt, so buffer the upload.
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, fmt.Errorf("failed to open Excel file: %w", err)
	}

	conn, err := db.Acquire(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to acquire database connection: %w", err)
	}
	defer conn.Release()

	for _, sheet := range xlFile.Sheets {
		sheetConfig, exists := mapping.Sheets[sheet.Name]
		if !exists {
			continue // Skip sheets without mapping
		}

		sheetSummary := processSheet(ctx, conn, sheet, sheetConfig, opts)
		summary.Sheets = append(summary.Sheets, sheetSummary)

		summary.Inserted += sheetSummary.Inserted
		summary.Updated += sheetSummary.Updated
		summary.Skipped += sheetSummary.Skipped
		summary.Errors += sheetSummary.Errors

		if summary.Errors > opts.MaxErrors {
			return summary, fmt.Errorf("too many errors (%d), stopping import", summary.Errors)
		}
	}

	return summary, nil
}

// loadMappingConfig reads the YAML mapping, falling back to the built-in
// default when the file does not exist.
func loadMappingConfig(path string) (*MappingConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultMapping(), nil
	}
	if err != nil {
		return nil, err
	}
	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultMapping() *MappingConfig {
	return &MappingConfig{
		Version: 1,
		Sheets: map[string]SheetConfig{
			"Items": {
				StatusDefault: "Ready to Rent",
				Columns: map[string]string{
					"Tag ID":       "tag_id",
					"Common Name":  "common_name",
					"Bin":          "bin_location",
					"Status":       "status",
					"Contract":     "last_contract_num",
					"Rental Class": "rental_class_num",
					"Scanned By":   "scan_by",
				},
				Aliases: map[string][]string{
					"tag_id":           {"RFID", "Tag"},
					"bin_location":     {"Bin Location", "Location"},
					"rental_class_num": {"Class", "Rental Class No"},
				},
			},
		},
	}
}

func processSheet(ctx context.Context, conn *pgxpool.Conn, sheet *xlsx.Sheet, config SheetConfig, opts ImportOptions) SheetSummary {
	summary := SheetSummary{Name: sheet.Name}

	recordError := func(row int, msg string) {
		summary.Errors++
		if len(summary.Samples) < 10 {
			summary.Samples = append(summary.Samples, RowError{
				Sheet: sheet.Name, Row: row, Message: msg,
			})
		}
	}

	headerRow, err := sheet.Row(0)
	if err != nil {
		recordError(1, "failed to read header row: "+err.Error())
		return summary
	}

	// header column index -> items field
	fieldByCol := map[int]string{}
	for colIdx := 0; colIdx < sheet.MaxCol; colIdx++ {
		cell := headerRow.GetCell(colIdx)
		if cell == nil {
			continue
		}
		header := strings.TrimSpace(cell.String())
		if header == "" {
			continue
		}
		if field := resolveField(header, config); field != "" {
			fieldByCol[colIdx] = field
		}
	}

	for rowIdx := 1; rowIdx < sheet.MaxRow; rowIdx++ {
		row, err := sheet.Row(rowIdx)
		if err != nil {
			break
		}

		fields := map[string]string{}
		for colIdx, field := range fieldByCol {
			cell := row.GetCell(colIdx)
			if cell == nil {
				continue
			}
			if v := strings.TrimSpace(cell.String()); v != "" {
				fields[field] = v
			}
		}

		if len(fields) == 0 {
			summary.Skipped++
			continue
		}
		if fields["tag_id"] == "" || fields["common_name"] == "" {
			recordError(rowIdx+1, "tag_id and common_name are required")
			continue
		}
		if fields["status"] == "" && config.StatusDefault != "" {
			fields["status"] = config.StatusDefault
		}

		exists, err := itemExists(ctx, conn, fields["tag_id"])
		if err != nil {
			recordError(rowIdx+1, err.Error())
			continue
		}

		if exists {
			if !opts.DryRun {
				if err := updateItem(ctx, conn, fields); err != nil {
					recordError(rowIdx+1, err.Error())
					continue
				}
			}
			summary.Updated++
		} else {
			if !opts.DryRun {
				if err := insertItem(ctx, conn, fields); err != nil {
					recordError(rowIdx+1, err.Error())
					continue
				}
			}
			summary.Inserted++
		}
	}

	return summary
}

// resolveField maps a header to an items field via the direct column map or
// an alias, case-insensitively.
func resolveField(header string, config SheetConfig) string {
	for h, field := range config.Columns {
		if strings.EqualFold(h, header) && itemFields[field] {
			return field
		}
	}
	for field, aliases := range config.Aliases {
		if !itemFields[field] {
			continue
		}
		for _, alias := range aliases {
			if strings.EqualFold(alias, header) {
				return field
			}
		}
	}
	return ""
}

func itemExists(ctx context.Context, conn *pgxpool.Conn, tagID string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE tag_id = $1)`, tagID,
	).Scan(&exists)
	return exists, err
}

func insertItem(ctx context.Context, conn *pgxpool.Conn, fields map[string]string) error {
	cols := []string{"tag_id", "scan_date"}
	values := []interface{}{fields["tag_id"], time.Now()}
	placeholders := []string{"$1", "$2"}
	argIndex := 3

	for field, value := range fields {
		if field == "tag_id" || !itemFields[field] {
			continue
		}
		cols = append(cols, field)
		values = append(values, value)
		placeholders = append(placeholders, fmt.Sprintf("$%d", argIndex))
		argIndex++
	}

	query := fmt.Sprintf(
		"INSERT INTO items (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	_, err := conn.Exec(ctx, query, values...)
	return err
}

func updateItem(ctx context.Context, conn *pgxpool.Conn, fields map[string]string) error {
	setParts := []string{"scan_date = now()"}
	values := []interface{}{}
	argIndex := 1

	for field, value := range fields {
		if field == "tag_id" || !itemFields[field] {
			continue
		}
		setParts = append(setParts, fmt.Sprintf("%s = $%d", field, argIndex))
		values = append(values, value)
		argIndex++
	}

	query := fmt.Sprintf(
		"UPDATE items SET %s WHERE tag_id = $%d",
		strings.Join(setParts, ", "), argIndex)
	values = append(values, fields["tag_id"])

	_, err := conn.Exec(ctx, query, values...)
	return err
}
