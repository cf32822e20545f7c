package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"hanzidrill/internal/models"
	"hanzidrill/internal/service"
)

// Config controls a sheet import. Column letters address the spreadsheet
// columns holding each field; CSV files use the same letters mapped to
// zero-based positions.
type Config struct {
	FilePath      string
	SetNr         int
	Schema        models.ProgressSchema
	LearnedDate   *time.Time
	GlyphColumn   string
	PinyinColumn  string
	ExampleColumn string
	SheetName     string
	StartRow      int // 1-based, rows above it are skipped
}

// DefaultConfig returns the layout used by the stock character sheets:
// glyph, pinyin, example in the first three columns under a header row.
func DefaultConfig() Config {
	return Config{
		Schema:        models.SchemaTally,
		GlyphColumn:   "A",
		PinyinColumn:  "B",
		ExampleColumn: "C",
		SheetName:     "Sheet1",
		StartRow:      2,
	}
}

// Result summarizes an import run
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer loads characters from xlsx or CSV sheets into a set
type Importer struct {
	characters *service.CharacterService
}

// New creates a new importer
func New(characters *service.CharacterService) *Importer {
	return &Importer{characters: characters}
}

// ImportSheet reads the configured file and creates one character per
// data row. The file format is chosen by extension; .csv is parsed as
// CSV, anything else is opened as an xlsx workbook.
func (imp *Importer) ImportSheet(cfg Config) (*Result, error) {
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		return imp.importCSV(cfg)
	}
	return imp.importExcel(cfg)
}

func (imp *Importer) importExcel(cfg Config) (*Result, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := &Result{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		imp.importRow(row, cfg, result, rowNum)
	}
	return result, nil
}

func (imp *Importer) importCSV(cfg Config) (*Result, error) {
	f, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	result := &Result{}
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}
		if rowNum < cfg.StartRow {
			continue
		}
		imp.importRow(row, cfg, result, rowNum)
	}
	return result, nil
}

func (imp *Importer) importRow(row []string, cfg Config, result *Result, rowNum int) {
	glyph := cell(row, cfg.GlyphColumn)
	pinyin := cell(row, cfg.PinyinColumn)
	example := cell(row, cfg.ExampleColumn)

	if glyph == "" {
		result.Skipped++
		return
	}
	result.TotalProcessed++

	_, err := imp.characters.AddCharacter(cfg.SetNr, glyph, pinyin, example, cfg.LearnedDate, cfg.Schema)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	result.Created++
}

func cell(row []string, column string) string {
	i := columnIndex(column)
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// columnIndex converts a spreadsheet column letter to a zero-based index
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		c := column[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A'+1)
	}
	return index - 1
}
