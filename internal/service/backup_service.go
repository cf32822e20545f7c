package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/repository"
	"hanzidrill/internal/review"
)

// BackupService exports the collection to the flat CSV snapshot format
// and restores it from one. The snapshot carries a schema column plus
// the progress columns of both schemas, so collections mixing tally and
// per-day characters round-trip without loss. Older snapshots written
// with one schema's columns only still load.
type BackupService struct {
	repo   *repository.CharacterRepository
	ladder review.Ladder
}

// NewBackupService creates a new backup service
func NewBackupService(repo *repository.CharacterRepository, ladder review.Ladder) *BackupService {
	if len(ladder) == 0 {
		ladder = review.DefaultLadder
	}
	return &BackupService{repo: repo, ladder: ladder}
}

// Export writes the whole collection as CSV
func (s *BackupService) Export(w io.Writer) error {
	chars, err := s.repo.List()
	if err != nil {
		return fmt.Errorf("failed to load characters: %w", err)
	}
	return EncodeCSV(w, chars, s.ladder)
}

// ExportFile writes the CSV snapshot to a file
func (s *BackupService) ExportFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := s.Export(f); err != nil {
		return err
	}
	return f.Close()
}

// ImportFile loads a CSV snapshot into the store. With replace set the
// existing collection is swapped out wholesale; otherwise records are
// appended. A missing file is an empty collection, not an error.
func (s *BackupService) ImportFile(path string, replace bool) (int, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if replace {
			return 0, s.repo.ReplaceAll(nil)
		}
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	chars, err := DecodeCSV(f, s.ladder)
	if err != nil {
		return 0, err
	}

	if replace {
		return len(chars), s.repo.ReplaceAll(chars)
	}
	for i := range chars {
		if err := s.repo.Create(&chars[i]); err != nil {
			return i, err
		}
	}
	return len(chars), nil
}

const dateLayout = "2006-01-02"

// EncodeCSV writes chars in the flat snapshot layout. Every row carries
// its own schema tag and the full set of progress columns; the columns
// the row's schema does not use hold zero values.
func EncodeCSV(w io.Writer, chars []models.Character, ladder review.Ladder) error {
	cw := csv.NewWriter(w)

	days := ladder.ReviewDays()
	header := []string{"set_nr", "character", "pinyin", "example", "learned_date",
		"schema", "correct", "wrong", "marked"}
	for _, day := range days {
		header = append(header, fmt.Sprintf("reviewed_on_day_%d", day))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range chars {
		learned := ""
		if c.LearnedDate != nil {
			learned = c.LearnedDate.Format(dateLayout)
		}
		record := []string{
			strconv.Itoa(c.SetNr),
			c.Glyph,
			c.Pinyin,
			c.Example,
			learned,
			string(c.Progress.Schema),
			strconv.Itoa(c.Progress.Correct),
			strconv.Itoa(c.Progress.Wrong),
			strconv.FormatBool(c.Progress.Marked),
		}
		for _, day := range days {
			record = append(record, strconv.FormatBool(c.Progress.ReviewedOn(day)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads a snapshot back into character records. The schema of
// each row comes from the schema column when present; snapshots without
// one are single-schema files, detected from the header the way the old
// format requires. Columns the snapshot lacks backfill with defaults
// (set_nr 0, counters 0, flags false, learned_date null).
func DecodeCSV(r io.Reader, ladder review.Ladder) ([]models.Character, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	_, hasSchemaColumn := cols["schema"]
	headerSchema := models.SchemaTally
	for name := range cols {
		if name == "marked" || strings.HasPrefix(name, "reviewed_on_day_") {
			headerSchema = models.SchemaPerDay
			break
		}
	}

	var chars []models.Character
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		c := models.Character{
			SetNr:   parseIntDefault(field("set_nr"), 0),
			Glyph:   field("character"),
			Pinyin:  field("pinyin"),
			Example: field("example"),
		}

		if v := field("learned_date"); v != "" {
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				return nil, fmt.Errorf("snapshot line %d: invalid learned_date %q", line, v)
			}
			d := models.DateOnly(t)
			c.LearnedDate = &d
		}

		schema := headerSchema
		if hasSchemaColumn {
			if s := models.ProgressSchema(strings.ToLower(field("schema"))); s.Valid() {
				schema = s
			}
		}

		switch schema {
		case models.SchemaPerDay:
			c.Progress = models.NewPerDayProgress()
			c.Progress.Marked = parseBoolDefault(field("marked"), false)
			for _, day := range ladder.ReviewDays() {
				name := fmt.Sprintf("reviewed_on_day_%d", day)
				if _, ok := cols[name]; ok {
					c.Progress.ReviewedDays[day] = parseBoolDefault(field(name), false)
				}
			}
		default:
			c.Progress = models.NewTallyProgress()
			c.Progress.Correct = parseIntDefault(field("correct"), 0)
			c.Progress.Wrong = parseIntDefault(field("wrong"), 0)
		}

		chars = append(chars, c)
	}

	return chars, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
