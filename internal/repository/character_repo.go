package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hanzidrill/internal/database"
	"hanzidrill/internal/models"
)

// CharacterRepository handles character database operations
type CharacterRepository struct {
	db *database.DB
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db *database.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `id, set_nr, glyph, pinyin, example, learned_date,
	progress_schema, correct, wrong, marked, created_at, updated_at`

// List returns every character, ordered by set then glyph
func (r *CharacterRepository) List() ([]models.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM characters ORDER BY set_nr, id
	`, characterColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chars, err := scanCharacters(rows)
	if err != nil {
		return nil, err
	}
	return r.attachReviewMarks(chars)
}

// ListBySet returns the characters of a single set
func (r *CharacterRepository) ListBySet(setNr int) ([]models.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM characters WHERE set_nr = ? ORDER BY id
	`, characterColumns)

	rows, err := r.db.Query(query, setNr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chars, err := scanCharacters(rows)
	if err != nil {
		return nil, err
	}
	return r.attachReviewMarks(chars)
}

// GetByID returns a single character
func (r *CharacterRepository) GetByID(id int64) (*models.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM characters WHERE id = ?
	`, characterColumns)

	c, err := scanCharacter(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	chars, err := r.attachReviewMarks([]models.Character{*c})
	if err != nil {
		return nil, err
	}
	return &chars[0], nil
}

// Sets returns the distinct set numbers in ascending order
func (r *CharacterRepository) Sets() ([]int, error) {
	rows, err := r.db.Query("SELECT DISTINCT set_nr FROM characters ORDER BY set_nr")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []int
	for rows.Next() {
		var setNr int
		if err := rows.Scan(&setNr); err != nil {
			return nil, err
		}
		sets = append(sets, setNr)
	}
	return sets, rows.Err()
}

// Create inserts a new character and fills in its ID
func (r *CharacterRepository) Create(c *models.Character) error {
	query := `
		INSERT INTO characters (set_nr, glyph, pinyin, example, learned_date,
			progress_schema, correct, wrong, marked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		c.SetNr,
		c.Glyph,
		c.Pinyin,
		c.Example,
		nullDate(c.LearnedDate),
		string(c.Progress.Schema),
		c.Progress.Correct,
		c.Progress.Wrong,
		c.Progress.Marked,
	)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	c.ID = id

	for day, reviewed := range c.Progress.ReviewedDays {
		if err := r.SetDayReviewed(c.ID, day, reviewed); err != nil {
			return err
		}
	}
	return nil
}

// UpdateAnnotations edits the free-text fields of a character
func (r *CharacterRepository) UpdateAnnotations(id int64, pinyin, example string) error {
	result, err := r.db.Exec(`
		UPDATE characters SET pinyin = ?, example = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, pinyin, example, id)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// UpdateSetLearnedDate moves the learned date of every character in a set
func (r *CharacterRepository) UpdateSetLearnedDate(setNr int, learned time.Time) error {
	result, err := r.db.Exec(`
		UPDATE characters SET learned_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE set_nr = ?
	`, models.DateOnly(learned), setNr)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// Delete removes a single character
func (r *CharacterRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM characters WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// DeleteSet removes every character sharing the given set number
func (r *CharacterRepository) DeleteSet(setNr int) error {
	result, err := r.db.Exec("DELETE FROM characters WHERE set_nr = ?", setNr)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// IncrementTally bumps the correct or wrong counter by one
func (r *CharacterRepository) IncrementTally(id int64, correct bool) error {
	column := "wrong"
	if correct {
		column = "correct"
	}
	query := fmt.Sprintf(`
		UPDATE characters SET %s = %s + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, column, column)

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// SetMarked flips the marked-for-attention flag
func (r *CharacterRepository) SetMarked(id int64, marked bool) error {
	result, err := r.db.Exec(`
		UPDATE characters SET marked = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, marked, id)
	if err != nil {
		return err
	}
	return requireRows(result, models.ErrNotFound)
}

// SetDayReviewed records whether the review for one ladder day was
// completed. Update-then-insert keeps this portable across all three
// dialects without conflict-clause differences.
func (r *CharacterRepository) SetDayReviewed(id int64, day int, reviewed bool) error {
	result, err := r.db.Exec(`
		UPDATE review_marks SET reviewed = ? WHERE character_id = ? AND day = ?
	`, reviewed, id, day)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO review_marks (character_id, day, reviewed) VALUES (?, ?, ?)
	`, id, day, reviewed)
	return err
}

// FrequentlyWrong returns tally-schema characters with at least minWrong
// recorded failures, worst first
func (r *CharacterRepository) FrequentlyWrong(minWrong int) ([]models.Character, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM characters WHERE wrong >= ? ORDER BY wrong DESC, id
	`, characterColumns)

	rows, err := r.db.Query(query, minWrong)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCharacters(rows)
}

// ReplaceAll swaps the entire collection for the given records, in one
// transaction. Used by snapshot import.
func (r *CharacterRepository) ReplaceAll(chars []models.Character) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM review_marks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return err
	}

	for i := range chars {
		c := &chars[i]
		id, err := tx.ExecReturningID(`
			INSERT INTO characters (set_nr, glyph, pinyin, example, learned_date,
				progress_schema, correct, wrong, marked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			c.SetNr,
			c.Glyph,
			c.Pinyin,
			c.Example,
			nullDate(c.LearnedDate),
			string(c.Progress.Schema),
			c.Progress.Correct,
			c.Progress.Wrong,
			c.Progress.Marked,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %q: %w", c.Glyph, err)
		}
		c.ID = id

		for day, reviewed := range c.Progress.ReviewedDays {
			_, err := tx.Exec(`
				INSERT INTO review_marks (character_id, day, reviewed) VALUES (?, ?, ?)
			`, id, day, reviewed)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// attachReviewMarks loads the per-day flags for the given characters.
// Only the per-day records in hand are queried, not the whole table.
func (r *CharacterRepository) attachReviewMarks(chars []models.Character) ([]models.Character, error) {
	var ids []interface{}
	for i := range chars {
		if chars[i].Progress.Schema == models.SchemaPerDay {
			ids = append(ids, chars[i].ID)
		}
	}
	if len(ids) == 0 {
		return chars, nil
	}

	placeholders := strings.Repeat(", ?", len(ids))[2:]
	query := fmt.Sprintf(`
		SELECT character_id, day, reviewed FROM review_marks
		WHERE character_id IN (%s)
	`, placeholders)

	rows, err := r.db.Query(query, ids...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make(map[int64]map[int]bool)
	for rows.Next() {
		var id int64
		var day int
		var reviewed bool
		if err := rows.Scan(&id, &day, &reviewed); err != nil {
			return nil, err
		}
		if marks[id] == nil {
			marks[id] = make(map[int]bool)
		}
		marks[id][day] = reviewed
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range chars {
		if chars[i].Progress.Schema != models.SchemaPerDay {
			continue
		}
		if m := marks[chars[i].ID]; m != nil {
			chars[i].Progress.ReviewedDays = m
		} else {
			chars[i].Progress.ReviewedDays = make(map[int]bool)
		}
	}
	return chars, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (*models.Character, error) {
	var c models.Character
	var schema string
	var learned sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.SetNr,
		&c.Glyph,
		&c.Pinyin,
		&c.Example,
		&learned,
		&schema,
		&c.Progress.Correct,
		&c.Progress.Wrong,
		&c.Progress.Marked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Progress.Schema = models.ProgressSchema(schema)
	if learned.Valid {
		d := models.DateOnly(learned.Time)
		c.LearnedDate = &d
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	return &c, nil
}

func scanCharacters(rows *sql.Rows) ([]models.Character, error) {
	var chars []models.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		chars = append(chars, *c)
	}
	return chars, rows.Err()
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return models.DateOnly(*t)
}

func requireRows(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
