package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/migration"
	"github.com/julianstephens/daylit-engine/internal/models"
	"github.com/julianstephens/daylit-engine/migrations"
)

// timestamps keep their zone offset so blocks read back in the zone they were planned in
const timeLayout = time.RFC3339Nano

type SQLiteStore struct {
	path string
	db   *sql.DB
}

var _ Provider = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Open creates the database file if needed and brings its schema up to date.
func (s *SQLiteStore) Open() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	if _, err := migration.NewRunner(db, sub).Apply(); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// SaveScheduledBlocks stores one batch of task placements and returns its id.
func (s *SQLiteStore) SaveScheduledBlocks(blocks []models.ScheduledBlock) (string, error) {
	batchID := uuid.New().String()
	now := time.Now().UTC().Format(timeLayout)

	err := s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO scheduled_blocks (id, batch_id, task_id, start_time, end_time, start_unix, overflowed_deadline, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, b := range blocks {
			if _, err := stmt.Exec(uuid.New().String(), batchID, b.TaskID,
				b.Start.Format(timeLayout), b.End.Format(timeLayout), b.Start.Unix(), b.OverflowedDeadline, now); err != nil {
				return fmt.Errorf("failed to insert block for task %s: %w", b.TaskID, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Debug("Saved scheduled blocks", "batch", batchID, "count", len(blocks))
	return batchID, nil
}

// ListScheduledBlocks returns the blocks of one batch ordered by start time.
func (s *SQLiteStore) ListScheduledBlocks(batchID string) ([]models.ScheduledBlock, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.Query(`
		SELECT task_id, start_time, end_time, overflowed_deadline
		FROM scheduled_blocks WHERE batch_id = ? ORDER BY start_unix, task_id`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.ScheduledBlock
	for rows.Next() {
		var b models.ScheduledBlock
		var start, end string
		if err := rows.Scan(&b.TaskID, &start, &end, &b.OverflowedDeadline); err != nil {
			return nil, err
		}
		if b.Start, err = time.Parse(timeLayout, start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if b.End, err = time.Parse(timeLayout, end); err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// SaveHabitSuggestions stores one batch of habit suggestions and returns its id.
func (s *SQLiteStore) SaveHabitSuggestions(blocks []models.HabitSuggestionBlock) (string, error) {
	batchID := uuid.New().String()
	now := time.Now().UTC().Format(timeLayout)

	err := s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO habit_suggestions (id, batch_id, habit_id, start_time, end_time, start_unix, status, reason, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, b := range blocks {
			status := b.Status
			if status == "" {
				status = models.SuggestionProposed
			}
			if _, err := stmt.Exec(uuid.New().String(), batchID, b.HabitID,
				b.Start.Format(timeLayout), b.End.Format(timeLayout), b.Start.Unix(), string(status), b.Reason, now, now); err != nil {
				return fmt.Errorf("failed to insert suggestion for habit %s: %w", b.HabitID, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Debug("Saved habit suggestions", "batch", batchID, "count", len(blocks))
	return batchID, nil
}

const suggestionColumns = `id, batch_id, habit_id, start_time, end_time, status, reason, created_at, updated_at`

func (s *SQLiteStore) GetHabitSuggestion(id string) (Suggestion, error) {
	if s.db == nil {
		return Suggestion{}, errNotOpen
	}
	row := s.db.QueryRow(`SELECT `+suggestionColumns+` FROM habit_suggestions WHERE id = ?`, id)
	sg, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Suggestion{}, fmt.Errorf("%w: %s", ErrSuggestionNotFound, id)
	}
	return sg, err
}

// ListHabitSuggestions returns suggestions with the given status, or all of
// them when status is empty, ordered by start time.
func (s *SQLiteStore) ListHabitSuggestions(status models.SuggestionStatus) ([]Suggestion, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.db.Query(`SELECT ` + suggestionColumns + ` FROM habit_suggestions ORDER BY start_unix, habit_id`)
	} else {
		rows, err = s.db.Query(`SELECT `+suggestionColumns+` FROM habit_suggestions WHERE status = ? ORDER BY start_unix, habit_id`, string(status))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

// UpdateSuggestionStatus records the user's decision on a proposed suggestion.
func (s *SQLiteStore) UpdateSuggestionStatus(id string, status models.SuggestionStatus) error {
	return s.withTx(func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRow(`SELECT status FROM habit_suggestions WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrSuggestionNotFound, id)
		}
		if err != nil {
			return err
		}

		from := models.SuggestionStatus(current)
		if !CanTransition(from, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, status)
		}

		_, err = tx.Exec(`UPDATE habit_suggestions SET status = ?, updated_at = ? WHERE id = ?`,
			string(status), time.Now().UTC().Format(timeLayout), id)
		return err
	})
}

var errNotOpen = errors.New("storage is not open")

func (s *SQLiteStore) withTx(fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return errNotOpen
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row scanner) (Suggestion, error) {
	var sg Suggestion
	var status, start, end, created, updated string
	if err := row.Scan(&sg.ID, &sg.BatchID, &sg.HabitID, &start, &end, &status, &sg.Reason, &created, &updated); err != nil {
		return Suggestion{}, err
	}
	sg.Status = models.SuggestionStatus(status)

	var err error
	if sg.Start, err = time.Parse(timeLayout, start); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse start_time: %w", err)
	}
	if sg.End, err = time.Parse(timeLayout, end); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse end_time: %w", err)
	}
	if sg.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if sg.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return Suggestion{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return sg, nil
}
