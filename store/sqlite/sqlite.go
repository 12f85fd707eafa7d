/*
Package sqlite provides the SQLite-backed submission archive.

PURPOSE:
  Every graded run is recorded: who submitted, which choices they made,
  which scenario priced the run, and the final cash position. The table
  is append-only - a re-submission is a new row, never an update - so
  the archive doubles as an audit trail for grade disputes.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on submissions
  - No DELETE statements on submissions

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/submissions.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - api/handlers.go: the only writer
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/kopi/venture-engine/engine"
)

// Submission is one archived run.
type Submission struct {
	ID           string
	CreatedAt    time.Time
	StudentName  string
	StudentEmail string
	Scenario     string

	Location    engine.Location
	Marketing   engine.MarketingPlan
	Receivables engine.ReceivablesPolicy
	Purchases   [engine.HorizonMonths]engine.PurchaseOrder

	FinalCash decimal.Decimal
	Statement string
}

// Store is the SQLite-backed submission archive.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) the archive at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Submissions (append-only archive)
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		student_name TEXT NOT NULL,
		student_email TEXT NOT NULL,
		scenario TEXT NOT NULL,
		location TEXT NOT NULL,
		marketing TEXT NOT NULL,
		receivables TEXT NOT NULL,
		purchase1_qty INTEGER NOT NULL,
		purchase1_term TEXT NOT NULL,
		purchase2_qty INTEGER NOT NULL,
		purchase2_term TEXT NOT NULL,
		purchase3_qty INTEGER NOT NULL,
		purchase3_term TEXT NOT NULL,
		final_cash TEXT NOT NULL,
		statement TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(student_email);
	CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a run. The submission's ID and CreatedAt are assigned
// here; the stored value is returned.
func (s *Store) Append(ctx context.Context, sub Submission) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, created_at, student_name, student_email, scenario,
			location, marketing, receivables,
			purchase1_qty, purchase1_term,
			purchase2_qty, purchase2_term,
			purchase3_qty, purchase3_term,
			final_cash, statement
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.CreatedAt.Format(time.RFC3339Nano), sub.StudentName, sub.StudentEmail, sub.Scenario,
		string(sub.Location), string(sub.Marketing), string(sub.Receivables),
		sub.Purchases[0].Quantity, string(sub.Purchases[0].Term),
		sub.Purchases[1].Quantity, string(sub.Purchases[1].Term),
		sub.Purchases[2].Quantity, string(sub.Purchases[2].Term),
		sub.FinalCash.String(), sub.Statement,
	)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: insert submission: %v", engine.ErrPersistence, err)
	}
	return sub, nil
}

// List returns all submissions, oldest first.
func (s *Store) List(ctx context.Context) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, student_name, student_email, scenario,
		       location, marketing, receivables,
		       purchase1_qty, purchase1_term,
		       purchase2_qty, purchase2_term,
		       purchase3_qty, purchase3_term,
		       final_cash, statement
		FROM submissions
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: query submissions: %v", engine.ErrPersistence, err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var (
			sub                             Submission
			createdAt                       string
			loc, mkt, rec                   string
			term                            [engine.HorizonMonths]string
			finalCash                       string
		)
		if err := rows.Scan(
			&sub.ID, &createdAt, &sub.StudentName, &sub.StudentEmail, &sub.Scenario,
			&loc, &mkt, &rec,
			&sub.Purchases[0].Quantity, &term[0],
			&sub.Purchases[1].Quantity, &term[1],
			&sub.Purchases[2].Quantity, &term[2],
			&finalCash, &sub.Statement,
		); err != nil {
			return nil, fmt.Errorf("%w: scan submission: %v", engine.ErrPersistence, err)
		}

		sub.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		sub.Location = engine.Location(loc)
		sub.Marketing = engine.MarketingPlan(mkt)
		sub.Receivables = engine.ReceivablesPolicy(rec)
		for i := range term {
			sub.Purchases[i].Term = engine.PaymentTerm(term[i])
		}
		sub.FinalCash, err = decimal.NewFromString(finalCash)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt final_cash %q: %v", engine.ErrPersistence, finalCash, err)
		}

		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// exportColumns is the stable CSV layout the course's grading sheet
// expects. Do not reorder.
var exportColumns = []string{
	"Name", "Email", "Scenario", "Location", "Marketing", "Receivables",
	"Purchase 1 Qty", "Purchase 1 Term",
	"Purchase 2 Qty", "Purchase 2 Term",
	"Purchase 3 Qty", "Purchase 3 Term",
	"Final Cash", "Submitted At",
}

// ExportCSV streams the whole archive as CSV, header first.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	subs, err := s.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("%w: write csv header: %v", engine.ErrPersistence, err)
	}
	for _, sub := range subs {
		record := []string{
			sub.StudentName, sub.StudentEmail, sub.Scenario,
			string(sub.Location), string(sub.Marketing), string(sub.Receivables),
			strconv.Itoa(sub.Purchases[0].Quantity), string(sub.Purchases[0].Term),
			strconv.Itoa(sub.Purchases[1].Quantity), string(sub.Purchases[1].Term),
			strconv.Itoa(sub.Purchases[2].Quantity), string(sub.Purchases[2].Term),
			sub.FinalCash.String(), sub.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: write csv row: %v", engine.ErrPersistence, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush csv: %v", engine.ErrPersistence, err)
	}
	return nil
}
