// Package store persists booking runs in a local sqlite database: the open
// position snapshot, the processing log and the journal of every run, keyed
// by a run id, so any past run can be reloaded or used to seed the next one.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/mwessel/booking"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lots (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	account        TEXT NOT NULL,
	transaction_id INTEGER NOT NULL,
	symbol         TEXT NOT NULL,
	activity_code  TEXT NOT NULL,
	asset_category TEXT NOT NULL,
	date           TEXT NOT NULL,
	quantity       TEXT NOT NULL,
	cost           TEXT NOT NULL,
	currency       TEXT NOT NULL,
	PRIMARY KEY (run_id, account, transaction_id)
);
CREATE TABLE IF NOT EXISTS processed (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	account        TEXT NOT NULL,
	transaction_id INTEGER NOT NULL,
	date           TEXT NOT NULL,
	amount         TEXT NOT NULL,
	currency       TEXT NOT NULL,
	PRIMARY KEY (run_id, account, transaction_id)
);
CREATE TABLE IF NOT EXISTS journal (
	run_id           TEXT NOT NULL REFERENCES runs(id),
	seq              INTEGER NOT NULL,
	account          TEXT NOT NULL,
	belegnummer      INTEGER NOT NULL,
	rule_id          TEXT NOT NULL,
	descr            TEXT NOT NULL,
	subdescr         TEXT NOT NULL,
	date             TEXT NOT NULL,
	settle_date      TEXT NOT NULL,
	reference        TEXT NOT NULL,
	amount           TEXT NOT NULL,
	currency         TEXT NOT NULL,
	debit            INTEGER NOT NULL,
	credit           INTEGER NOT NULL,
	quality_relevant INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Store is a sqlite backed archive of booking runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	// sqlite serializes writers anyway, a single connection avoids
	// SQLITE_BUSY under concurrent use
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun archives a run result under a fresh run id and returns the id.
func (s *Store) SaveRun(result *booking.RunResult) (string, error) {
	runID := uuid.NewString()
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (id, created_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for _, l := range result.Lots.Lots() {
		if _, err := tx.Exec(`INSERT INTO lots
			(run_id, account, transaction_id, symbol, activity_code, asset_category, date, quantity, cost, currency)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, l.AccountID, l.TransactionID, l.Key, string(l.ActivityCode), string(l.AssetCategory),
			l.Date.String(), l.Quantity.String(), l.Cost.Decimal().String(), l.Cost.Currency()); err != nil {
			return "", fmt.Errorf("insert lot %d: %w", l.TransactionID, err)
		}
	}
	for _, p := range result.Tracker.Records() {
		if _, err := tx.Exec(`INSERT INTO processed
			(run_id, account, transaction_id, date, amount, currency)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, p.AccountID, p.TransactionID, p.Date.String(),
			p.Amount.Decimal().String(), p.Amount.Currency()); err != nil {
			return "", fmt.Errorf("insert processed %d: %w", p.TransactionID, err)
		}
	}
	for i, l := range result.Journal.Lines() {
		quality := 0
		if l.QualityRelevant {
			quality = 1
		}
		if _, err := tx.Exec(`INSERT INTO journal
			(run_id, seq, account, belegnummer, rule_id, descr, subdescr, date, settle_date, reference,
			 amount, currency, debit, credit, quality_relevant)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, l.Account, l.DocumentNo, l.RuleID, l.Desc, l.Subdesc,
			l.Date.String(), l.SettleDate.String(), l.Reference,
			l.Amount.Decimal().String(), l.Amount.Currency(),
			int(l.Debit), int(l.Credit), quality); err != nil {
			return "", fmt.Errorf("insert journal line %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// LatestRun returns the id of the most recently saved run.
func (s *Store) LatestRun() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no runs stored")
	}
	return id, err
}

// LoadLots returns the open position snapshot of a run, the seed for the
// next booking run.
func (s *Store) LoadLots(runID string) ([]booking.Lot, error) {
	rows, err := s.db.Query(`SELECT account, transaction_id, symbol, activity_code, asset_category, date, quantity, cost, currency
		FROM lots WHERE run_id = ? ORDER BY account, transaction_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []booking.Lot
	for rows.Next() {
		var (
			l                        booking.Lot
			code, cat, day, qty, cst string
			cur                      string
		)
		if err := rows.Scan(&l.AccountID, &l.TransactionID, &l.Key, &code, &cat, &day, &qty, &cst, &cur); err != nil {
			return nil, err
		}
		l.ActivityCode = booking.ActivityCode(code)
		l.AssetCategory = booking.AssetCategory(cat)
		if l.Date, err = booking.ParseDate(day); err != nil {
			return nil, fmt.Errorf("lot %d: %w", l.TransactionID, err)
		}
		q, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, fmt.Errorf("lot %d quantity: %w", l.TransactionID, err)
		}
		c, err := decimal.NewFromString(cst)
		if err != nil {
			return nil, fmt.Errorf("lot %d cost: %w", l.TransactionID, err)
		}
		l.Quantity = booking.Q(q)
		l.Cost = booking.M(c, cur)
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// LoadProcessed rebuilds the processing tracker of a run.
func (s *Store) LoadProcessed(runID string) (*booking.Tracker, error) {
	rows, err := s.db.Query(`SELECT account, transaction_id, date, amount, currency
		FROM processed WHERE run_id = ? ORDER BY account, transaction_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := booking.NewTracker()
	for rows.Next() {
		var (
			account, day, amount, cur string
			txid                      int64
		)
		if err := rows.Scan(&account, &txid, &day, &amount, &cur); err != nil {
			return nil, err
		}
		on, err := booking.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("processed %d: %w", txid, err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("processed %d amount: %w", txid, err)
		}
		t.Record(account, txid, booking.M(a, cur), on)
	}
	return t, rows.Err()
}

// LoadJournal returns the stored booking journal of a run, in booking order.
func (s *Store) LoadJournal(runID string) (*booking.Journal, error) {
	rows, err := s.db.Query(`SELECT account, belegnummer, rule_id, descr, subdescr, date, settle_date, reference,
		amount, currency, debit, credit, quality_relevant
		FROM journal WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	j := booking.NewJournal()
	for rows.Next() {
		var (
			l                        booking.JournalLine
			day, settle, amount, cur string
			debit, credit, quality   int
		)
		if err := rows.Scan(&l.Account, &l.DocumentNo, &l.RuleID, &l.Desc, &l.Subdesc,
			&day, &settle, &l.Reference, &amount, &cur, &debit, &credit, &quality); err != nil {
			return nil, err
		}
		if l.Date, err = booking.ParseDate(day); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", l.DocumentNo, err)
		}
		if l.SettleDate, err = booking.ParseDate(settle); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", l.DocumentNo, err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("journal line %d amount: %w", l.DocumentNo, err)
		}
		l.Amount = booking.M(a, cur)
		l.Debit = booking.AccountNo(debit)
		l.Credit = booking.AccountNo(credit)
		l.QualityRelevant = quality == 1
		j.Append(l)
	}
	return j, rows.Err()
}
