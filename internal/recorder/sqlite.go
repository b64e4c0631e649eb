package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the simulation log to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so chart readers do not block the simulator.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			run_id              TEXT NOT NULL,
			turn                INTEGER NOT NULL,
			lever               TEXT,
			magnitude           REAL,
			gdp_growth          REAL,
			inflation           REAL,
			unemployment        REAL,
			interest_rate       REAL,
			exchange_rate       REAL,
			trade_balance       REAL,
			government_spending REAL,
			tariff_rate         REAL,
			government_debt     REAL,
			nominal_gdp         REAL,
			debt_to_gdp         REAL,
			interest_payment    REAL,
			tax_revenue         REAL,
			fiscal_balance      REAL,
			debt_band           TEXT,
			r_gt_g              INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_run ON turns(run_id, turn)`,

		`CREATE TABLE IF NOT EXISTS resets (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			previous_run_id TEXT,
			run_id          TEXT NOT NULL,
			final_turn      INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS commentary (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			run_id    TEXT NOT NULL,
			turn      INTEGER,
			kind      TEXT,
			question  TEXT,
			text      TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commentary_run ON commentary(run_id, turn)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTurn(evt *TurnEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := evt.State
	_, err := r.db.Exec(`INSERT INTO turns
		(timestamp, run_id, turn, lever, magnitude,
		 gdp_growth, inflation, unemployment, interest_rate, exchange_rate,
		 trade_balance, government_spending, tariff_rate, government_debt,
		 nominal_gdp, debt_to_gdp, interest_payment, tax_revenue, fiscal_balance,
		 debt_band, r_gt_g)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RunID, evt.Turn, string(evt.Lever), evt.Magnitude,
		s.GDPGrowth, s.Inflation, s.Unemployment, s.InterestRate, s.ExchangeRate,
		s.TradeBalance, s.GovernmentSpending, s.TariffRate, s.GovernmentDebt,
		s.NominalGDP, s.DebtToGDP, s.InterestPayment, s.TaxRevenue, s.FiscalBalance,
		string(evt.Band), evt.Warning.Active,
	)
	return err
}

func (r *SQLiteRecorder) RecordReset(evt *ResetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO resets
		(timestamp, previous_run_id, run_id, final_turn)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.PreviousRunID, evt.RunID, evt.FinalTurn,
	)
	return err
}

func (r *SQLiteRecorder) RecordCommentary(evt *CommentaryEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO commentary
		(timestamp, run_id, turn, kind, question, text, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RunID, evt.Turn, evt.Kind, evt.Question, evt.Text, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
