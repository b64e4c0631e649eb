package recorder

import (
	"fmt"
	"log"
	"time"

	supa "github.com/supabase-community/supabase-go"
)

// inserter is the slice of the Supabase client the recorder needs.
type inserter interface {
	insert(table string, row any) error
}

type supabaseInserter struct {
	client *supa.Client
}

func (s supabaseInserter) insert(table string, row any) error {
	_, _, err := s.client.From(table).Insert(row, false, "", "minimal", "").Execute()
	return err
}

// SupabaseRecorder mirrors the simulation log into Supabase tables named
// <prefix>turns, <prefix>resets and <prefix>commentary.
type SupabaseRecorder struct {
	db     inserter
	prefix string
}

// NewSupabaseRecorder connects to a Supabase project.
func NewSupabaseRecorder(url, key, tablePrefix string) (*SupabaseRecorder, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("connect supabase: %w", err)
	}
	log.Printf("[INFO] supabase recorder connected: %s", url)
	return &SupabaseRecorder{db: supabaseInserter{client: client}, prefix: tablePrefix}, nil
}

type turnRow struct {
	RecordedAt         time.Time `json:"recorded_at"`
	RunID              string    `json:"run_id"`
	Turn               int       `json:"turn"`
	Lever              string    `json:"lever"`
	Magnitude          float64   `json:"magnitude"`
	GDPGrowth          float64   `json:"gdp_growth"`
	Inflation          float64   `json:"inflation"`
	Unemployment       float64   `json:"unemployment"`
	InterestRate       float64   `json:"interest_rate"`
	ExchangeRate       float64   `json:"exchange_rate"`
	TradeBalance       float64   `json:"trade_balance"`
	GovernmentSpending float64   `json:"government_spending"`
	TariffRate         float64   `json:"tariff_rate"`
	GovernmentDebt     float64   `json:"government_debt"`
	NominalGDP         float64   `json:"nominal_gdp"`
	DebtToGDP          float64   `json:"debt_to_gdp"`
	InterestPayment    float64   `json:"interest_payment"`
	TaxRevenue         float64   `json:"tax_revenue"`
	FiscalBalance      float64   `json:"fiscal_balance"`
	DebtBand           string    `json:"debt_band"`
	RGreaterThanG      bool      `json:"r_gt_g"`
}

type resetRow struct {
	RecordedAt    time.Time `json:"recorded_at"`
	PreviousRunID string    `json:"previous_run_id"`
	RunID         string    `json:"run_id"`
	FinalTurn     int       `json:"final_turn"`
}

type commentaryRow struct {
	RecordedAt time.Time `json:"recorded_at"`
	RunID      string    `json:"run_id"`
	Turn       int       `json:"turn"`
	Kind       string    `json:"kind"`
	Question   string    `json:"question,omitempty"`
	Text       string    `json:"text,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func (r *SupabaseRecorder) RecordTurn(evt *TurnEvent) error {
	s := evt.State
	return r.db.insert(r.prefix+"turns", turnRow{
		RecordedAt: time.Now().UTC(), RunID: evt.RunID, Turn: evt.Turn,
		Lever: string(evt.Lever), Magnitude: evt.Magnitude,
		GDPGrowth: s.GDPGrowth, Inflation: s.Inflation, Unemployment: s.Unemployment,
		InterestRate: s.InterestRate, ExchangeRate: s.ExchangeRate, TradeBalance: s.TradeBalance,
		GovernmentSpending: s.GovernmentSpending, TariffRate: s.TariffRate, GovernmentDebt: s.GovernmentDebt,
		NominalGDP: s.NominalGDP, DebtToGDP: s.DebtToGDP, InterestPayment: s.InterestPayment,
		TaxRevenue: s.TaxRevenue, FiscalBalance: s.FiscalBalance,
		DebtBand: string(evt.Band), RGreaterThanG: evt.Warning.Active,
	})
}

func (r *SupabaseRecorder) RecordReset(evt *ResetEvent) error {
	return r.db.insert(r.prefix+"resets", resetRow{
		RecordedAt: time.Now().UTC(), PreviousRunID: evt.PreviousRunID,
		RunID: evt.RunID, FinalTurn: evt.FinalTurn,
	})
}

func (r *SupabaseRecorder) RecordCommentary(evt *CommentaryEvent) error {
	return r.db.insert(r.prefix+"commentary", commentaryRow{
		RecordedAt: time.Now().UTC(), RunID: evt.RunID, Turn: evt.Turn,
		Kind: evt.Kind, Question: evt.Question, Text: evt.Text, Error: evt.Error,
	})
}

func (r *SupabaseRecorder) Close() error { return nil }
