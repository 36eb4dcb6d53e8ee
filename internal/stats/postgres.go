package stats

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Postgres implementa Store em banco. O breakdown por patrocinador é uma
// coluna JSONB; a linha do usuário é travada durante o Record para que
// resoluções concorrentes não percam atualizações.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Get(ctx context.Context, userID string) (*MoneyStats, error) {
	s := NewMoneyStats(userID)
	var breakdown []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT total_wagered, total_won, total_lost, net_profit, bets_won, bets_lost, sponsor_breakdown
		FROM goose_money_stats WHERE user_id=$1`, userID).
		Scan(&s.TotalWagered, &s.TotalWon, &s.TotalLost, &s.NetProfit, &s.BetsWon, &s.BetsLost, &breakdown)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(breakdown, &s.SponsorBreakdown); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Postgres) Record(ctx context.Context, userID string, r BetResult) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Garante a linha e trava pra leitura-modificação-escrita
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO goose_money_stats(user_id) VALUES($1) ON CONFLICT (user_id) DO NOTHING`,
		userID); err != nil {
		return err
	}

	s := NewMoneyStats(userID)
	var breakdown []byte
	if err := tx.QueryRowContext(ctx, `
		SELECT total_wagered, total_won, total_lost, net_profit, bets_won, bets_lost, sponsor_breakdown
		FROM goose_money_stats WHERE user_id=$1 FOR UPDATE`, userID).
		Scan(&s.TotalWagered, &s.TotalWon, &s.TotalLost, &s.NetProfit, &s.BetsWon, &s.BetsLost, &breakdown); err != nil {
		return err
	}
	if err := json.Unmarshal(breakdown, &s.SponsorBreakdown); err != nil {
		return err
	}

	s.apply(r)

	b, err := json.Marshal(s.SponsorBreakdown)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE goose_money_stats
		SET total_wagered=$1, total_won=$2, total_lost=$3, net_profit=$4,
		    bets_won=$5, bets_lost=$6, sponsor_breakdown=$7
		WHERE user_id=$8`,
		s.TotalWagered, s.TotalWon, s.TotalLost, s.NetProfit,
		s.BetsWon, s.BetsLost, b, userID); err != nil {
		return err
	}

	return tx.Commit()
}
