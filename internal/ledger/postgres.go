package ledger

import (
	"context"
	"database/sql"
	"time"
)

// Postgres implementa Store em banco.
// Resolve trava a linha da aposta (FOR UPDATE) pra garantir transição única.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const betColumns = `id, user_id, line, stake, sponsor, multiplier, potential_winnings,
	status, created_at, resolved_at, winnings, net_result`

func scanBet(row interface{ Scan(dest ...any) error }) (*Bet, error) {
	var b Bet
	var resolvedAt sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.Line, &b.Stake, &b.Sponsor, &b.Multiplier,
		&b.PotentialWinnings, &b.Status, &b.CreatedAt, &resolvedAt, &b.Winnings, &b.NetResult)
	if err != nil {
		return nil, err
	}
	if resolvedAt.Valid {
		b.ResolvedAt = &resolvedAt.Time
	}
	return &b, nil
}

func (p *Postgres) Insert(ctx context.Context, b *Bet) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO goose_bets (id, user_id, line, stake, sponsor, multiplier, potential_winnings, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		b.ID, b.UserID, b.Line, b.Stake, b.Sponsor, b.Multiplier, b.PotentialWinnings, b.Status, b.CreatedAt)
	return err
}

func (p *Postgres) Get(ctx context.Context, betID string) (*Bet, error) {
	b, err := scanBet(p.db.QueryRowContext(ctx,
		`SELECT `+betColumns+` FROM goose_bets WHERE id=$1`, betID))
	if err == sql.ErrNoRows {
		return nil, ErrBetNotFound
	}
	return b, err
}

func (p *Postgres) ListByUser(ctx context.Context, userID string) ([]Bet, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+betColumns+` FROM goose_bets WHERE user_id=$1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (p *Postgres) Resolve(ctx context.Context, betID string, won bool, at time.Time) (*Bet, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	b, err := scanBet(tx.QueryRowContext(ctx,
		`SELECT `+betColumns+` FROM goose_bets WHERE id=$1 FOR UPDATE`, betID))
	if err == sql.ErrNoRows {
		return nil, ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Status != StatusActive {
		return nil, ErrAlreadyResolved
	}

	b.settle(won, at)
	if _, err := tx.ExecContext(ctx, `
		UPDATE goose_bets SET status=$1, resolved_at=$2, winnings=$3, net_result=$4 WHERE id=$5`,
		b.Status, b.ResolvedAt, b.Winnings, b.NetResult, b.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}
