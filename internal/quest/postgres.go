package quest

import (
	"context"
	"database/sql"
)

// Postgres implementa Store em banco
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Save(ctx context.Context, r *Record) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO goose_quests (quest_id, user_id, status, tokens_awarded, completed_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (quest_id) DO UPDATE
		SET user_id=$2, status=$3, tokens_awarded=$4, completed_at=$5`,
		r.QuestID, r.UserID, r.Status, r.TokensAwarded, r.CompletedAt)
	return err
}

func (p *Postgres) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT quest_id, user_id, status, tokens_awarded, completed_at
		FROM goose_quests WHERE user_id=$1 ORDER BY completed_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.QuestID, &r.UserID, &r.Status, &r.TokensAwarded, &r.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
