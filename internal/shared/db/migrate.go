package db

import (
	"context"
	"database/sql"
	"fmt"
)

// statements de criação das tabelas do GooseTokens
// Executados a cada boot; seguros de repetir (IF NOT EXISTS)
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS goose_users (
		user_id    TEXT PRIMARY KEY,
		balance    BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS goose_bets (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		line               TEXT NOT NULL,
		stake              BIGINT NOT NULL,
		sponsor            TEXT NOT NULL,
		multiplier         DOUBLE PRECISION NOT NULL,
		potential_winnings BIGINT NOT NULL,
		status             TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at        TIMESTAMPTZ,
		winnings           BIGINT NOT NULL DEFAULT 0,
		net_result         BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS goose_bets_user_idx ON goose_bets (user_id)`,
	`CREATE TABLE IF NOT EXISTS goose_quests (
		quest_id       TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		status         TEXT NOT NULL,
		tokens_awarded BIGINT NOT NULL DEFAULT 0,
		completed_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS goose_quests_user_idx ON goose_quests (user_id)`,
	`CREATE TABLE IF NOT EXISTS goose_money_stats (
		user_id           TEXT PRIMARY KEY,
		total_wagered     BIGINT NOT NULL DEFAULT 0,
		total_won         BIGINT NOT NULL DEFAULT 0,
		total_lost        BIGINT NOT NULL DEFAULT 0,
		net_profit        BIGINT NOT NULL DEFAULT 0,
		bets_won          BIGINT NOT NULL DEFAULT 0,
		bets_lost         BIGINT NOT NULL DEFAULT 0,
		sponsor_breakdown JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
}

// Migrate garante que as tabelas existam antes do serviço aceitar tráfego
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
