package wallet

import (
	"context"
	"database/sql"
)

// Postgres implementa Store com persistência em banco.
// Atomicidade por usuário via transação e lock pessimista na linha da conta.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// lockBalance garante que a conta exista e retorna o saldo com a linha travada
func lockBalance(ctx context.Context, tx *sql.Tx, userID string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO goose_users(user_id, balance) VALUES($1,$2) ON CONFLICT (user_id) DO NOTHING`,
		userID, StartingBalance); err != nil {
		return 0, err
	}

	var bal int64
	if err := tx.QueryRowContext(ctx,
		`SELECT balance FROM goose_users WHERE user_id=$1 FOR UPDATE`, userID).Scan(&bal); err != nil {
		return 0, err
	}
	return bal, nil
}

// GetBalance retorna o saldo do usuário, criando a conta se não existir
func (p *Postgres) GetBalance(ctx context.Context, userID string) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bal, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bal, nil
}

// Award credita tokens e retorna o novo saldo
func (p *Postgres) Award(ctx context.Context, userID string, amount int64) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bal, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	bal += amount
	if _, err := tx.ExecContext(ctx,
		`UPDATE goose_users SET balance=$1 WHERE user_id=$2`, bal, userID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bal, nil
}

// Deduct debita tokens somente se houver saldo suficiente
func (p *Postgres) Deduct(ctx context.Context, userID string, amount int64) (int64, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bal, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	if bal < amount {
		return bal, ErrInsufficientBalance
	}

	bal -= amount
	if _, err := tx.ExecContext(ctx,
		`UPDATE goose_users SET balance=$1 WHERE user_id=$2`, bal, userID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bal, nil
}
