package wallet

import (
	"context"
	"errors"
)

// StartingBalance é o saldo inicial de GooseTokens de um usuário novo
const StartingBalance int64 = 100

var ErrInsufficientBalance = errors.New("insufficient balance")

// Store define as operações de saldo de GooseTokens.
// A criação de usuário é lazy: a primeira operação cria a conta com StartingBalance.
// Award e Deduct são atômicos por usuário; Deduct nunca deixa o saldo negativo.
type Store interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Award(ctx context.Context, userID string, amount int64) (int64, error)
	Deduct(ctx context.Context, userID string, amount int64) (int64, error)
}
